package dto

type ArchivedObject struct {
	Kind       string `json:"kind"`
	ObjectName string `json:"object_name"`
	Records    int    `json:"records"`
	URL        string `json:"url"`
}

type ArchiveResponse struct {
	Objects []ArchivedObject `json:"objects"`
}
