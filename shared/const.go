package shared

const (
	AdminIdentity = "admin_identity"
	AdminRole     = "admin"

	AuthCookieName = "auth_token"
	APIKeyHeader   = "X-API-Key"

	EndpointContact      = "contact"
	EndpointConsultation = "consultation"
	EndpointChat         = "chat"
	EndpointLogin        = "login"

	UnknownClient = "unknown"

	ConsultationSource = "consulta-tecnica"
	DefaultProjectType = "not specified"

	KindMessages      = "messages"
	KindConsultations = "consultations"
)
