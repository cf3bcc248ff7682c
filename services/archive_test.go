package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/reinaldotineo/portfolio_api/dto"
	"github.com/reinaldotineo/portfolio_api/model"
	"github.com/reinaldotineo/portfolio_api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockObjectStore struct {
	mock.Mock
}

func (m *mockObjectStore) Enabled() bool {
	return m.Called().Bool(0)
}

func (m *mockObjectStore) UploadFile(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	data, _ := io.ReadAll(reader)
	return m.Called(objectName, string(data), objectSize, contentType).Error(0)
}

func (m *mockObjectStore) GetFileURL(ctx context.Context, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(objectName, expiry)
	return args.String(0), args.Error(1)
}

type stubLister struct {
	messages      []model.ContactMessage
	consultations []model.ConsultationRequest
}

func (s stubLister) ListMessages(context.Context) []model.ContactMessage {
	return s.messages
}

func (s stubLister) ListConsultations(context.Context) []model.ConsultationRequest {
	return s.consultations
}

func TestArchiveService_Snapshot(t *testing.T) {
	clock := newFakeClock()
	stamp := clock.Now().Unix()

	store := new(mockObjectStore)
	store.On("Enabled").Return(true)
	store.On("UploadFile", "leads/messages/"+strconv.FormatInt(stamp, 10)+".json",
		mock.MatchedBy(func(body string) bool { return strings.Contains(body, `"m2"`) }),
		mock.AnythingOfType("int64"), "application/json").Return(nil).Once()
	store.On("UploadFile", "leads/consultations/"+strconv.FormatInt(stamp, 10)+".json", "[]", int64(2), "application/json").Return(nil).Once()
	store.On("GetFileURL", mock.AnythingOfType("string"), time.Hour).Return("https://minio.local/signed", nil).Twice()

	lister := stubLister{
		messages:      []model.ContactMessage{{ID: "m1", Name: "Ana"}, {ID: "m2", Name: "Luis"}},
		consultations: []model.ConsultationRequest{},
	}

	svc := NewArchiveService(store, lister)
	svc.now = clock.Now

	resp, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Objects, 2)
	assert.Equal(t, dto.ArchivedObject{
		Kind:       shared.KindMessages,
		ObjectName: "leads/messages/" + strconv.FormatInt(stamp, 10) + ".json",
		Records:    2,
		URL:        "https://minio.local/signed",
	}, resp.Objects[0])
	assert.Equal(t, shared.KindConsultations, resp.Objects[1].Kind)
	assert.Equal(t, 0, resp.Objects[1].Records)

	store.AssertExpectations(t)
}

func TestArchiveService_UploadFailure(t *testing.T) {
	store := new(mockObjectStore)
	store.On("Enabled").Return(true)
	store.On("UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket gone"))

	svc := NewArchiveService(store, stubLister{})
	_, err := svc.Snapshot(context.Background())

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.StatusCode)
	store.AssertNotCalled(t, "GetFileURL", mock.Anything, mock.Anything)
}

func TestArchiveService_Disabled(t *testing.T) {
	store := new(mockObjectStore)
	store.On("Enabled").Return(false)

	_, err := NewArchiveService(store, stubLister{}).Snapshot(context.Background())
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.StatusCode)
}
