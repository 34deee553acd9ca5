package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/event-registration-api/internal/domain"
	"github.com/vietanh2810/event-registration-api/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockRegistrationService struct {
	mock.Mock
}

func (m *mockRegistrationService) Submit(ctx context.Context, submission domain.Submission) (domain.Registration, error) {
	args := m.Called(ctx, submission)
	return args.Get(0).(domain.Registration), args.Error(1)
}

func (m *mockRegistrationService) ListByEvent(ctx context.Context, eventName string) ([]domain.Registration, error) {
	args := m.Called(ctx, eventName)
	return args.Get(0).([]domain.Registration), args.Error(1)
}

type mockAdminService struct {
	mock.Mock
}

func (m *mockAdminService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *mockAdminService) ListActiveEvents(ctx context.Context) ([]domain.Event, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Event), args.Error(1)
}

func (m *mockAdminService) ComputeStats(ctx context.Context) ([]domain.EventStat, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.EventStat), args.Error(1)
}

func (m *mockAdminService) EventDetail(ctx context.Context, eventName string) (domain.EventDetail, error) {
	args := m.Called(ctx, eventName)
	return args.Get(0).(domain.EventDetail), args.Error(1)
}

func (m *mockAdminService) CreateEvent(ctx context.Context, input service.NewEvent) (domain.Event, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Event), args.Error(1)
}

type mockSessionService struct {
	mock.Mock
}

func (m *mockSessionService) Login(ctx context.Context, password string) (domain.AdminSession, error) {
	args := m.Called(ctx, password)
	return args.Get(0).(domain.AdminSession), args.Error(1)
}

// envelope is the union of the success and failure bodies.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
	Details json.RawMessage `json:"details"`
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}

	return rec, env
}

var anyCtx = mock.Anything
