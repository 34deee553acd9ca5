package v1

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/event-registration-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/event-registration-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/event-registration-api/internal/domain"
	"github.com/vietanh2810/event-registration-api/internal/service"
)

func registrationRouter(svc RegistrationService) *gin.Engine {
	h := NewRegistrationHandler(svc)
	router := gin.New()
	router.POST("/registrations/:eventName", h.HandleSubmit)
	router.GET("/registrations/:eventName", h.HandleList)

	return router
}

func teamRequest() request.SubmitRegistrationRequest {
	return request.SubmitRegistrationRequest{
		ParticipationType:   "team",
		TeamName:            "Alpha",
		LeaderName:          "Alice",
		LeaderGender:        "Female",
		LeaderRollNumber:    "r1",
		LeaderContactNumber: "9000000001",
		LeaderEmail:         "alice@x.com",
		TeamMembers: []request.TeamMemberRequest{
			{Name: "Bob", Gender: "Male", RollNumber: "r2", ContactNumber: "9000000002", Email: "bob@x.com"},
			{Name: "Carol", Gender: "Female", RollNumber: "r3", ContactNumber: "9000000003", Email: "carol@x.com"},
		},
	}
}

func TestRegistrationHandler_HandleSubmit(t *testing.T) {
	svc := &mockRegistrationService{}
	created := domain.Registration{
		ID:                "reg-1",
		EventName:         "Tussle 3.0",
		IsTeam:            true,
		TeamName:          "Alpha",
		TotalParticipants: 3,
		Participants: []domain.Participant{
			{Name: "Alice", IsLeader: true},
			{Name: "Bob"},
			{Name: "Carol"},
		},
	}
	svc.On("Submit", anyCtx, mock.MatchedBy(func(s domain.Submission) bool {
		return s.EventName == "Tussle 3.0" && s.ParticipationType == "team" && len(s.TeamMembers) == 2 &&
			s.Leader.Email == "alice@x.com"
	})).Return(created, nil)

	rec, env := doRequest(t, registrationRouter(svc), http.MethodPost, "/registrations/Tussle%203.0", teamRequest())

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Registration successful!", env.Message)

	var data response.RegistrationCreated
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, response.RegistrationCreated{
		RegistrationID:      "reg-1",
		EventName:           "Tussle 3.0",
		IsTeam:              true,
		ParticipationType:   "team",
		TeamName:            "Alpha",
		LeaderName:          "Alice",
		TotalParticipants:   3,
		ParticipantsCreated: 3,
	}, data)
	svc.AssertExpectations(t)
}

func TestRegistrationHandler_HandleSubmitErrors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "validation",
			err:         &domain.ValidationError{Field: "teamMembers", Message: "Solo participation cannot have team members."},
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Solo participation cannot have team members.",
		},
		{
			name:        "duplicate registration",
			err:         fmt.Errorf("s.repo.Create -> %w", service.ErrRegistrationExists),
			wantStatus:  http.StatusConflict,
			wantMessage: "You have already registered for this event.",
		},
		{
			name:        "duplicate participant email",
			err:         fmt.Errorf("%w: bob@x.com", service.ErrDuplicateParticipantEmail),
			wantStatus:  http.StatusConflict,
			wantMessage: "Each participant must use a different email address.",
		},
		{
			name:        "unknown event",
			err:         fmt.Errorf("s.events.FindByName -> %w", service.ErrEventNotFound),
			wantStatus:  http.StatusNotFound,
			wantMessage: "event with name Tussle 3.0 not found",
		},
		{
			name:        "store down",
			err:         errors.New("connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "An error occurred during registration. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockRegistrationService{}
			svc.On("Submit", anyCtx, mock.Anything).Return(domain.Registration{}, tt.err)

			rec, env := doRequest(t, registrationRouter(svc), http.MethodPost, "/registrations/Tussle%203.0", teamRequest())

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.wantMessage, env.Error)
		})
	}
}

func TestRegistrationHandler_HandleSubmitValidationDetails(t *testing.T) {
	svc := &mockRegistrationService{}
	svc.On("Submit", anyCtx, mock.Anything).
		Return(domain.Registration{}, &domain.ValidationError{Field: "leaderContactNumber", Message: "contact number must be exactly 10 digits"})

	rec, env := doRequest(t, registrationRouter(svc), http.MethodPost, "/registrations/Tussle%203.0", teamRequest())

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var details map[string]string
	require.NoError(t, json.Unmarshal(env.Details, &details))
	assert.Equal(t, "contact number must be exactly 10 digits", details["leaderContactNumber"])
}

func TestRegistrationHandler_HandleSubmitMalformedBody(t *testing.T) {
	svc := &mockRegistrationService{}

	rec, env := doRequest(t, registrationRouter(svc), http.MethodPost, "/registrations/Tussle%203.0", `{"leaderName":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	svc.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestRegistrationHandler_HandleSubmitInternalDetails(t *testing.T) {
	svc := &mockRegistrationService{}
	svc.On("Submit", anyCtx, mock.Anything).Return(domain.Registration{}, errors.New("connection refused"))
	router := registrationRouter(svc)

	_, env := doRequest(t, router, http.MethodPost, "/registrations/x", teamRequest())
	assert.Contains(t, string(env.Details), "connection refused")

	response.HideInternalDetails(true)
	defer response.HideInternalDetails(false)

	_, env = doRequest(t, router, http.MethodPost, "/registrations/x", teamRequest())
	assert.Empty(t, env.Details)
}

func TestRegistrationHandler_HandleList(t *testing.T) {
	svc := &mockRegistrationService{}
	svc.On("ListByEvent", anyCtx, "Tussle 3.0").Return([]domain.Registration{
		{ID: "b", EventName: "Tussle 3.0"},
		{ID: "a", EventName: "Tussle 3.0"},
	}, nil)

	rec, env := doRequest(t, registrationRouter(svc), http.MethodGet, "/registrations/Tussle%203.0", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, env.Count)
	assert.Equal(t, 2, *env.Count)

	var regs []domain.Registration
	require.NoError(t, json.Unmarshal(env.Data, &regs))
	assert.Equal(t, "b", regs[0].ID)
}

func TestRegistrationHandler_HandleListEmpty(t *testing.T) {
	svc := &mockRegistrationService{}
	svc.On("ListByEvent", anyCtx, "Nope").Return([]domain.Registration(nil), nil)

	rec, env := doRequest(t, registrationRouter(svc), http.MethodGet, "/registrations/Nope", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, *env.Count)
	assert.JSONEq(t, `[]`, string(env.Data))
}

func TestRegistrationHandler_HandleListFailure(t *testing.T) {
	svc := &mockRegistrationService{}
	svc.On("ListByEvent", anyCtx, "x").Return([]domain.Registration(nil), errors.New("boom"))

	rec, env := doRequest(t, registrationRouter(svc), http.MethodGet, "/registrations/x", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch registrations.", env.Error)
}
