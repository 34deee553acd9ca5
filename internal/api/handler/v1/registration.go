package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/event-registration-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/event-registration-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/event-registration-api/internal/domain"
	"github.com/vietanh2810/event-registration-api/internal/service"
)

type RegistrationService interface {
	Submit(ctx context.Context, submission domain.Submission) (domain.Registration, error)
	ListByEvent(ctx context.Context, eventName string) ([]domain.Registration, error)
}

type RegistrationHandler struct {
	svc RegistrationService
}

func NewRegistrationHandler(svc RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{
		svc: svc,
	}
}

// HandleSubmit godoc
// @Summary      Register for an event
// @Description  Registers a solo participant or a team of 2 to 4 people. The leader and every member become participants.
// @Tags         registrations
// @Accept       json
// @Produce      json
// @Param        eventName  path      string                             true  "event name"
// @Param        request    body      request.SubmitRegistrationRequest  true  "registration form"
// @Success      201        {object}  response.Envelope{data=response.RegistrationCreated}
// @Failure      400        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      409        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /registrations/{eventName} [post]
func (h *RegistrationHandler) HandleSubmit(ctx *gin.Context) {
	eventName := strings.TrimSpace(ctx.Param("eventName"))

	var req request.SubmitRegistrationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid request body: %w", err)))
		return
	}

	created, err := h.svc.Submit(ctx.Request.Context(), req.ToSubmission(eventName))
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			response.RenderErr(ctx, response.ErrValidation(vErr.Field, vErr.Message))
		case errors.Is(err, service.ErrDuplicateParticipantEmail), errors.Is(err, service.ErrParticipantEmailExists):
			response.RenderErr(ctx, response.ErrConflict("Each participant must use a different email address.", err))
		case errors.Is(err, service.ErrRegistrationExists):
			response.RenderErr(ctx, response.ErrConflict("You have already registered for this event.", err))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "name", eventName))
		default:
			err = fmt.Errorf("v1.HandleSubmit -> h.svc.Submit -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError("An error occurred during registration. Please try again.", err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.Created("Registration successful!", response.NewRegistrationCreated(created)))
}

// HandleList godoc
// @Summary      List the registrations of an event
// @Tags         registrations
// @Produce      json
// @Param        eventName  path      string  true  "event name"
// @Success      200        {object}  response.Envelope{data=[]domain.Registration}
// @Failure      500        {object}  response.Err
// @Router       /registrations/{eventName} [get]
func (h *RegistrationHandler) HandleList(ctx *gin.Context) {
	eventName := strings.TrimSpace(ctx.Param("eventName"))

	registrations, err := h.svc.ListByEvent(ctx.Request.Context(), eventName)
	if err != nil {
		err = fmt.Errorf("v1.HandleList -> h.svc.ListByEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError("Failed to fetch registrations.", err))
		return
	}

	ctx.JSON(http.StatusOK, response.List(registrations))
}
