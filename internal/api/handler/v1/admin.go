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

type AdminService interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	ListActiveEvents(ctx context.Context) ([]domain.Event, error)
	ComputeStats(ctx context.Context) ([]domain.EventStat, error)
	EventDetail(ctx context.Context, eventName string) (domain.EventDetail, error)
	CreateEvent(ctx context.Context, input service.NewEvent) (domain.Event, error)
}

type AdminHandler struct {
	svc AdminService
}

func NewAdminHandler(svc AdminService) *AdminHandler {
	return &AdminHandler{
		svc: svc,
	}
}

// HandleListEvents godoc
// @Summary      List all events
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Envelope{data=[]domain.Event}
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/events [get]
// @Security AdminSession
func (h *AdminHandler) HandleListEvents(ctx *gin.Context) {
	events, err := h.svc.ListEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.ListEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError("Failed to fetch events", err))
		return
	}

	ctx.JSON(http.StatusOK, response.List(events))
}

// HandleListActiveEvents godoc
// @Summary      List the events open for registration
// @Tags         events
// @Produce      json
// @Success      200  {object}  response.Envelope{data=[]domain.Event}
// @Failure      500  {object}  response.Err
// @Router       /events [get]
func (h *AdminHandler) HandleListActiveEvents(ctx *gin.Context) {
	events, err := h.svc.ListActiveEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListActiveEvents -> h.svc.ListActiveEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError("Failed to fetch events", err))
		return
	}

	ctx.JSON(http.StatusOK, response.List(events))
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Description  Team sizes default to 1 and 4. The slug is lower-cased.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateEventRequest  true  "event"
// @Success      201      {object}  response.Envelope{data=domain.Event}
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/events [post]
// @Security AdminSession
func (h *AdminHandler) HandleCreateEvent(ctx *gin.Context) {
	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid request body: %w", err)))
		return
	}

	if err := req.Validate(); err != nil {
		e := response.ErrBadRequest(err)
		e.Message = "All required fields must be provided"
		response.RenderErr(ctx, e)
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), service.NewEvent{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Date:        req.Date,
		MinTeamSize: req.MinTeamSize,
		MaxTeamSize: req.MaxTeamSize,
	})
	if err != nil {
		var vErr *domain.ValidationError
		switch {
		case errors.As(err, &vErr):
			response.RenderErr(ctx, response.ErrValidation(vErr.Field, vErr.Message))
		case errors.Is(err, service.ErrEventExists):
			response.RenderErr(ctx, response.ErrConflict("Event with this name or slug already exists", err))
		default:
			err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError("Failed to create event", err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, response.Created("Event created successfully", event))
}

// HandleStats godoc
// @Summary      Registration statistics per active event
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Envelope{data=[]domain.EventStat}
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/stats [get]
// @Security AdminSession
func (h *AdminHandler) HandleStats(ctx *gin.Context) {
	stats, err := h.svc.ComputeStats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleStats -> h.svc.ComputeStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError("Failed to fetch statistics", err))
		return
	}
	if stats == nil {
		stats = []domain.EventStat{}
	}

	ctx.JSON(http.StatusOK, response.OK(stats))
}

// HandleEventDetail godoc
// @Summary      Registrations of an event with their participants
// @Tags         admin
// @Produce      json
// @Param        eventName  path      string  true  "event name"
// @Success      200        {object}  response.Envelope{data=domain.EventDetail}
// @Failure      401        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /admin/events/{eventName} [get]
// @Security AdminSession
func (h *AdminHandler) HandleEventDetail(ctx *gin.Context) {
	eventName := strings.TrimSpace(ctx.Param("eventName"))

	detail, err := h.svc.EventDetail(ctx.Request.Context(), eventName)
	if err != nil {
		err = fmt.Errorf("v1.HandleEventDetail -> h.svc.EventDetail -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError("Failed to fetch event details", err))
		return
	}
	if detail.Registrations == nil {
		detail.Registrations = []domain.Registration{}
	}

	ctx.JSON(http.StatusOK, response.OK(detail))
}
