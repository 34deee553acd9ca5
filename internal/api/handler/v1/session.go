package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/event-registration-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/event-registration-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/event-registration-api/internal/config"
	"github.com/vietanh2810/event-registration-api/internal/domain"
	"github.com/vietanh2810/event-registration-api/internal/service"
)

type SessionService interface {
	Login(ctx context.Context, password string) (domain.AdminSession, error)
}

type SessionHandler struct {
	apiConf   *config.APIConfig
	adminConf *config.AdminConfig
	svc       SessionService
}

func NewSessionHandler(apiConf *config.APIConfig, adminConf *config.AdminConfig, svc SessionService) *SessionHandler {
	return &SessionHandler{
		apiConf:   apiConf,
		adminConf: adminConf,
		svc:       svc,
	}
}

// HandleLogin godoc
// @Summary      Open an admin session
// @Description  Exchanges the admin password for an HTTP-only session cookie valid for 24 hours.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.LoginRequest  true  "request body"
// @Success      200      {object}  response.Envelope
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /admin/session [post]
func (h *SessionHandler) HandleLogin(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid request body: %w", err)))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	session, err := h.svc.Login(ctx.Request.Context(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			response.RenderErr(ctx, response.ErrWrongCredentials(err))
		case errors.Is(err, service.ErrAdminNotConfigured):
			response.RenderErr(ctx, response.ErrInternalServerError("Admin password not configured", err))
		default:
			err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError("Login failed", err))
		}
		return
	}

	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	h.setCookie(ctx, session.Token, maxAge)

	ctx.JSON(http.StatusOK, response.Message("Login successful"))
}

// HandleLogout godoc
// @Summary      Close the admin session
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Envelope
// @Router       /admin/session [delete]
func (h *SessionHandler) HandleLogout(ctx *gin.Context) {
	h.setCookie(ctx, "", -1)

	ctx.JSON(http.StatusOK, response.Message("Logout successful"))
}

func (h *SessionHandler) setCookie(ctx *gin.Context, value string, maxAge int) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(h.adminConf.CookieName, value, maxAge, "/", "", h.apiConf.IsProduction(), true)
}
