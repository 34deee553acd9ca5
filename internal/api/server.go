package api

import (
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vietanh2810/event-registration-api/docs"
	v1 "github.com/vietanh2810/event-registration-api/internal/api/handler/v1"
	"github.com/vietanh2810/event-registration-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/event-registration-api/internal/api/middleware"
	"github.com/vietanh2810/event-registration-api/internal/config"
	"github.com/vietanh2810/event-registration-api/internal/repository"
	"github.com/vietanh2810/event-registration-api/internal/repository/dao"
	"github.com/vietanh2810/event-registration-api/internal/service"
)

const basePath = "/api/v1"

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	sessionSvc, err := service.NewAdminSessionService(conf.Admin)
	if err != nil {
		return nil, fmt.Errorf("service.NewAdminSessionService -> %w", err)
	}

	s := newServer(conf)

	registrationHandler := s.initRegistrationHandler(db)
	adminHandler := s.initAdminHandler(db)
	sessionHandler := v1.NewSessionHandler(conf.API, conf.Admin, sessionSvc)
	authenticator := middleware.NewAdminAuthenticator(sessionSvc, conf.Admin.CookieName, conf.Admin.LoginPath)
	s.MountHandlers(registrationHandler, adminHandler, sessionHandler, authenticator)

	return s, nil
}

func newServer(conf *config.AppConfig) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()
	// Event names are free text and may contain an encoded "/".
	engine.UseRawPath = true
	engine.UnescapePathValues = true

	response.HideInternalDetails(conf.API.IsProduction())

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	return s
}

func (s *Server) initRegistrationHandler(db *gorm.DB) *v1.RegistrationHandler {
	registrations := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	events := repository.NewEventRepository(dao.NewEventDAO(db))
	svc := service.NewRegistrationService(registrations, events, s.Config.Registration)
	handler := v1.NewRegistrationHandler(svc)

	return handler
}

func (s *Server) initAdminHandler(db *gorm.DB) *v1.AdminHandler {
	events := repository.NewEventRepository(dao.NewEventDAO(db))
	registrations := repository.NewRegistrationRepository(dao.NewRegistrationDAO(db))
	svc := service.NewAdminService(events, registrations)
	handler := v1.NewAdminHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.RequestLogger())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	registrationHandler *v1.RegistrationHandler,
	adminHandler *v1.AdminHandler,
	sessionHandler *v1.SessionHandler,
	authenticator *middleware.AdminAuthenticator,
) {
	public := s.Router.Group(basePath)
	{
		public.POST("/registrations/:eventName", registrationHandler.HandleSubmit)
		public.GET("/registrations/:eventName", registrationHandler.HandleList)
		public.GET("/events", adminHandler.HandleListActiveEvents)

		public.POST("/admin/session", sessionHandler.HandleLogin)
		public.DELETE("/admin/session", sessionHandler.HandleLogout)
	}

	admin := s.Router.Group(basePath+"/admin", authenticator.VerifySession())
	{
		admin.GET("/events", adminHandler.HandleListEvents)
		admin.POST("/events", adminHandler.HandleCreateEvent)
		admin.GET("/events/:eventName", adminHandler.HandleEventDetail)
		admin.GET("/stats", adminHandler.HandleStats)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Event Registration API"
	docs.SwaggerInfo.Description = "Registrations for solo participants and teams, with an admin dashboard."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
