package ui

import (
	"errors"
	"log"
	"net/http"

	"workgen/app"
	"workgen/domain/core"
	apperrors "workgen/internal/errors"
	"workgen/internal/session"

	"github.com/gin-gonic/gin"
)

// Services are the application services the API exposes
type Services struct {
	Sessions *session.Manager
	Upload   *app.UploadService
	Projects *app.ProjectService
	Insights *app.InsightService
	Reports  *app.ReportService
	EDA      *app.EDAService

	// Archive is nil when no database is configured
	Archive *app.ArchiveService
}

// Server is the JSON API
type Server struct {
	router         *gin.Engine
	services       Services
	maxUploadBytes int64
}

// NewServer creates the API server and registers its routes
func NewServer(services Services, maxUploadBytes int64) *Server {
	s := &Server{
		router:         gin.New(),
		services:       services,
		maxUploadBytes: maxUploadBytes,
	}
	s.router.Use(gin.Logger(), gin.Recovery())
	s.router.MaxMultipartMemory = 32 << 20
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.POST("/sessions", s.handleCreateSession)

	sessions := api.Group("/sessions/:sid")
	sessions.DELETE("", s.handleDeleteSession)

	sessions.POST("/dataset", s.handleUpload)
	sessions.GET("/dataset", s.handlePreview)

	sessions.GET("/charts/options", s.handleChartOptions)
	sessions.POST("/charts", s.handleGenerateChart)
	sessions.GET("/dashboard", s.handleDashboard)

	sessions.POST("/projects", s.handleCreateProject)
	sessions.GET("/projects", s.handleListProjects)

	sessions.GET("/report", s.handleReport)
	sessions.GET("/report/download", s.handleReportDownload)

	sessions.POST("/eda", s.handleEDA)
	sessions.GET("/eda", s.handleEDAStatus)

	if s.services.Archive != nil {
		archive := api.Group("/archive/:sid")
		archive.GET("/projects", s.handleArchivedProjects)
		archive.GET("/report", s.handleArchivedReport)
	}
}

// sessionID reads the :sid path parameter
func sessionID(c *gin.Context) (core.SessionID, bool) {
	id, err := core.ParseSessionID(c.Param("sid"))
	if err != nil {
		respondError(c, "sessionID", core.NewInvalidInputError("session id", "is required"))
		return "", false
	}
	return id, true
}

// respondError writes {"error", "code"} with the status mapped from the
// domain error
func respondError(c *gin.Context, op string, err error) {
	appErr := apperrors.FromDomain(err)
	status := apperrors.HTTPStatus(appErr.Code)

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		status = http.StatusRequestEntityTooLarge
		appErr = apperrors.InvalidInput("upload exceeds the size limit")
	}

	message := appErr.Message
	if status >= http.StatusInternalServerError {
		log.Printf("[%s] ERROR: %v", op, err)
		message = "internal error"
	}
	c.JSON(status, gin.H{"error": message, "code": appErr.Code})
}
