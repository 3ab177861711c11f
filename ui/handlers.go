package ui

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"workgen/domain/chart"
	"workgen/domain/core"
	"workgen/domain/insight"

	"github.com/gin-gonic/gin"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": s.services.Sessions.Len()})
}

func (s *Server) handleCreateSession(c *gin.Context) {
	sess, err := s.services.Sessions.Create(c.Request.Context())
	if err != nil {
		respondError(c, "handleCreateSession", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session_id": sess.ID, "created_at": sess.CreatedAt})
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := s.services.Sessions.Delete(c.Request.Context(), id); err != nil {
		respondError(c, "handleDeleteSession", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleUpload(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	if s.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes)
	}
	file, header, err := c.Request.FormFile("dataset")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(c, "handleUpload", err)
			return
		}
		respondError(c, "handleUpload", core.NewInvalidInputError("dataset", "multipart file field is required"))
		return
	}
	defer file.Close()

	log.Printf("[handleUpload] session %s uploading %s (%d bytes)", id, header.Filename, header.Size)
	preview, err := s.services.Upload.Upload(c.Request.Context(), id, header.Filename, file)
	if err != nil {
		respondError(c, "handleUpload", err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

func (s *Server) handlePreview(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	preview, err := s.services.Upload.Preview(c.Request.Context(), id)
	if err != nil {
		respondError(c, "handlePreview", err)
		return
	}
	c.JSON(http.StatusOK, preview)
}

func (s *Server) handleChartOptions(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	opts, err := s.services.Insights.ChartOptions(c.Request.Context(), id)
	if err != nil {
		respondError(c, "handleChartOptions", err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

func (s *Server) handleGenerateChart(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req struct {
		Kind   string `json:"kind"`
		X      string `json:"x"`
		Y      string `json:"y"`
		Column string `json:"column"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, "handleGenerateChart", core.NewInvalidInputError("chart request", err.Error()))
		return
	}
	kind, err := chart.ParseKind(req.Kind)
	if err != nil {
		respondError(c, "handleGenerateChart", err)
		return
	}

	result, err := s.services.Insights.GenerateChart(c.Request.Context(), id, chart.Request{
		Kind:   kind,
		X:      req.X,
		Y:      req.Y,
		Column: req.Column,
	})
	if err != nil {
		respondError(c, "handleGenerateChart", err)
		return
	}

	status := http.StatusCreated
	if result.Skipped {
		status = http.StatusOK
	}
	c.JSON(status, result)
}

func (s *Server) handleDashboard(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	entries, err := s.services.Insights.Dashboard(c.Request.Context(), id)
	if err != nil {
		respondError(c, "handleDashboard", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (s *Server) handleCreateProject(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req struct {
		Name string `json:"name"`
		Size int    `json:"size"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, "handleCreateProject", core.NewInvalidInputError("project request", err.Error()))
		return
	}

	p, err := s.services.Projects.CreateProject(c.Request.Context(), id, req.Name, req.Size)
	if err != nil {
		respondError(c, "handleCreateProject", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) handleListProjects(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	projects, err := s.services.Projects.ListProjects(c.Request.Context(), id)
	if err != nil {
		respondError(c, "handleListProjects", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (s *Server) handleReport(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	lines, err := s.services.Reports.Lines(c.Request.Context(), id)
	if err != nil {
		respondError(c, "handleReport", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lines": lines})
}

func (s *Server) handleReportDownload(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	format := insight.Format(c.DefaultQuery("format", string(insight.FormatText)))
	file, err := s.services.Reports.Export(c.Request.Context(), id, format)
	if err != nil {
		respondError(c, "handleReportDownload", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Body)
}

func (s *Server) handleEDA(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	figures, err := s.services.EDA.Run(c.Request.Context(), id)
	if err != nil {
		respondError(c, "handleEDA", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"figures": figures})
}

func (s *Server) handleEDAStatus(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	ran, err := s.services.EDA.Status(c.Request.Context(), id)
	if err != nil {
		respondError(c, "handleEDAStatus", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"eda_run": ran})
}

func (s *Server) handleArchivedProjects(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	projects, err := s.services.Archive.Projects(c.Request.Context(), id)
	if err != nil {
		respondError(c, "handleArchivedProjects", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (s *Server) handleArchivedReport(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	lines, err := s.services.Archive.Report(c.Request.Context(), id)
	if err != nil {
		respondError(c, "handleArchivedReport", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lines": lines})
}
