package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"routeplan/adapters/optimizer"
	"routeplan/adapters/postgres"
	"routeplan/domain/core"
	"routeplan/domain/schema"
	"routeplan/internal"
	"routeplan/internal/config"
	"routeplan/internal/ingest"
	"routeplan/internal/quality"
)

// Server wires the ingestion pipeline behind HTTP endpoints. The repository
// and optimizer client are optional; endpoints that need them return 503 when
// unconfigured.
type Server struct {
	cfg       *config.Config
	pipeline  *ingest.Pipeline
	repo      *postgres.BatchRepository
	optimizer *optimizer.Client
	log       *internal.Logger
}

// NewServer creates an API server around the given pipeline.
func NewServer(cfg *config.Config, pipeline *ingest.Pipeline, repo *postgres.BatchRepository, opt *optimizer.Client) *Server {
	return &Server{
		cfg:       cfg,
		pipeline:  pipeline,
		repo:      repo,
		optimizer: opt,
		log:       internal.DefaultLogger.WithPrefix("API"),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(s.cfg.Server.GinMode)
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.MaxMultipartMemory = s.cfg.Parse.MaxUploadBytes

	r.GET("/health", s.handleHealth())
	r.POST("/parse", s.handleParse())
	r.POST("/assign", s.handleAssign())
	r.GET("/batches/:id", s.handleGetBatch())

	return r
}

func (s *Server) handleHealth() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// handleParse accepts a multipart upload, parses it, optionally persists the
// batch, and returns the parse result plus a quality profile.
func (s *Server) handleParse() gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
			return
		}
		if fileHeader.Size > s.cfg.Parse.MaxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to open upload"})
			return
		}
		defer f.Close()

		res := s.pipeline.ParseUpload(f, fileHeader.Filename)

		if s.repo != nil && res.RecordCount() > 0 {
			if err := s.repo.Save(c.Request.Context(), &res, fileHeader.Filename); err != nil {
				s.log.Error("failed to persist batch %s: %v", res.BatchID, err)
			}
		}

		status := http.StatusOK
		if res.RecordCount() == 0 {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{
			"result":  res,
			"profile": quality.Profile(res),
		})
	}
}

// assignPayload is the request body for /assign: parsed records from earlier
// /parse calls, forwarded to the assignment service.
type assignPayload struct {
	Jobs     []schema.Job      `json:"jobs"`
	Salesmen []schema.Salesman `json:"salesmen"`
}

func (s *Server) handleAssign() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.optimizer == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "optimizer is not configured"})
			return
		}

		var payload assignPayload
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		assignment, err := s.optimizer.Assign(c.Request.Context(), payload.Jobs, payload.Salesmen)
		if err != nil {
			s.log.Error("assignment failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, assignment)
	}
}

func (s *Server) handleGetBatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.repo == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence is not configured"})
			return
		}

		res, err := s.repo.GetBatch(c.Request.Context(), core.BatchID(c.Param("id")))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"result":  res,
			"profile": quality.Profile(*res),
		})
	}
}
