package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fiscalbr/fiscal-processor/internal/model"
	"github.com/fiscalbr/fiscal-processor/internal/processor"
	"github.com/fiscalbr/fiscal-processor/internal/validator"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config   *Config
	router   *gin.Engine
	pipeline *processor.Pipeline
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config:   config,
		router:   router,
		pipeline: processor.NewPipeline(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Health check
	s.router.GET("/health", s.handleHealth)

	// API v1
	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/extract", s.handleExtract)
		v1.POST("/process", s.handleProcess)
		v1.POST("/taxes", s.handleTaxes)
		v1.POST("/validate", s.handleValidate)
		v1.POST("/info", s.handleInfo)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleExtract(c *gin.Context) {
	body, ok := s.rawBody(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result := s.pipeline.ProcessXMLBytes(ctx, body)
	if result.Error != nil {
		s.writeExtractionError(c, result.Error)
		return
	}

	c.JSON(http.StatusOK, ExtractResponse{
		Record: result.Record,
		Source: string(result.Record.Source),
	})
}

func (s *Server) handleProcess(c *gin.Context) {
	body, ok := s.rawBody(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	result := s.pipeline.Process(ctx, body)
	if result.Error != nil {
		s.writeExtractionError(c, result.Error)
		return
	}

	c.JSON(http.StatusOK, ProcessResponse{
		Record: result.Record,
		Taxes:  result.Taxes,
		Report: result.Report,
	})
}

func (s *Server) handleTaxes(c *gin.Context) {
	var req TaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	rec := &model.Record{
		Value:       req.Value,
		Origin:      req.Origin,
		Destination: req.Destination,
	}
	breakdown := s.pipeline.CalculateTaxes(rec)
	c.JSON(http.StatusOK, breakdown)
}

func (s *Server) handleValidate(c *gin.Context) {
	var rec model.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, validator.Validate(&rec))
}

func (s *Server) handleInfo(c *gin.Context) {
	body, ok := s.rawBody(c)
	if !ok {
		return
	}

	format := processor.DetectFormat(body)

	source := model.SourceUnknown
	if format == processor.FormatXML {
		if detected, err := s.pipeline.Detect(body); err == nil {
			source = detected
		}
	}

	c.JSON(http.StatusOK, InfoResponse{
		Format: format.String(),
		Source: string(source),
		Size:   len(body),
	})
}

// Helper functions

func (s *Server) rawBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read request body"})
		return nil, false
	}
	if len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "empty request body"})
		return nil, false
	}
	return body, true
}

// writeExtractionError distinguishes malformed XML from an unrecognized
// schema in the response details
func (s *Server) writeExtractionError(c *gin.Context, err error) {
	var parseErr *model.ParseError
	if errors.As(err, &parseErr) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "malformed XML", Details: err.Error()})
		return
	}

	var formatErr *model.FormatError
	if errors.As(err, &formatErr) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "unrecognized format", Details: err.Error()})
		return
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
}
