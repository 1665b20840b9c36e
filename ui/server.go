package ui

import (
	"html/template"
	"log"
	"net/http"

	"churnboard/internal/dashboard"
	"churnboard/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Server represents the web server for the churn dashboard
type Server struct {
	router    *gin.Engine
	service   *dashboard.Service
	metrics   *metrics.Registry
	templates *template.Template
}

// NewServer creates a new web server instance. reg may be nil, in which
// case /metrics is not served.
func NewServer(service *dashboard.Service, reg *metrics.Registry) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    gin.New(),
		service:   service,
		metrics:   reg,
		templates: templates,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/report", s.handleReport)
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	api.GET("/summary", s.handleSummary)
	api.GET("/options", s.handleOptions)
	api.GET("/export.xlsx", s.handleExport)
	api.POST("/reload", s.handleReload)

	if s.metrics != nil {
		s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	}
}

// Handler exposes the router for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	log.Printf("Starting churn dashboard on http://%s", addr)
	return s.router.Run(addr)
}
