package ui

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"churnboard/adapters/excel"
	"churnboard/internal/dashboard"
	"churnboard/internal/dataset"
	"churnboard/internal/errors"

	"github.com/gin-gonic/gin"
)

// handleIndex serves the dashboard page
func (s *Server) handleIndex(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		s.renderError(c, err)
		return
	}

	sum, err := s.service.Summarize(c.Request.Context(), f)
	if err != nil {
		s.renderError(c, err)
		return
	}

	table, err := s.service.Table()
	if err != nil {
		s.renderError(c, err)
		return
	}
	selected := make(map[string]bool, len(f.Contracts))
	for _, contract := range f.Contracts {
		selected[contract] = true
	}
	preview := make([][]string, 0, len(sum.Preview))
	for _, rec := range sum.Preview {
		preview = append(preview, dataset.Cells(rec, table.Columns))
	}

	s.renderTemplate(c, http.StatusOK, "index.html", indexPage{
		Summary:  sum,
		Filter:   dashboard.NewFilterView(f),
		Options:  dashboard.NewOptionsView(sum.Options),
		Selected: selected,
		Status:   s.service.Status(),
		Columns:  table.Columns,
		Preview:  preview,
	})
}

// handleReport serves the markdown report rendered to HTML
func (s *Server) handleReport(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		s.renderError(c, err)
		return
	}
	sum, err := s.service.Summarize(c.Request.Context(), f)
	if err != nil {
		s.renderError(c, err)
		return
	}
	s.renderTemplate(c, http.StatusOK, "report.html", template.HTML(dashboard.RenderReport(sum)))
}

// handleSummary returns the summary as JSON
func (s *Server) handleSummary(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		s.jsonError(c, err)
		return
	}
	sum, err := s.service.Summarize(c.Request.Context(), f)
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard.NewSummaryView(sum))
}

// handleOptions returns the values available to the filter controls
func (s *Server) handleOptions(c *gin.Context) {
	table, err := s.service.Table()
	if err != nil {
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard.NewOptionsView(dataset.FilterOptions(table)))
}

// handleExport streams the filtered table as an XLSX workbook
func (s *Server) handleExport(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		s.jsonError(c, err)
		return
	}
	table, err := s.service.Filtered(f)
	if err != nil {
		s.jsonError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := excel.WriteTable(&buf, table); err != nil {
		s.jsonError(c, errors.Wrapf(err, "export of %d rows failed", table.Len()))
		return
	}

	name := fmt.Sprintf("churn-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// handleReload reloads the source and reports the outcome
func (s *Server) handleReload(c *gin.Context) {
	if err := s.service.Reload(c.Request.Context()); err != nil {
		log.Printf("[handleReload] %v", err)
		s.jsonError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.service.Status())
}

// handleHealth reports liveness together with the load status
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "data": s.service.Status()})
}

func (s *Server) jsonError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"error": err.Error(), "code": errors.GetCode(err)}
	if missing := errors.MissingFields(err); len(missing) > 0 {
		body["missing"] = missing
	}
	c.AbortWithStatusJSON(status, body)
}

func (s *Server) renderError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[handleIndex] %v", err)
	}
	s.renderTemplate(c, status, "error.html", errorPage{
		Status:  status,
		Code:    errors.GetCode(err),
		Message: err.Error(),
		Missing: errors.MissingFields(err),
		Source:  s.service.Status().Source,
	})
}
