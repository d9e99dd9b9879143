// Package httpserver serves generated reports over HTTP.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

var reportNameRe = regexp.MustCompile(`^report-(\d{4}\.\d{2}\.\d{2})\.html$`)

// ReportInfo describes one generated report file.
type ReportInfo struct {
	Name string `json:"name"`
	Date string `json:"date"`
	Size int64  `json:"size"`
}

// Server provides a read-only HTTP API over the reports directory.
type Server struct {
	addr       string
	reportsDir string
	server     *http.Server
	startTime  time.Time
}

// NewServer creates a new report server rooted at reportsDir.
func NewServer(addr, reportsDir string) *Server {
	if addr == "" {
		addr = "127.0.0.1:3000"
	}
	return &Server{
		addr:       addr,
		reportsDir: reportsDir,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully. It wraps
// the listener goroutine and the shutdown watcher in one errgroup so a
// listener failure surfaces as the return value.
func (s *Server) Run(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	s.registerRoutes(r)

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.addr = listener.Addr().String()
	s.startTime = time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// Addr returns the listen address; once Run has bound the listener it
// carries the resolved port.
func (s *Server) Addr() string { return s.addr }

func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/api/health", s.handleHealth)
	r.GET("/api/reports", s.handleListReports)
	r.GET("/reports/:name", s.handleReport)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"uptime": time.Since(s.startTime).Round(time.Second).String(),
	})
}

// handleListReports returns the generated reports, newest first.
func (s *Server) handleListReports(c *gin.Context) {
	entries, err := os.ReadDir(s.reportsDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	reports := make([]ReportInfo, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := reportNameRe.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		reports = append(reports, ReportInfo{
			Name: entry.Name(),
			Date: m[1],
			Size: info.Size(),
		})
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Date > reports[j].Date })

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// handleReport serves one report file. The name is validated against the
// report naming scheme, which also rules out path traversal.
func (s *Server) handleReport(c *gin.Context) {
	name := c.Param("name")
	if !reportNameRe.MatchString(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such report"})
		return
	}
	path := filepath.Join(s.reportsDir, name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such report"})
		return
	}
	c.File(path)
}
