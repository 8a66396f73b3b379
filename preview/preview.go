// Package preview serves the generated email over local HTTP so it can be
// checked in a real browser, in light or forced dark mode.
package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/billlayne/mailcomposer/bulk"
	"github.com/billlayne/mailcomposer/document"
)

// DarkClass is added to <body> for ?dark=1.
const DarkClass = "dark-mode-preview"

// Page is what the server shows.
type Page struct {
	Subject string
	HTML    string
	// Rows are personalized campaign messages, viewable under /rows/{n}.
	Rows []bulk.Row
}

type Server struct {
	mu   sync.RWMutex
	page Page
	log  *zap.Logger
}

func NewServer(log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{log: log}
}

// Set replaces the page being served.
func (s *Server) Set(p Page) {
	s.mu.Lock()
	s.page = p
	s.mu.Unlock()
}

func (s *Server) current() Page {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// Handler routes:
//
//	GET /           the document (?dark=1 forces dark mode)
//	GET /text       plain-text rendition
//	GET /size       size and clipping level as JSON
//	GET /rows/{n}   the n-th personalized campaign message
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	r.Get("/", s.handleDocument)
	r.Get("/text", s.handleText)
	r.Get("/size", s.handleSize)
	r.Get("/rows/{n}", s.handleRow)
	return r
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	p := s.current()
	if p.HTML == "" {
		http.Error(w, "nothing generated yet", http.StatusNotFound)
		return
	}
	s.writeHTML(w, r, p.HTML)
}

func (s *Server) writeHTML(w http.ResponseWriter, r *http.Request, doc string) {
	if r.URL.Query().Get("dark") == "1" {
		dark, err := document.WithBodyClass(doc, DarkClass)
		if err != nil {
			s.log.Error("dark mode toggle failed", zap.Error(err))
			http.Error(w, "could not render preview", http.StatusInternalServerError)
			return
		}
		doc = dark
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(doc))
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	p := s.current()
	if p.HTML == "" {
		http.Error(w, "nothing generated yet", http.StatusNotFound)
		return
	}
	text, err := document.PlainText(p.HTML)
	if err != nil {
		http.Error(w, "could not extract text", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(text))
}

type sizeResponse struct {
	Subject string         `json:"subject"`
	KB      float64        `json:"kb"`
	Level   document.Level `json:"level"`
	Rows    int            `json:"rows"`
}

func (s *Server) handleSize(w http.ResponseWriter, r *http.Request) {
	p := s.current()
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(sizeResponse{
		Subject: p.Subject,
		KB:      document.SizeKB(p.HTML),
		Level:   document.SizeLevel(p.HTML),
		Rows:    len(p.Rows),
	})
}

func (s *Server) handleRow(w http.ResponseWriter, r *http.Request) {
	p := s.current()
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 0 || n >= len(p.Rows) {
		http.Error(w, "no such row", http.StatusNotFound)
		return
	}
	s.writeHTML(w, r, p.Rows[n].HTMLBody)
}

// Serve listens on addr until ctx is done, then shuts down gracefully.
// ready, when non-nil, receives the bound address once listening.
func (s *Server) Serve(ctx context.Context, addr string, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("preview: listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("preview listening", zap.String("addr", ln.Addr().String()))
	if ready != nil {
		ready(ln.Addr())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("preview: %w", err)
	}
	s.log.Info("preview stopped")
	return nil
}
