// Package server exposes a graph's actions and animation frames over HTTP.
//
// Routes:
//
//	GET  /api/graph             node-link JSON of the graph
//	GET  /api/state             controller state and the current frame
//	GET  /api/frame.svg         the current frame rendered by Graphviz
//	GET  /api/frame.png         the same as PNG
//	POST /api/actions/{name}    run bfs, dfs, coloring, cycle, clique or clear
//	GET  /api/subscribe/{topic} server-sent events for "frames" or "actions"
//	GET  /metrics               Prometheus metrics
//	GET  /healthz               liveness
package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/graphwalk/pkg/actions"
	"github.com/matzehuels/graphwalk/pkg/errors"
	"github.com/matzehuels/graphwalk/pkg/graph"
	"github.com/matzehuels/graphwalk/pkg/pubsub"
	"github.com/matzehuels/graphwalk/pkg/render"
	"github.com/matzehuels/graphwalk/pkg/render/nodelink"
)

const shutdownTimeout = 5 * time.Second

var topics = []string{pubsub.TopicFrames, pubsub.TopicActions}

// Server serves one Runner.
type Server struct {
	runner *actions.Runner
	ctrl   *render.Controller
	pub    *pubsub.SSEPublisher
	router chi.Router
	logger *log.Logger
	dot    nodelink.Options
	gv     *nodelink.Renderer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithLayout sets the Graphviz options for /api/frame.svg.
func WithLayout(o nodelink.Options) Option { return func(s *Server) { s.dot = o } }

// WithRenderer sets the renderer for frame images. The default renders
// without caching.
func WithRenderer(r *nodelink.Renderer) Option { return func(s *Server) { s.gv = r } }

// New creates a server. Frames reach subscribers only if the runner's
// controller draws into [FrameDrawer] for the same publisher.
func New(runner *actions.Runner, pub *pubsub.SSEPublisher, opts ...Option) *Server {
	s := &Server{
		runner: runner,
		ctrl:   runner.Controller(),
		pub:    pub,
		router: chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}

	pub.ConfigureTopic(pubsub.TopicFrames, pubsub.TopicConfig{BufferSize: 1})
	pub.ConfigureTopic(pubsub.TopicActions, pubsub.TopicConfig{BufferSize: 16, ReplayAll: true})

	s.routes()
	return s
}

// FrameDrawer returns a render.Drawer that publishes every frame on the
// frames topic.
func FrameDrawer(pub pubsub.Publisher) render.Drawer {
	return render.DrawerFunc(func(f render.Frame) error {
		return pub.Publish(pubsub.TopicFrames, "frame", f)
	})
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() {
	r := s.router
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok\n")
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/graph", s.handleGraph)
		r.Get("/state", s.handleState)
		r.Get("/frame.svg", s.handleFrame("image/svg+xml", s.gv.SVG))
		r.Get("/frame.png", s.handleFrame("image/png", s.gv.PNG))
		r.Post("/actions/{name}", s.handleAction)
		r.Get("/subscribe/{topic}", s.handleSubscribe)
	})
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		// Closing the publisher ends open event streams.
		_ = s.pub.Close()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *Server) handleGraph(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, graph.ToDocument(s.ctrl.Graph()))
}

type stateResponse struct {
	State     string       `json:"state"`
	Animating bool         `json:"animating"`
	SessionID string       `json:"session_id,omitempty"`
	Summary   string       `json:"summary"`
	Frame     render.Frame `json:"frame"`
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	resp := stateResponse{
		State:     s.ctrl.State().String(),
		Animating: s.ctrl.Animating(),
		Summary:   s.runner.Summary(),
		Frame:     s.ctrl.Snapshot(),
	}
	if sess := s.ctrl.Session(); sess != nil {
		resp.SessionID = sess.ID.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFrame(contentType string, draw func(context.Context, string) ([]byte, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dot := nodelink.ToDOT(s.ctrl.Graph(), s.ctrl.Snapshot(), s.dot)
		data, err := draw(r.Context(), dot)
		if err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render frame"))
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(data)
	}
}

type actionResponse struct {
	Action string         `json:"action"`
	Lines  []string       `json:"lines"`
	Report actions.Report `json:"report,omitempty"`
	Error  *errorBody     `json:"error,omitempty"`
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	// Animations outlive the request.
	ctx := context.WithoutCancel(r.Context())
	rep, err := s.runner.Run(ctx, name)

	resp := actionResponse{Action: name, Report: rep}
	if rep != nil {
		resp.Lines = rep.Lines()
	}
	if resp.Lines == nil {
		resp.Lines = []string{}
	}

	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
		resp.Error = newErrorBody(err)
	} else if err := s.pub.Publish(pubsub.TopicActions, "report", resp); err != nil {
		s.logger.Warn("publish report", "action", name, "err", err)
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")
	if !slices.Contains(topics, topic) {
		writeError(w, errors.New(errors.ErrCodeNotFound, "unknown topic %q", topic))
		return
	}

	sub, err := s.pub.Subscribe(r.Context(), topic)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeUnsupported, err, "subscribe"))
		return
	}
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, _ := w.(http.Flusher)
	flush := func() {
		if flusher != nil {
			flusher.Flush()
		}
	}

	// Initial comment establishes the stream for clients that wait on headers.
	_, _ = io.WriteString(w, ": connected\n\n")
	flush()

	s.logger.Debug("subscriber connected", "topic", topic, "subscriber", sub.ID())
	defer s.logger.Debug("subscriber gone", "topic", topic, "subscriber", sub.ID())

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			if err := pubsub.WriteSSE(w, event); err != nil {
				s.logger.Debug("write event", "err", err)
				return
			}
			flush()
		}
	}
}
