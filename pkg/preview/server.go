// Package preview serves a tree file as a live HTML page. State writes
// posted to the server re-render the mounted app and the new markup is
// pushed to every connected browser over a websocket.
package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vrender/internal/errors"
	"github.com/vango-dev/vrender/pkg/host/htmlhost"
	"github.com/vango-dev/vrender/pkg/runtime"
	"github.com/vango-dev/vrender/pkg/treefile"
)

// ErrLoopClosed is returned by Loop.Do after the loop has stopped.
var ErrLoopClosed = errors.Newf(errors.CategoryMount, "preview loop closed")

// Config configures a preview server.
type Config struct {
	// Title is the page title. Defaults to the document title or name.
	Title string

	// Pretty enables indented HTML.
	Pretty bool

	// Logger receives server and render logs.
	Logger *slog.Logger

	// Gatherer backs /metrics. Default: prometheus.DefaultGatherer
	Gatherer prometheus.Gatherer

	// RendererOptions are passed to the renderer, e.g. an observer.
	RendererOptions []runtime.Option
}

// Server is a live preview of one program.
type Server struct {
	config  Config
	program *treefile.Program
	host    *htmlhost.Host
	app     *runtime.App
	loop    *Loop
	hub     *hub
	router  chi.Router
	logger  *slog.Logger
}

// New mounts program into an HTML host and builds the router. The loop is
// not running until Run or ListenAndServe is called.
func New(program *treefile.Program, config Config) (*Server, error) {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.Gatherer == nil {
		config.Gatherer = prometheus.DefaultGatherer
	}
	if config.Title == "" {
		config.Title = program.Doc.Title
	}
	if config.Title == "" {
		config.Title = program.Doc.Name
	}

	s := &Server{
		config:  config,
		program: program,
		host:    htmlhost.New(htmlhost.Config{Pretty: config.Pretty}),
		loop:    NewLoop(0, config.Logger),
		hub:     newHub(),
		logger:  config.Logger,
	}

	opts := append([]runtime.Option{
		runtime.WithLogger(config.Logger),
	}, config.RendererOptions...)
	if v := program.Doc.Version; v != "" {
		opts = append(opts, runtime.WithVersion(v))
	}
	r := runtime.CreateRenderer(s.host, opts...)

	s.app = r.CreateApp(program.Root).Use(program)
	s.app.Config().ErrorHandler = func(err error, inst *runtime.Instance, info string) {
		s.logger.Error(info+" failed", "component", inst.Name(), "error", err)
		s.hub.broadcast(Message{Type: MessageError, Error: err.Error()})
	}
	if _, err := s.app.Mount(s.host.Root()); err != nil {
		return nil, err
	}

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/tree", s.handleTree)
	r.Get("/state", s.handleState)
	r.Post("/state/{component}/{key}", s.handleSetState)
	r.Get("/ws", s.handleWebSocket)
	r.Handle("/metrics", promhttp.HandlerFor(s.config.Gatherer, promhttp.HandlerOpts{}))
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// App returns the mounted app.
func (s *Server) App() *runtime.App {
	return s.app
}

// Loop returns the loop that owns the app.
func (s *Server) Loop() *Loop {
	return s.loop
}

// Clients returns the number of connected websocket clients.
func (s *Server) Clients() int {
	return s.hub.count()
}

// Run processes app work until ctx is done.
func (s *Server) Run(ctx context.Context) {
	s.loop.Run(ctx)
	s.hub.close()
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go s.Run(ctx)

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	s.logger.Info("preview server started", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	s.hub.close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("preview server stopped")
	return nil
}

// fragment serializes the mounted tree. It must run on the loop.
func (s *Server) fragment() (string, error) {
	return s.host.RenderChildren(s.host.Root())
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	err := s.loop.Do(r.Context(), func() error {
		return s.host.WritePage(&buf, s.host.Root(), htmlhost.Page{
			Title:   s.config.Title,
			Scripts: []string{clientScript},
		})
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleTree(w http.ResponseWriter, r *http.Request) {
	var html string
	err := s.loop.Do(r.Context(), func() error {
		var err error
		html, err = s.fragment()
		return err
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, html)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	var snapshot map[string]any
	err := s.loop.Do(r.Context(), func() error {
		snapshot = s.program.Store.Snapshot()
		return nil
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}

func (s *Server) handleSetState(w http.ResponseWriter, r *http.Request) {
	component := chi.URLParam(r, "component")
	key := chi.URLParam(r, "key")

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	value := treefile.ParseValue(string(body))

	err = s.loop.Do(r.Context(), func() error {
		if err := s.program.Store.Set(component, key, value); err != nil {
			return err
		}
		html, err := s.fragment()
		if err != nil {
			return err
		}
		s.hub.broadcast(Message{Type: MessageHTML, HTML: html})
		return nil
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, errors.New("E043")) {
			status = http.StatusNotFound
		}
		s.writeError(w, status, err)
		return
	}

	s.logger.Debug("state updated", "component", component, "key", key, "value", value)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	var html string
	err := s.loop.Do(r.Context(), func() error {
		var err error
		html, err = s.fragment()
		return err
	})
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.hub.serve(w, r, Message{Type: MessageHTML, HTML: html})
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("preview request failed", "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

const clientScript = `(function() {
  var app = document.getElementById('app');
  function connect() {
    var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
    var ws = new WebSocket(protocol + '//' + location.host + '/ws');
    ws.onmessage = function(e) {
      var msg = JSON.parse(e.data);
      if (msg.type === 'html') { app.innerHTML = msg.html; }
      if (msg.type === 'error') { console.error('[vrender]', msg.error); }
    };
    ws.onclose = function() { setTimeout(connect, 1000); };
  }
  connect();
})();`
