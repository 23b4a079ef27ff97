package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/kojioka/kojioka-go/pkg/mockapi"
)

const shutdownTimeout = 5 * time.Second

// mockCommand creates the "mock" command, which serves a local stand-in
// for the Kojioka API.
func (c *CLI) mockCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Serve a local mock of the Kojioka API",
		Long: `Serve /status, /search and /get-stream from a built-in catalog.

Point the client at it with --base-url:

  kojioka mock --addr 127.0.0.1:8080 &
  kojioka --base-url http://127.0.0.1:8080 stream "never gonna give you up"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			return c.serveMock(cmd.Context(), ln)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	return cmd
}

// serveMock serves the mock API on ln until ctx is done.
func (c *CLI) serveMock(ctx context.Context, ln net.Listener) error {
	logger := loggerFromContext(ctx)

	srv := &http.Server{
		Handler:           mockapi.NewServer(nil).Router(requestLogger(logger)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	printSuccess(c.errOut, "Mock Kojioka API listening on http://%s", ln.Addr())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("shutting down mock server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errCh
	return nil
}

// requestLogger logs one line per request.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"query", r.URL.RawQuery,
				"status", ww.Status(),
				"duration", time.Since(start).Round(time.Microsecond),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
