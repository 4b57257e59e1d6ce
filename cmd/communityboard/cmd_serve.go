package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"communityboard/internal/apitest"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	serveAddr  string
	serveEmpty bool
)

// serveFakeCmd serves the in-memory backend for demos and manual testing.
var serveFakeCmd = &cobra.Command{
	Use:   "serve-fake",
	Short: "Run an in-memory community backend",
	Long: `Serves the community API from memory, seeded with demo data unless
--empty is given. Log in as "` + apitest.DemoUserID + `" to use the Profile tab.

Example:
  communityboard serve-fake --addr :5000 &
  communityboard login ` + apitest.DemoUserID + `
  communityboard --api-url http://localhost:5000`,
	Args: cobra.NoArgs,
	RunE: runServeFake,
}

// newFakeBackend returns the backend served by serve-fake.
func newFakeBackend(seed bool) *apitest.Backend {
	b := apitest.NewBackend(logger)
	if seed {
		apitest.Seed(b)
	}
	return b
}

func runServeFake(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              serveAddr,
		Handler:           newFakeBackend(!serveEmpty),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("fake backend listening", zap.String("addr", serveAddr))
	fmt.Fprintf(cmd.OutOrStdout(), "Serving fake backend on %s (Ctrl+C to stop)\n", serveAddr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down fake backend")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
