package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mberan/tfm"
	httpAdapter "github.com/mberan/tfm/internal/adapters/http"
	"github.com/mberan/tfm/internal/logging"
	"github.com/mberan/tfm/internal/logparse"
	"github.com/mberan/tfm/internal/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the failure report over HTTP",
	Long: `Analyzes a log file and exposes the resulting report over HTTP:
JSON at /report, markdown at /report.md, ascii at /report.txt, a Mermaid
sankey at /graph and Prometheus metrics at /metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")
		logFile, _ := cmd.Flags().GetString("log-file")
		verbose, _ := cmd.Flags().GetBool("verbose")

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := logging.New(level)

		recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)
		tracker := tfm.New(tfm.WithObserver(recorder.Observe))

		if logFile != "" {
			if err := logparse.New().ParseFile(logFile, tracker); err != nil {
				logger.Error("failed to parse log file", "err", err)
				os.Exit(1)
			}
			logger.Info("log file loaded", "path", logFile, "events", len(tracker.Events()))
		}

		srv := &http.Server{
			Addr:    addr,
			Handler: httpAdapter.NewHandler(tracker),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			logger.Info("serving transition report", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			logger.Error("server error", "err", err)
			os.Exit(1)

		case sig := <-shutdown:
			logger.Info("starting shutdown", "signal", fmt.Sprint(sig))

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Error("graceful shutdown did not complete", "timeout", 5*time.Second, "err", err)
				if err := srv.Close(); err != nil {
					logger.Error("error killing server", "err", err)
				}
			}
			logger.Info("report server stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().StringP("log-file", "l", "", "Log file to analyze at startup")
	serveCmd.Flags().Bool("verbose", false, "Enable debug logging")
}
