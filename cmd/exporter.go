package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vjt/quectel-5g-tools/metrics"
)

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Serve signal and cell metrics over a Prometheus endpoint.",
	Run:   exporter,
}

func init() {
	rootCmd.AddCommand(exporterCmd)
}

func exporter(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, err := openModem(ctx, cfg)
	if err != nil {
		log.Fatalf("open modem: %v", err)
	}
	defer m.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(metrics.NewCollector(m, cfg.Metrics.ScrapeTimeout.Std()))

	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("serving metrics on %s%s", server.Addr, cfg.Metrics.Path)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("serve: %v", err)
	}
}
