package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/checkdisout/checkdisout/pkg/config"
	"github.com/checkdisout/checkdisout/pkg/export"
	"github.com/checkdisout/checkdisout/pkg/logger"
	"github.com/checkdisout/checkdisout/pkg/metrics"
	"github.com/checkdisout/checkdisout/pkg/server"
	"github.com/checkdisout/checkdisout/pkg/store"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var servePort int

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the export API over HTTP",
	Long: `Run the HTTP export API.

Routes:
  POST /api/export                    render the posted portfolio to PDF
  POST /api/stats                     summarize the posted portfolio
  GET  /api/users/:id/portfolio.pdf   render a stored portfolio (needs a database)
  GET  /healthz                       liveness
  GET  /metrics                       prometheus metrics

Example:
  checkdisout serve
  checkdisout serve --port 9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (default from config, 8080)")
}

func runServe(cmd *cobra.Command, args []string) (err error) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg config.Config
	cfg, err = setup()
	if err != nil {
		return err
	}
	log := logger.Get()
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var recorder *metrics.Recorder
	recorder, err = metrics.New(reg)
	if err != nil {
		err = errors.Wrap(err, "failed to register metrics")
		return err
	}

	var x *export.Exporter
	var closer func()
	x, closer, err = newExporter(ctx, cfg, export.WithRecorder(recorder), export.WithLogger(log))
	if err != nil {
		return err
	}
	defer closer()

	opts := server.Options{
		Renderer: x,
		Gatherer: reg,
		Env:      cfg.Server.Env,
	}

	if cfg.Database.DSN != "" {
		var repo *store.Repository
		repo, err = openStore(ctx, cfg)
		if err != nil {
			return err
		}
		opts.Loader = repo
		log.Info("record store enabled", zap.String("driver", cfg.Database.Driver))
	}

	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}

	err = server.Run(ctx, fmt.Sprintf(":%d", port), server.NewRouter(opts), log)
	return err
}
