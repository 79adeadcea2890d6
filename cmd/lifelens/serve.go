package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/TobiSchelling/lifelens/internal/database"
	"github.com/TobiSchelling/lifelens/internal/metrics"
	"github.com/TobiSchelling/lifelens/internal/pipeline"
	"github.com/TobiSchelling/lifelens/internal/server"
	"github.com/TobiSchelling/lifelens/internal/watch"
)

var (
	servePort   int
	watchFile   string
	watchPeriod string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if watchPeriod != "" && watchFile == "" {
			return errors.New("--watch-period requires --watch")
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		m := metrics.New()
		pipe, err := pipeline.New(cfg, db, logger)
		if err != nil {
			return err
		}
		pipe.WithMetrics(m)
		composer := pipe.Composer()

		srv, err := server.New(cfg, db, composer, m, logger)
		if err != nil {
			return err
		}

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		g, ctx := errgroup.WithContext(cmd.Context())
		if watchFile != "" {
			periodID := watchPeriod
			if periodID == "" {
				periodID = database.GetToday()
			}
			reloader := &watch.Reloader{
				DB:       db,
				Composer: composer,
				PeriodID: periodID,
				Path:     watchFile,
				Logger:   logger,
			}
			if err := reloader.Reload(ctx); err != nil {
				logger.Warn("initial import failed", zap.String("path", watchFile), zap.Error(err))
			}
			w := watch.New(watchFile, reloader.Reload, logger)
			g.Go(func() error { return w.Run(ctx) })
		}
		g.Go(func() error { return srv.Serve(ctx, port) })

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8000, "Port to run server on (overrides config)")
	serveCmd.Flags().StringVar(&watchFile, "watch", "", "Dataset file to import and re-import whenever it changes")
	serveCmd.Flags().StringVar(&watchPeriod, "watch-period", "", "Period the watched dataset belongs to (default today)")
}
