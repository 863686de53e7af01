package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wdm0006/prepkit/pkg/engine"
	"github.com/wdm0006/prepkit/pkg/metrics"
	"github.com/wdm0006/prepkit/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the processing API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := settings(cmd.Flags())
		if err != nil {
			return err
		}
		rec, err := metrics.NewRecorder()
		if err != nil {
			return err
		}
		if logCfg.Level != "debug" {
			gin.SetMode(gin.ReleaseMode)
		}
		srv := &http.Server{
			Addr:              v.GetString("addr"),
			Handler:           server.NewRouter(server.NewAPI(logger, rec, v.GetDuration("latency"))),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errc := make(chan error, 1)
		go func() {
			logger.Info("listening", zap.String("addr", srv.Addr))
			errc <- srv.ListenAndServe()
		}()
		select {
		case err := <-errc:
			return err
		case <-cmd.Context().Done():
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	f := serveCmd.Flags()
	f.String("addr", ":8080", "listen address")
	f.Duration("latency", engine.DefaultLatency, "pause between validation and processing")
	rootCmd.AddCommand(serveCmd)
}
