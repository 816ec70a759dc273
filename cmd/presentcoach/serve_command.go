package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"presentcoach/internal/daemon"
	"presentcoach/internal/httpapi"
	"presentcoach/internal/logging"
)

const defaultShutdownTimeout = 30 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	var bind string
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if bind != "" {
				cfg.Server.Bind = bind
			}
			logger, err := ctx.logger(true)
			if err != nil {
				return err
			}

			runCtx := cmd.Context()
			if runCtx == nil {
				runCtx = context.Background()
			}
			rt, err := newRuntime(runCtx, cfg, logger)
			if err != nil {
				return err
			}
			defer rt.Close()

			api, err := httpapi.New(httpapi.Options{
				Jobs:           rt.manager,
				Reports:        rt.store,
				Preflight:      rt.orchestrator,
				Logger:         logger,
				RequestTimeout: time.Duration(cfg.Server.RequestTimeoutSeconds) * time.Second,
			})
			if err != nil {
				return err
			}
			d, err := daemon.New(cfg, rt.store, rt.manager, api.Handler(), logger)
			if err != nil {
				return err
			}
			if err := d.Start(runCtx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "presentcoach listening on http://%s\n", d.Addr())

			<-runCtx.Done()
			logger.Info("shutdown requested", logging.Duration("timeout", shutdownTimeout))
			stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			d.Stop(stopCtx)
			return nil
		},
	}
	cmd.Flags().StringVar(&bind, "bind", "", "Override [server] bind address")
	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", defaultShutdownTimeout, "How long to wait for in-flight analyses on shutdown")
	return cmd
}
