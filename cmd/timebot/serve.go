package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jesses-code-adventures/timebot/internal/config"
	"github.com/jesses-code-adventures/timebot/internal/server"
	"github.com/jesses-code-adventures/timebot/internal/service"
)

func newServeCmd(timebotService *service.TimebotService, cfg *config.Config, logger *zap.Logger) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the SMS webhook",
		Long: `Serve POST /sms for the SMS provider's webhook and GET / as a health check.
The schema is created on start if it does not exist.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := timebotService.InitDB(ctx); err != nil {
				return err
			}

			addr := ":" + port
			fmt.Printf("Listening on %s\n", addr)
			if err := server.New(timebotService, logger).ListenAndServe(ctx, addr); err != nil {
				return fmt.Errorf("server stopped: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", cfg.Port, "Port to listen on")
	return cmd
}
