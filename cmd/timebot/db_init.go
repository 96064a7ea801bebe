package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jesses-code-adventures/timebot/internal/config"
	"github.com/jesses-code-adventures/timebot/internal/service"
)

func newDbInitCmd(timebotService *service.TimebotService, cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "db-init",
		Short: "Create the database schema",
		Long:  "Create the workers and submissions tables if they do not exist. Safe to run more than once.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := timebotService.InitDB(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Database initialized: %s (%s)\n", cfg.DatabaseURL, cfg.DatabaseDriver)
			return nil
		},
	}
}
