package main

import (
	"github.com/spf13/cobra"

	"github.com/jesses-code-adventures/timebot/internal/config"
)

func newConfigCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			cfg.Dump()
		},
	}
}
