package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jesses-code-adventures/timebot/internal/config"
	"github.com/jesses-code-adventures/timebot/internal/service"
)

func newRootCmd(timebotService *service.TimebotService, cfg *config.Config, logger *zap.Logger) *cobra.Command {
	var dbConn, dbDriver string

	rootCmd := &cobra.Command{
		Use:   "timebot",
		Short: "Record crew hours sent by text message",
		Long: `Workers text their hours as "Time <first> <last> <start> <end> <lunch> [<extra>]".
timebot validates the message, records one submission per worker per day and
replies with a confirmation. Admin commands manage workers, enter time by hand
and produce weekly timecards.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addConnectionFlags(rootCmd.PersistentFlags(), &dbConn, &dbDriver)

	rootCmd.AddCommand(
		newServeCmd(timebotService, cfg, logger),
		newMessageCmd(timebotService),
		newAddTimeCmd(timebotService),
		newWorkersCmd(timebotService),
		newTimecardsCmd(timebotService, cfg),
		newDbInitCmd(timebotService, cfg),
		newConfigCmd(cfg),
	)

	return rootCmd
}
