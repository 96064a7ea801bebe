package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jesses-code-adventures/timebot/internal/config"
	"github.com/jesses-code-adventures/timebot/internal/models"
	"github.com/jesses-code-adventures/timebot/internal/service"
)

func newTimecardsCmd(timebotService *service.TimebotService, cfg *config.Config) *cobra.Command {
	var fromDate, toDate, outDir string
	var noPDF bool

	cmd := &cobra.Command{
		Use:   "timecards",
		Short: "Print and export timecards for a pay period",
		Long: `Build one timecard per worker with hours in the period, print it and write it
as a PDF. Without --from and --to the period is Monday to Sunday of last week.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			from, to := timebotService.DefaultTimecardPeriod()
			var err error
			if fromDate != "" {
				if from, err = models.ParseDay(fromDate); err != nil {
					return err
				}
			}
			if toDate != "" {
				if to, err = models.ParseDay(toDate); err != nil {
					return err
				}
			} else if fromDate != "" {
				to = from.AddDate(0, 0, 6)
			}

			cards, err := timebotService.Timecards(ctx, from, to)
			if err != nil {
				return err
			}

			if len(cards) == 0 {
				fmt.Printf("No hours found between %s and %s\n", from.Format(models.DayFormat), to.Format(models.DayFormat))
				return nil
			}

			for _, card := range cards {
				fmt.Println(card.String())
			}

			if noPDF {
				return nil
			}

			paths, err := timebotService.WriteTimecardPDFs(cards, outDir)
			if err != nil {
				return err
			}
			for _, path := range paths {
				fmt.Printf("Generated timecard: %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromDate, "from", "", "First day of the period (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toDate, "to", "", "Last day of the period (YYYY-MM-DD, defaults to six days after --from)")
	cmd.Flags().StringVarP(&outDir, "out", "o", cfg.TimecardDir, "Directory for PDF timecards")
	cmd.Flags().BoolVar(&noPDF, "no-pdf", false, "Only print the timecards")

	return cmd
}

