package main

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jesses-code-adventures/timebot/internal/models"
	"github.com/jesses-code-adventures/timebot/internal/service"
)

func newAddTimeCmd(timebotService *service.TimebotService) *cobra.Command {
	var firstName, lastName, date, hours, location string

	cmd := &cobra.Command{
		Use:   "add-time",
		Short: "Record hours for a worker by hand",
		Long: `Record hours for a worker on a given day. An existing submission for that
worker and day is replaced, exactly as a second text message would.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if firstName == "" || lastName == "" {
				return fmt.Errorf("--first and --last are required")
			}

			amount, err := decimal.NewFromString(hours)
			if err != nil {
				return fmt.Errorf("invalid hours %q: %w", hours, err)
			}

			var day time.Time
			if date == "" {
				day = timebotService.Today()
			} else if day, err = models.ParseDay(date); err != nil {
				return err
			}

			msg, err := timebotService.AddTime(cmd.Context(), firstName, lastName, day, amount, location)
			if err != nil {
				return err
			}
			fmt.Println(msg)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first", "", "Worker first name")
	cmd.Flags().StringVar(&lastName, "last", "", "Worker last name")
	cmd.Flags().StringVarP(&date, "date", "d", "", "Day worked (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&hours, "hours", "", "Hours worked, e.g. 7.5")
	cmd.Flags().StringVarP(&location, "location", "l", "", "Job location")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}
