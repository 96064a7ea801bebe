package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jesses-code-adventures/timebot/internal/service"
)

func newMessageCmd(timebotService *service.TimebotService) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "message <text>",
		Short: "Process a message as if it had been texted in",
		Long: `Run a message through the same handling as the SMS webhook and print the reply.

Example:
  timebot message --from +15550100 Time Taylor Poulsen 11:46am 5:04pm 1.25 3.6`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := timebotService.HandleMessage(cmd.Context(), strings.Join(args, " "), from)
			if text == "" {
				fmt.Println("Message ignored (no reply).")
				return nil
			}
			fmt.Println(text)
			return nil
		},
	}

	cmd.Flags().StringVarP(&from, "from", "f", "cli", "Sender identifier recorded with the submission")
	return cmd
}
