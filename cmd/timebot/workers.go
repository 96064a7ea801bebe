package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jesses-code-adventures/timebot/internal/database"
	"github.com/jesses-code-adventures/timebot/internal/service"
	"github.com/jesses-code-adventures/timebot/internal/utils"
)

func newWorkersCmd(timebotService *service.TimebotService) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workers",
		Short: "Manage workers",
		Long:  "Commands for adding, listing and importing the workers who can text in hours.",
	}

	cmd.AddCommand(newWorkersAddCmd(timebotService))
	cmd.AddCommand(newWorkersListCmd(timebotService))
	cmd.AddCommand(newWorkersImportCmd(timebotService))

	return cmd
}

func newWorkersAddCmd(timebotService *service.TimebotService) *cobra.Command {
	var firstName, lastName, phone, email, supervisor string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			worker, err := timebotService.AddWorker(cmd.Context(), firstName, lastName, phone, email, supervisor)
			if err != nil {
				return err
			}
			fmt.Printf("Added worker: %s (ID: %d)\n", database.DisplayName(worker.FirstName, worker.LastName), worker.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first", "", "First name")
	cmd.Flags().StringVar(&lastName, "last", "", "Last name")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&supervisor, "supervisor", "", "Supervisor as 'First Last'")
	_ = cmd.MarkFlagRequired("first")
	_ = cmd.MarkFlagRequired("last")

	return cmd
}

func newWorkersListCmd(timebotService *service.TimebotService) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			workers, err := timebotService.ListWorkers(cmd.Context())
			if err != nil {
				return err
			}

			if len(workers) == 0 {
				fmt.Println("No workers found.")
				return nil
			}

			fmt.Println("Workers:")
			for _, w := range workers {
				phone := utils.FromPtr(w.Phone)
				if phone == "" {
					phone = "-"
				}
				email := utils.FromPtr(w.Email)
				if email == "" {
					email = "-"
				}
				fmt.Printf("%d - %s - %s - %s\n", w.ID, database.DisplayName(w.FirstName, w.LastName), phone, email)
			}
			return nil
		},
	}
}

func newWorkersImportCmd(timebotService *service.TimebotService) *cobra.Command {
	return &cobra.Command{
		Use:   "import <roster.yaml>",
		Short: "Import workers from a YAML roster",
		Long: `Create every worker in a YAML roster that does not exist yet.

Example roster:
  workers:
    - first_name: Jr
      last_name: Poulsen
      phone: "555-0199"
    - first_name: Taylor
      last_name: Poulsen
      supervisor: Jr Poulsen`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open roster: %w", err)
			}
			defer f.Close()

			result, err := timebotService.ImportRoster(cmd.Context(), f)
			if result != nil {
				for _, name := range result.Created {
					fmt.Printf("Added worker: %s\n", name)
				}
				for _, name := range result.Skipped {
					fmt.Printf("Skipped existing worker: %s\n", name)
				}
			}
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d workers, skipped %d\n", len(result.Created), len(result.Skipped))
			return nil
		},
	}
}
