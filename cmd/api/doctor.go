package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository/postgres"
	"github.com/jwalitptl/hospital-api/pkg/validator"
)

func doctorCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Manage doctors",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Register a doctor who can receive booking notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			var doctor model.Doctor
			doctor.Name, _ = cmd.Flags().GetString("name")
			doctor.Department, _ = cmd.Flags().GetString("department")
			doctor.Email, _ = cmd.Flags().GetString("email")

			if err := validator.New().Validate(&doctor); err != nil {
				return err
			}

			cfg, log, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			ctx := context.Background()
			db, err := openDatabase(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := postgres.NewDoctorRepository(db).Create(ctx, &doctor); err != nil {
				return fmt.Errorf("failed to add doctor: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added doctor %d: %s (%s)\n", doctor.ID, doctor.Name, doctor.Department)
			return nil
		},
	}
	addCmd.Flags().String("name", "", "Doctor's display name")
	addCmd.Flags().String("department", "", "Department, e.g. Cardiology")
	addCmd.Flags().String("email", "", "Address that receives new-booking notifications")

	cmd.AddCommand(addCmd)
	return cmd
}
