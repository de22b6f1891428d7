package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/healthtrack/healthtrack/internal/domain/medication"
	"github.com/healthtrack/healthtrack/pkg/pagination"
)

func medicationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "medications",
		Aliases: []string{"meds"},
		Short:   "Track medications",
	}
	cmd.AddCommand(
		medicationsListCmd(),
		medicationsAddCmd(),
		medicationsGetCmd(),
		medicationsStatusCmd(),
		medicationsDeleteCmd(),
	)
	return cmd
}

func medicationsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List medications",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.warnIfExpiring(cmd.Context())

			status, _ := cmd.Flags().GetString("status")
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")

			meds := medication.NewClient(a.api)
			res, err := load(cmd.Context(), a, func(ctx context.Context) ([]medication.Medication, error) {
				items, _, err := meds.List(ctx, medication.Filter{
					Status: status,
					Page:   pagination.Params{Limit: limit, Offset: offset},
				})
				return items, err
			}, medication.Sample())
			if err != nil {
				return err
			}

			disclose(res, "medications")
			printMedications(res.Data)
			return nil
		},
	}
	cmd.Flags().String("status", "", "Filter by status (active, completed, discontinued, on_hold)")
	cmd.Flags().Int("limit", pagination.DefaultLimit, "Page size")
	cmd.Flags().Int("offset", 0, "Page offset")
	return cmd
}

func medicationsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a medication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			dosage, _ := cmd.Flags().GetString("dosage")
			frequency, _ := cmd.Flags().GetString("frequency")
			prescriber, _ := cmd.Flags().GetString("prescriber")

			m := medication.Medication{
				Name:       args[0],
				Dosage:     dosage,
				Frequency:  frequency,
				Prescriber: prescriber,
			}
			if err := medication.NewClient(a.api).Create(cmd.Context(), &m); err != nil {
				return err
			}
			fmt.Printf("Added %s (%s)\n", m.Name, m.ID)
			return nil
		},
	}
	cmd.Flags().String("dosage", "", "Dosage, e.g. 10mg")
	cmd.Flags().String("frequency", "", "Dosing frequency, e.g. once_daily")
	cmd.Flags().String("prescriber", "", "Prescribing clinician")
	return cmd
}

func medicationsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one medication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid medication id: %w", err)
			}
			m, err := medication.NewClient(a.api).Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n  Frequency:  %s\n  Status:     %s\n  Prescriber: %s\n  Started:    %s\n",
				m.Name, m.Dosage, medication.FrequencyLabel(m.Frequency), m.Status,
				m.Prescriber, m.StartDate.Format("2006-01-02"))
			if m.Notes != nil {
				fmt.Printf("  Notes:      %s\n", *m.Notes)
			}
			return nil
		},
	}
}

// medicationsStatusCmd changes a medication's status, e.g. discontinuing it.
func medicationsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change a medication's status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid medication id: %w", err)
			}
			if !medication.ValidStatus(args[1]) {
				return fmt.Errorf("invalid status: %s", args[1])
			}

			meds := medication.NewClient(a.api)
			m, err := meds.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			m.Status = args[1]
			if err := meds.Update(cmd.Context(), m); err != nil {
				return err
			}
			fmt.Printf("%s is now %s\n", m.Name, m.Status)
			return nil
		},
	}
}

func medicationsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a medication",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid medication id: %w", err)
			}
			if err := medication.NewClient(a.api).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}

func printMedications(meds []medication.Medication) {
	if len(meds) == 0 {
		fmt.Println("No medications.")
		return
	}
	fmt.Printf("%-36s %-20s %-10s %-18s %s\n", "ID", "NAME", "DOSAGE", "FREQUENCY", "STATUS")
	for _, m := range meds {
		fmt.Printf("%-36s %-20s %-10s %-18s %s\n",
			m.ID, m.Name, m.Dosage, medication.FrequencyLabel(m.Frequency), m.Status)
	}
}
