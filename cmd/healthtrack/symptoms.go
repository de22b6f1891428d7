package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/healthtrack/healthtrack/internal/domain/symptom"
	"github.com/healthtrack/healthtrack/pkg/pagination"
)

func symptomsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symptoms",
		Short: "Log and review symptoms",
	}
	cmd.AddCommand(
		symptomsListCmd(),
		symptomsLogCmd(),
		symptomsStatsCmd(),
		symptomsRecentCmd(),
		symptomsDeleteCmd(),
	)
	return cmd
}

func symptomsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List symptoms",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.warnIfExpiring(cmd.Context())

			severity, _ := cmd.Flags().GetString("severity")
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")

			syms := symptom.NewClient(a.api)
			res, err := load(cmd.Context(), a, func(ctx context.Context) ([]symptom.Symptom, error) {
				items, _, err := syms.List(ctx, symptom.Filter{
					Severity: severity,
					Page:     pagination.Params{Limit: limit, Offset: offset},
				})
				return items, err
			}, symptom.Sample())
			if err != nil {
				return err
			}

			disclose(res, "symptoms")
			printSymptoms(res.Data)
			return nil
		},
	}
	cmd.Flags().String("severity", "", "Filter by severity (mild, moderate, severe, critical)")
	cmd.Flags().Int("limit", pagination.DefaultLimit, "Page size")
	cmd.Flags().Int("offset", 0, "Page offset")
	return cmd
}

func symptomsLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <description>",
		Short: "Log a symptom",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			severity, _ := cmd.Flags().GetString("severity")
			notes, _ := cmd.Flags().GetString("notes")
			medID, _ := cmd.Flags().GetString("medication")

			s := symptom.Symptom{Description: args[0], Severity: severity}
			if notes != "" {
				s.Notes = &notes
			}
			if medID != "" {
				id, err := uuid.Parse(medID)
				if err != nil {
					return fmt.Errorf("invalid medication id: %w", err)
				}
				s.MedicationID = &id
			}

			if err := symptom.NewClient(a.api).Create(cmd.Context(), &s); err != nil {
				return err
			}
			d := symptom.SeverityDisplay(s.Severity)
			fmt.Printf("Logged %q (%s, level %d)\n", s.Description, d.Label, d.Level)
			return nil
		},
	}
	cmd.Flags().String("severity", symptom.SeverityMild, "Severity (mild, moderate, severe, critical)")
	cmd.Flags().String("notes", "", "Free-form notes")
	cmd.Flags().String("medication", "", "ID of the medication suspected of causing it")
	return cmd
}

func symptomsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate symptom counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			stats, err := symptom.NewClient(a.api).StatsOverview(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Total: %d\n", stats.Total)
			for _, sev := range []string{symptom.SeverityMild, symptom.SeverityModerate, symptom.SeveritySevere, symptom.SeverityCritical} {
				if n := stats.BySeverity[sev]; n > 0 {
					fmt.Printf("  %-10s %d\n", symptom.SeverityDisplay(sev).Label, n)
				}
			}
			if len(stats.MostCommon) > 0 {
				fmt.Println("Most common:")
				for _, name := range stats.MostCommon {
					fmt.Printf("  - %s\n", name)
				}
			}
			return nil
		},
	}
}

func symptomsRecentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recent [days]",
		Short: "List symptoms from the past days (default 7)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			days := 7
			if len(args) == 1 {
				days, err = strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid day count: %w", err)
				}
			}
			items, err := symptom.NewClient(a.api).Recent(cmd.Context(), days)
			if err != nil {
				return err
			}
			printSymptoms(items)
			return nil
		},
	}
}

func symptomsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a symptom entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid symptom id: %w", err)
			}
			if err := symptom.NewClient(a.api).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}

func printSymptoms(syms []symptom.Symptom) {
	if len(syms) == 0 {
		fmt.Println("No symptoms.")
		return
	}
	fmt.Printf("%-36s %-30s %-10s %s\n", "ID", "DESCRIPTION", "SEVERITY", "DATE")
	for _, s := range syms {
		fmt.Printf("%-36s %-30s %-10s %s\n",
			s.ID, s.Description, symptom.SeverityDisplay(s.Severity).Label, s.Date.Format("2006-01-02"))
	}
}
