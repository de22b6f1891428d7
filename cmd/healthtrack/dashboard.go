package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/healthtrack/healthtrack/internal/domain/medication"
	"github.com/healthtrack/healthtrack/internal/domain/notification"
	"github.com/healthtrack/healthtrack/internal/domain/reading"
	"github.com/healthtrack/healthtrack/internal/domain/symptom"
	"github.com/healthtrack/healthtrack/internal/platform/join"
	"github.com/healthtrack/healthtrack/internal/platform/loader"
	"github.com/healthtrack/healthtrack/pkg/pagination"
)

const dashboardPageSize = 5

// dashboardCmd fetches every section concurrently and renders whatever
// settled. A failing section falls back to sample data instead of taking
// the whole screen down.
func dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show a summary of medications, symptoms, readings, and notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.warnIfExpiring(cmd.Context())

			page := pagination.Params{Limit: dashboardPageSize}
			meds := medication.NewClient(a.api)
			syms := symptom.NewClient(a.api)
			readings := reading.NewClient(a.api)
			notifs := notification.NewClient(a.api)

			var (
				medRes   loader.Result[medication.Medication]
				symRes   loader.Result[symptom.Symptom]
				readRes  loader.Result[reading.Reading]
				notifRes loader.Result[notification.Notification]
			)

			outcomes := join.All(cmd.Context(),
				join.Task{Name: "medications", Run: func(ctx context.Context) error {
					var err error
					medRes, err = load(ctx, a, func(ctx context.Context) ([]medication.Medication, error) {
						items, _, err := meds.List(ctx, medication.Filter{Status: medication.StatusActive, Page: page})
						return items, err
					}, medication.Sample())
					return err
				}},
				join.Task{Name: "symptoms", Run: func(ctx context.Context) error {
					var err error
					symRes, err = load(ctx, a, func(ctx context.Context) ([]symptom.Symptom, error) {
						return syms.Recent(ctx, 7)
					}, symptom.Sample())
					return err
				}},
				join.Task{Name: "readings", Run: func(ctx context.Context) error {
					var err error
					readRes, err = load(ctx, a, func(ctx context.Context) ([]reading.Reading, error) {
						items, _, err := readings.List(ctx, reading.Filter{Page: page})
						return items, err
					}, reading.Sample())
					return err
				}},
				join.Task{Name: "notifications", Run: func(ctx context.Context) error {
					var err error
					notifRes, err = load(ctx, a, func(ctx context.Context) ([]notification.Notification, error) {
						items, _, err := notifs.List(ctx, notification.Filter{UnreadOnly: true, Page: page})
						return items, err
					}, notification.Sample())
					return err
				}},
			)

			// With sample fallback on, a task only errors when the context was
			// cancelled; surface the first such error and stop.
			for _, o := range join.Failed(outcomes) {
				return fmt.Errorf("%s: %w", o.Name, o.Err)
			}

			fmt.Println("== Active medications ==")
			disclose(medRes, "medications")
			printMedications(medRes.Data)

			fmt.Println("\n== Symptoms (last 7 days) ==")
			disclose(symRes, "symptoms")
			printSymptoms(symRes.Data)

			fmt.Println("\n== Recent readings ==")
			disclose(readRes, "readings")
			printReadings(readRes.Data)

			fmt.Println("\n== Unread notifications ==")
			disclose(notifRes, "notifications")
			printNotifications(notifRes.Data)
			return nil
		},
	}
}
