package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/healthtrack/healthtrack/internal/domain/notification"
	"github.com/healthtrack/healthtrack/pkg/pagination"
)

func notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notifications",
		Aliases: []string{"notifs"},
		Short:   "Review notifications",
	}
	cmd.AddCommand(
		notificationsListCmd(),
		notificationsStatsCmd(),
		notificationsMarkReadCmd(),
		notificationsMarkAllReadCmd(),
		notificationsDeleteCmd(),
	)
	return cmd
}

func notificationsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.warnIfExpiring(cmd.Context())

			unread, _ := cmd.Flags().GetBool("unread")
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")

			notifs := notification.NewClient(a.api)
			res, err := load(cmd.Context(), a, func(ctx context.Context) ([]notification.Notification, error) {
				items, _, err := notifs.List(ctx, notification.Filter{
					UnreadOnly: unread,
					Page:       pagination.Params{Limit: limit, Offset: offset},
				})
				return items, err
			}, notification.Sample())
			if err != nil {
				return err
			}

			disclose(res, "notifications")
			printNotifications(res.Data)
			return nil
		},
	}
	cmd.Flags().Bool("unread", false, "Only unread notifications")
	cmd.Flags().Int("limit", pagination.DefaultLimit, "Page size")
	cmd.Flags().Int("offset", 0, "Page offset")
	return cmd
}

func notificationsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show notification counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			stats, err := notification.NewClient(a.api).Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Total: %d  Unread: %d\n", stats.Total, stats.Unread)
			for _, sev := range []string{notification.SeverityInfo, notification.SeverityWarning, notification.SeverityCritical} {
				if n := stats.BySeverity[sev]; n > 0 {
					fmt.Printf("  %-10s %d\n", sev, n)
				}
			}
			return nil
		},
	}
}

func notificationsMarkReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-read <id>...",
		Short: "Mark notifications as read",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ids := make([]uuid.UUID, 0, len(args))
			for _, arg := range args {
				id, err := uuid.Parse(arg)
				if err != nil {
					return fmt.Errorf("invalid notification id %q: %w", arg, err)
				}
				ids = append(ids, id)
			}
			if err := notification.NewClient(a.api).MarkRead(cmd.Context(), ids); err != nil {
				return err
			}
			fmt.Printf("Marked %d notification(s) as read.\n", len(ids))
			return nil
		},
	}
}

func notificationsMarkAllReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-all-read",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := notification.NewClient(a.api).MarkAllRead(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("All notifications marked as read.")
			return nil
		},
	}
}

func notificationsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a notification",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid notification id: %w", err)
			}
			if err := notification.NewClient(a.api).Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}

func printNotifications(items []notification.Notification) {
	if len(items) == 0 {
		fmt.Println("No notifications.")
		return
	}
	for _, n := range items {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Printf("%s [%-8s] %s: %s (%s)\n", marker, n.Severity, n.Title, n.Message,
			n.CreatedAt.Format("2006-01-02 15:04"))
	}
}
