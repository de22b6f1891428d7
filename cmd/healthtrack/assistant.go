package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/healthtrack/healthtrack/internal/domain/assistant"
)

func askCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>...",
		Short: "Ask the assistant about your records",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.warnIfExpiring(cmd.Context())

			ans, err := assistant.NewClient(a.api).Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(ans.Answer)
			if len(ans.Sources) > 0 {
				fmt.Println("\nSources:")
				for _, src := range ans.Sources {
					fmt.Printf("  - %s: %s (%s)\n", src.Kind, src.Name, src.ID)
				}
			}
			return nil
		},
	}
}
