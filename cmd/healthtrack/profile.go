package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/healthtrack/healthtrack/internal/domain/profile"
)

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit your profile",
	}
	cmd.AddCommand(profileShowCmd(), profileUpdateCmd())
	return cmd
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the signed-in user's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.warnIfExpiring(cmd.Context())

			u, err := profile.NewClient(a.api).Me(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Println(u.Name)
			if age := profile.AgeAt(u.DOB, time.Now()); age >= 0 {
				fmt.Printf("  Age:    %d\n", age)
			}
			if u.WeightKG != nil {
				fmt.Printf("  Weight: %.1f kg\n", *u.WeightKG)
			}
			if u.HeightCM != nil {
				fmt.Printf("  Height: %.0f cm\n", *u.HeightCM)
			}
			if u.Gender != nil {
				fmt.Printf("  Gender: %s\n", *u.Gender)
			}
			if len(u.Conditions) > 0 {
				fmt.Println("  Conditions:")
				for _, c := range u.Conditions {
					fmt.Printf("    - %s\n", c.Name)
				}
			}
			return nil
		},
	}
}

func profileUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			var patch profile.ProfilePatch
			if cmd.Flags().Changed("name") {
				v, _ := cmd.Flags().GetString("name")
				patch.Name = &v
			}
			if cmd.Flags().Changed("dob") {
				raw, _ := cmd.Flags().GetString("dob")
				dob, err := time.Parse("2006-01-02", raw)
				if err != nil {
					return fmt.Errorf("invalid --dob, expected YYYY-MM-DD: %w", err)
				}
				patch.DOB = &dob
			}
			if cmd.Flags().Changed("weight") {
				v, _ := cmd.Flags().GetFloat64("weight")
				patch.WeightKG = &v
			}
			if cmd.Flags().Changed("height") {
				v, _ := cmd.Flags().GetFloat64("height")
				patch.HeightCM = &v
			}
			if cmd.Flags().Changed("gender") {
				v, _ := cmd.Flags().GetString("gender")
				patch.Gender = &v
			}
			if patch == (profile.ProfilePatch{}) {
				return fmt.Errorf("nothing to update; pass at least one flag")
			}

			u, err := profile.NewClient(a.api).UpdateProfile(cmd.Context(), patch)
			if err != nil {
				return err
			}
			fmt.Printf("Profile updated for %s.\n", u.Name)
			return nil
		},
	}
	cmd.Flags().String("name", "", "Display name")
	cmd.Flags().String("dob", "", "Date of birth (YYYY-MM-DD)")
	cmd.Flags().Float64("weight", 0, "Weight in kg")
	cmd.Flags().Float64("height", 0, "Height in cm")
	cmd.Flags().String("gender", "", "Gender")
	return cmd
}
