// ABOUTME: CLI commands for managing users and profile details.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/fitlife/internal/models"
	"github.com/spf13/cobra"
)

var (
	userAddName   string
	detailsAge    int
	detailsGender string
	detailsHeight float64
	detailsWeight float64
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage users",
}

var userAddCmd = &cobra.Command{
	Use:   "add <email>",
	Short: "Register a new user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]

		existing, err := repo.GetUserByEmail(email)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("user already exists: %s", email)
		}

		u := models.NewUser(email)
		if userAddName != "" {
			u.WithUsername(userAddName)
		}
		if err := repo.CreateUser(u); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Printf("Added user %s (ID: %s)\n", email, u.ID.String()[:8])
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered users",
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := repo.ListUsers()
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}
		if len(users) == 0 {
			fmt.Println("No users registered.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, u := range users {
			name := ""
			if u.Username != nil {
				name = fmt.Sprintf(" (%s)", *u.Username)
			}
			fmt.Printf("%s %s%s\n", faint.Sprint(u.ID.String()[:8]), u.Email, name)
		}
		return nil
	},
}

var userShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current user's profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser()
		if err != nil {
			return err
		}

		fmt.Printf("Email:   %s\n", u.Email)
		if u.Username != nil {
			fmt.Printf("Name:    %s\n", *u.Username)
		}
		fmt.Printf("ID:      %s\n", u.ID)
		fmt.Printf("Joined:  %s\n", u.CreatedAt.Format("2006-01-02"))

		det, err := repo.GetUserDetails(u.ID)
		if err != nil {
			return fmt.Errorf("failed to load details: %w", err)
		}
		if det.Age != nil {
			fmt.Printf("Age:     %d\n", *det.Age)
		}
		if det.Gender != nil {
			fmt.Printf("Gender:  %s\n", *det.Gender)
		}
		if det.Height != nil {
			fmt.Printf("Height:  %.1f cm\n", *det.Height)
		}
		if det.Weight != nil {
			fmt.Printf("Weight:  %.1f kg\n", *det.Weight)
		}
		return nil
	},
}

var userDetailsCmd = &cobra.Command{
	Use:   "details",
	Short: "Set profile details for the current user",
	Long: `Set profile details (age, gender, height, weight) for the current user.

Only the flags you pass are stored; the row is replaced wholesale, so
repeat earlier values if you want to keep them.

EXAMPLES:

  fitlife user details --age 34 --height 180 --weight 78.5
  fitlife user details --gender female --age 29`,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser()
		if err != nil {
			return err
		}

		det := &models.UserDetails{UserID: u.ID}
		if cmd.Flags().Changed("age") {
			det.Age = &detailsAge
		}
		if cmd.Flags().Changed("gender") {
			det.Gender = &detailsGender
		}
		if cmd.Flags().Changed("height") {
			det.Height = &detailsHeight
		}
		if cmd.Flags().Changed("weight") {
			det.Weight = &detailsWeight
		}

		if err := repo.UpsertUserDetails(det); err != nil {
			return fmt.Errorf("failed to save details: %w", err)
		}
		fmt.Println("Details saved.")
		return nil
	},
}

func init() {
	userAddCmd.Flags().StringVarP(&userAddName, "name", "n", "", "display name")

	userDetailsCmd.Flags().IntVar(&detailsAge, "age", 0, "age in years")
	userDetailsCmd.Flags().StringVar(&detailsGender, "gender", "", "gender")
	userDetailsCmd.Flags().Float64Var(&detailsHeight, "height", 0, "height in cm")
	userDetailsCmd.Flags().Float64Var(&detailsWeight, "weight", 0, "weight in kg")

	userCmd.AddCommand(userAddCmd, userListCmd, userShowCmd, userDetailsCmd)
	rootCmd.AddCommand(userCmd)
}
