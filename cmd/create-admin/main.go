// Command create-admin bootstraps an administrator account so a fresh
// deployment can log in and manage further users through the API.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
	"github.com/pamoja-lab/cdf-tracker/dao/query"
	"github.com/pamoja-lab/cdf-tracker/pkg/config"
	"github.com/pamoja-lab/cdf-tracker/pkg/db/user"
)

func main() {
	var (
		username string
		password string
		fullName string
		email    string
	)

	cmd := &cobra.Command{
		Use:   "create-admin --username admin --password secret",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(password) < 6 {
				return fmt.Errorf("password must be at least 6 characters")
			}

			_ = godotenv.Load()
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			db, err := query.Open(cfg)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}
			if err = query.Migrate(db); err != nil {
				return fmt.Errorf("migrate database: %w", err)
			}

			hash, err := user.HashPassword(password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			u := model.User{
				Username:     username,
				PasswordHash: hash,
				Role:         model.RoleAdmin,
				Status:       model.UserActive,
			}
			if fullName != "" {
				u.FullName = &fullName
			}
			if email != "" {
				u.Email = &email
			}

			err = user.NewService(db).Create(cmd.Context(), &u)
			if errors.Is(err, user.ErrUsernameTaken) {
				return fmt.Errorf("username %q already exists", username)
			}
			if err != nil {
				return fmt.Errorf("create user: %w", err)
			}

			fmt.Printf("Admin account %q created (id %d)\n", u.Username, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "login name for the new admin")
	cmd.Flags().StringVar(&password, "password", "", "initial password (min 6 characters)")
	cmd.Flags().StringVar(&fullName, "full-name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
