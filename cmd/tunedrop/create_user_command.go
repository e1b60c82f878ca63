package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tunedrop/internal/auth"
	"tunedrop/internal/config"
)

func newCreateUserCommand() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an account in the user database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			store, err := auth.OpenStore(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open user store: %w", err)
			}
			defer store.Close()

			if err := store.CreateUser(cmd.Context(), username, password); err != nil {
				return err
			}

			fmt.Printf("Usuario %q creado.\n", username)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username for the new account")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password for the new account")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("password")

	return cmd
}
