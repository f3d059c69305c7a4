// Package commands provides CLI commands for the admin tool
package commands

import (
	"context"
	"fmt"
	"syscall"

	"golang.org/x/term"

	"kingsadvice/internal/observability"
	serviceinterfaces "kingsadvice/internal/services/interfaces"
	contextutils "kingsadvice/internal/utils"

	"github.com/spf13/cobra"
)

// AdminCommands returns the admin account management commands
func AdminCommands(adminService serviceinterfaces.AdminService, logger *observability.Logger) *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Admin account management commands",
		Long: `Admin account management commands for the advice backend.

Available commands:
  set-password - Set the password for an admin account, creating it if missing`,
	}

	adminCmd.AddCommand(setPasswordCmd(adminService, logger))

	return adminCmd
}

// setPasswordCmd returns the set-password command
func setPasswordCmd(adminService serviceinterfaces.AdminService, logger *observability.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "set-password [username]",
		Short: "Set the password for an admin account",
		Long:  `Set the password for an admin account. Creates the account when it does not exist. If username is not provided, "admin" is used.`,
		RunE:  runSetPassword(adminService, logger),
	}
}

// runSetPassword returns a function that sets an admin password
func runSetPassword(adminService serviceinterfaces.AdminService, logger *observability.Logger) func(cmd *cobra.Command, args []string) error {
	return func(_ *cobra.Command, args []string) error {
		ctx := context.Background()

		username := "admin"
		if len(args) > 0 {
			username = args[0]
		}

		fmt.Print("Enter new password: ")
		passwordBytes, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to read password: %v", err)
		}
		password := string(passwordBytes)
		fmt.Println()

		if password == "" {
			return contextutils.ErrorWithContextf("password cannot be empty")
		}

		fmt.Print("Confirm new password: ")
		confirmBytes, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to read password confirmation: %v", err)
		}
		fmt.Println()

		if password != string(confirmBytes) {
			return contextutils.ErrorWithContextf("passwords do not match")
		}

		err = adminService.SetPassword(ctx, username, password)
		if contextutils.IsError(err, contextutils.ErrRecordNotFound) {
			_, err = adminService.CreateAdmin(ctx, username, password)
		}
		if err != nil {
			logger.Error(ctx, "Failed to set admin password", err, map[string]interface{}{"username": username})
			return contextutils.WrapErrorf(err, "failed to set password for admin '%s'", username)
		}

		fmt.Printf("Password set for admin '%s'\n", username)
		logger.Info(ctx, "Admin password set", map[string]interface{}{"username": username})

		return nil
	}
}
