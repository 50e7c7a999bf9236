// Account commands: register and passwd.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Long: `Register creates an account and its default folder.

Example:
  binder register --user alice --password secret`,
	RunE: runRegister,
}

func runRegister(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Register(flagUser, flagPassword); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	fmt.Printf("Registered user %q\n", flagUser)
	return nil
}

var (
	passwdNewUser     string
	passwdNewPassword string
)

var passwdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Update account credentials",
	Long: `Passwd renames the account and/or replaces its password. The rename
cascades to every folder and record the account owns; renaming onto an
existing account is rejected.

Example:
  binder passwd --user alice --password secret --new-user alicia --new-password hunter2`,
	RunE: runPasswd,
}

func init() {
	passwdCmd.Flags().StringVar(&passwdNewUser, "new-user", "", "new username (default: unchanged)")
	passwdCmd.Flags().StringVar(&passwdNewPassword, "new-password", "", "new password (required)")
	_ = passwdCmd.MarkFlagRequired("new-password")
}

func runPasswd(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	owner, err := requireAuth(store)
	if err != nil {
		return err
	}

	newUser := passwdNewUser
	if newUser == "" {
		newUser = owner
	}
	if err := store.UpdateCredentials(owner, newUser, passwdNewPassword); err != nil {
		return fmt.Errorf("update credentials: %w", err)
	}
	fmt.Printf("Updated credentials for %q\n", newUser)
	return nil
}
