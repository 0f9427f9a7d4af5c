package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amishk599/leadbrief/internal/secrets"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage the SMTP password in the OS keychain",
	Long:  "The email notifier reads its password from the keychain when notification.email.password is empty.",
}

var secretSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the SMTP password (read from stdin)",
	RunE:  runSecretSet,
}

var secretDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the stored SMTP password",
	RunE:  runSecretDelete,
}

func init() {
	secretCmd.AddCommand(secretSetCmd, secretDeleteCmd)
	rootCmd.AddCommand(secretCmd)
}

func smtpAccount() string {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	e := cfg.Notification.Email
	if e.Host == "" || e.Username == "" {
		fmt.Fprintln(os.Stderr, "notification.email.host and username must be set in config")
		os.Exit(1)
	}
	return secrets.SMTPAccount(e.Username, e.Host)
}

func runSecretSet(cmd *cobra.Command, args []string) error {
	account := smtpAccount()

	fmt.Fprintf(os.Stderr, "SMTP password for %s: ", account)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintf(os.Stderr, "\nfailed to read password: %v\n", err)
		os.Exit(1)
	}

	if err := secrets.SetSMTPPassword(account, strings.TrimRight(line, "\r\n")); err != nil {
		fmt.Fprintf(os.Stderr, "failed to store password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("password stored in keychain")
	return nil
}

func runSecretDelete(cmd *cobra.Command, args []string) error {
	account := smtpAccount()

	err := secrets.DeleteSMTPPassword(account)
	if errors.Is(err, secrets.ErrNotFound) {
		fmt.Println("no password stored")
		return nil
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to delete password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("password removed from keychain")
	return nil
}
