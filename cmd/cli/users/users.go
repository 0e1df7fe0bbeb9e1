package users

import (
	"fmt"
	"net/http"

	"github.com/crucial707/course-api/cmd/cli/client"
	"github.com/crucial707/course-api/cmd/cli/output"
	"github.com/spf13/cobra"
)

type currentUser struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
}

// ==========================
// CLI Command Init
// ==========================
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Register a user or show the authenticated user",
	}
	usersCmd.AddCommand(registerCmd(), meCmd())
	rootCmd.AddCommand(usersCmd)
}

// ==========================
// Register User
// ==========================
func registerCmd() *cobra.Command {
	var firstName, lastName string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		Long:  "Register a new user. The account's email and password are taken from --email and --password.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.FromCommand(cmd)
			if c.Email == "" || c.Password == "" {
				return fmt.Errorf("--email and --password are required")
			}
			payload := map[string]string{
				"firstName":    firstName,
				"lastName":     lastName,
				"emailAddress": c.Email,
				"password":     c.Password,
			}
			if _, err := c.Do(http.MethodPost, "/api/users", payload, nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "User registered successfully.")
			return nil
		},
	}

	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	return cmd
}

// ==========================
// Current User
// ==========================
func meCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			var u currentUser
			if _, err := client.FromCommand(cmd).Do(http.MethodGet, "/api/users", nil, &u); err != nil {
				return err
			}
			if asJSON {
				return output.RenderJSON(cmd.OutOrStdout(), u)
			}
			output.RenderTable(cmd.OutOrStdout(),
				[]string{"First name", "Last name", "Email"},
				[][]interface{}{{u.FirstName, u.LastName, u.EmailAddress}})
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}
