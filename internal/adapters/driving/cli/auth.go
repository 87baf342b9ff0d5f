package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bdlens/bdlens-cli/internal/core/domain"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage your BdLens session",
	Long: `Register, log in and out of a BdLens backend.

The session cookie is stored in ~/.bdlens/data/session.db, so a login
carries over to later commands against the same backend.

Examples:
  bdlens auth login --email you@example.com
  bdlens auth whoami
  bdlens auth logout`,
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	RunE:  runAuthRegister,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session",
	RunE:  runAuthLogin,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the session",
	RunE:  runAuthLogout,
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	RunE:  runAuthWhoami,
}

var (
	authEmail    string
	authPassword string
	authJSON     bool
)

// stdin is where prompts read from. Tests replace it.
var stdin io.Reader = os.Stdin

func init() {
	for _, c := range []*cobra.Command{authRegisterCmd, authLoginCmd} {
		c.Flags().StringVarP(&authEmail, "email", "e", "", "account email (prompted when omitted)")
		c.Flags().StringVar(&authPassword, "password", "", "account password (prompted when omitted)")
	}
	authWhoamiCmd.Flags().BoolVar(&authJSON, "json", false, "output as JSON")

	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authWhoamiCmd)
	rootCmd.AddCommand(authCmd)
}

func runAuthRegister(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errNoAuthService
	}

	email, password := promptCredentials(cmd)
	user, err := authService.Register(cmd.Context(), email, password)
	if err != nil {
		return err
	}

	cmd.Printf("Registered %s.\n", user.Email)
	cmd.Println("Run `bdlens auth login` to start a session.")
	return nil
}

func runAuthLogin(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errNoAuthService
	}

	email, password := promptCredentials(cmd)
	user, err := authService.Login(cmd.Context(), email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	cmd.Printf("Logged in as %s (%s).\n", user.Email, user.Role())
	return nil
}

func runAuthLogout(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errNoAuthService
	}

	if err := authService.Logout(cmd.Context()); err != nil {
		cmd.Println("Local session cleared.")
		return fmt.Errorf("backend logout failed: %w", err)
	}
	cmd.Println("Logged out.")
	return nil
}

func runAuthWhoami(cmd *cobra.Command, _ []string) error {
	if authService == nil {
		return errNoAuthService
	}

	user, err := authService.CurrentUser(cmd.Context())
	if err != nil {
		return err
	}
	if authJSON {
		return printJSON(cmd, user)
	}
	printUser(cmd, user)
	return nil
}

func printUser(cmd *cobra.Command, u *domain.User) {
	cmd.Printf("Email:   %s\n", u.Email)
	cmd.Printf("ID:      %s\n", u.ID)
	cmd.Printf("Role:    %s\n", u.Role())
	cmd.Printf("Joined:  %s\n", u.CreatedAt)
}

// promptCredentials fills in whichever of email and password were not given as flags.
func promptCredentials(cmd *cobra.Command) (string, string) {
	reader := bufio.NewReader(stdin)

	email := authEmail
	if email == "" {
		cmd.Print("Email: ")
		email = readLine(reader)
	}

	password := authPassword
	if password == "" {
		cmd.Print("Password: ")
		password = readPassword(reader)
		cmd.Println()
	}
	return email, password
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

// readPassword reads without echo on a terminal and falls back to a plain line.
func readPassword(reader *bufio.Reader) string {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return string(password)
		}
	}
	input, _ := reader.ReadString('\n')
	return strings.TrimRight(input, "\r\n")
}
