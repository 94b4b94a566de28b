package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"tasktrack/domain/dto"
	"tasktrack/pkg/client"
	"tasktrack/pkg/session"
)

var (
	loginEmail        string
	loginPassword     string
	loginProvider     string
	loginAccessToken  string
	loginRefreshToken string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the server",
	Long: `Sign in with email and password, or finish an OAuth sign in.

  tasktrack login --email me@example.com --password secret
  tasktrack login --provider google      # prints the browser URL
  tasktrack login --access-token ... --refresh-token ...`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed in user",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	loginCmd.Flags().StringVar(&loginProvider, "provider", "", "OAuth provider (google or github)")
	loginCmd.Flags().StringVar(&loginAccessToken, "access-token", "", "Access token from the OAuth callback")
	loginCmd.Flags().StringVar(&loginRefreshToken, "refresh-token", "", "Refresh token from the OAuth callback")
}

func runLogin(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	c := current.client

	switch {
	case loginAccessToken != "":
		c.Auth.CompleteOAuth(dto.TokenPair{AccessToken: loginAccessToken, RefreshToken: loginRefreshToken})
		user, err := c.Auth.Me(ctxOf(cmd))
		if err != nil {
			return fmt.Errorf("token rejected: %w", err)
		}
		fmt.Fprintf(out, "%s Signed in as %s\n", success("✓"), displayName(user))
		return nil

	case loginProvider != "":
		if loginProvider != client.ProviderGoogle && loginProvider != client.ProviderGitHub {
			return fmt.Errorf("unknown provider %q (use google or github)", loginProvider)
		}
		fmt.Fprintln(out, "Open this URL in a browser to sign in:")
		fmt.Fprintln(out, "  "+c.Auth.OAuthURL(loginProvider))
		fmt.Fprintln(out, "Then run: tasktrack login --access-token <token> --refresh-token <token>")
		return nil

	case loginEmail != "":
		if loginPassword == "" {
			return fmt.Errorf("--password is required with --email")
		}
		resp, err := c.Auth.Login(ctxOf(cmd), loginEmail, loginPassword)
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		fmt.Fprintf(out, "%s Signed in as %s\n", success("✓"), displayName(&resp.User))
		return nil
	}

	return fmt.Errorf("use --email/--password, --provider or --access-token")
}

func runLogout(cmd *cobra.Command, args []string) error {
	auth := session.NewAuthStore(current.client.Gateway(), nil)
	err := auth.SignOut(ctxOf(cmd))
	// the stored tokens are gone either way
	fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
	if err != nil {
		return fmt.Errorf("server did not confirm sign out: %w", err)
	}
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	auth := session.NewAuthStore(current.client.Gateway(), nil)
	if err := auth.RefreshProfile(ctxOf(cmd)); err != nil {
		return err
	}
	user := auth.User()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, title(displayName(user)))
	fmt.Fprintf(out, "%s  %s  %s\n", user.Email, dim(user.Role), dim(user.Provider))
	return nil
}

func displayName(u *dto.UserResponse) string {
	if u == nil {
		return ""
	}
	if u.FirstName != "" || u.LastName != "" {
		return fmt.Sprintf("%s %s (%s)", u.FirstName, u.LastName, u.Username)
	}
	return u.Email
}
