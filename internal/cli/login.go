package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/example/tesseract/internal/wire"
)

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the missions backend",
		Long: `Log in with email and password. The returned token is stored locally
and sent with every later request. The password is read without echo; set
TESSERACT_PASSWORD to log in non-interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := NewContext()
			email, _ := cmd.Flags().GetString("email")

			in := bufio.NewReader(cmd.InOrStdin())
			if email == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Email: ")
				line, err := readLine(in)
				if err != nil {
					return err
				}
				email = line
			}

			password := os.Getenv("TESSERACT_PASSWORD")
			if password == "" {
				var err error
				password, err = promptPassword(cmd.ErrOrStderr(), in)
				if err != nil {
					return err
				}
			}

			return wire.AuthAdapter().Login(ctx, email, password)
		},
	}

	cmd.Flags().StringP("email", "e", "", "Account email (prompted when omitted)")
	return cmd
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.AuthAdapter().Logout(NewContext())
		},
	}
}

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a session token is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.AuthAdapter().Status(NewContext())
		},
	}
}

// promptPassword reads a password without echo when stdin is a terminal,
// and a plain line otherwise.
func promptPassword(w io.Writer, in *bufio.Reader) (string, error) {
	fmt.Fprint(w, "Password: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		pass, err := term.ReadPassword(fd)
		fmt.Fprintln(w)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return strings.TrimSpace(string(pass)), nil
	}
	return readLine(in)
}

func readLine(in *bufio.Reader) (string, error) {
	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
