// Package cli provides CLI commands for the tesseract application.
package cli

import (
	gocontext "context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/tesseract/internal/app"
	"github.com/example/tesseract/internal/config"
	"github.com/example/tesseract/internal/ctxutil"
	"github.com/example/tesseract/internal/ports/secondary"
	"github.com/example/tesseract/internal/version"
	"github.com/example/tesseract/internal/wire"
)

// skipInit marks commands that run without configuration or storage.
const skipInit = "skip-init"

// NewContext creates a context.Background() recording the CLI as the actor.
// CLI commands should use this instead of context.Background() directly.
func NewContext() gocontext.Context {
	return ctxutil.WithActorID(gocontext.Background(), ctxutil.ActorCLI)
}

// RootCmd returns the tesseract command tree.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tesseract",
		Short:   "Tesseract - countdown tracker for scheduled missions",
		Version: version.String(),
		Long: `Tesseract tracks scheduled missions from a missions backend.
Upcoming missions count down to T-0; when a countdown ends you decide
whether to launch the mission or archive it for later.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipInit] == "true" {
				return nil
			}
			return wire.Init(optionsFromFlags(cmd))
		},
	}

	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.tesseract/config.yaml)")
	rootCmd.PersistentFlags().String("env-file", "", "Dotenv file (default .env)")

	rootCmd.AddCommand(LoginCmd())
	rootCmd.AddCommand(LogoutCmd())
	rootCmd.AddCommand(StatusCmd())
	rootCmd.AddCommand(MissionCmd())
	rootCmd.AddCommand(ArchiveCmd())
	rootCmd.AddCommand(WatchCmd())
	rootCmd.AddCommand(HistoryCmd())
	rootCmd.AddCommand(ConfigCmd())
	rootCmd.AddCommand(VersionCmd())

	return rootCmd
}

// Execute runs the command tree and returns the process exit code.
func Execute(args []string, stderr io.Writer) int {
	rootCmd := RootCmd()
	rootCmd.SetArgs(args)
	defer wire.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", userMessage(err))
		return 1
	}
	return 0
}

func optionsFromFlags(cmd *cobra.Command) config.Options {
	configFile, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")
	return config.Options{ConfigFile: configFile, EnvFile: envFile}
}

// userMessage renders service errors the way a user should read them.
func userMessage(err error) string {
	switch {
	case errors.Is(err, app.ErrInvalidCredentials):
		return "Invalid email or password"
	case errors.Is(err, app.ErrServerUnavailable):
		return "Server error, please try again later"
	case errors.Is(err, secondary.ErrUnauthorized):
		return "Not logged in or session expired (run 'tesseract login')"
	default:
		return err.Error()
	}
}

func parseMissionID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid mission id %q", s)
	}
	return id, nil
}
