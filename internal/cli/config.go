package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/tesseract/internal/config"
	"github.com/example/tesseract/internal/wire"
)

// ConfigCmd returns the config command
func ConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tesseract configuration",
	}

	initCmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a config file with the default settings",
		Annotations: map[string]string{skipInit: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				var err error
				if path, err = config.DefaultFile(); err != nil {
					return err
				}
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", okMark(), path)
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := wire.Config()
			out := cmd.OutOrStdout()

			file := cfg.File
			if file == "" {
				file = "(none)"
			}
			fmt.Fprintf(out, "config file:  %s\n", file)
			fmt.Fprintf(out, "api.url:      %s\n", cfg.API.URL)
			fmt.Fprintf(out, "api.timeout:  %s\n", cfg.API.Timeout)
			fmt.Fprintf(out, "storage.path: %s\n", cfg.Storage.Path)
			fmt.Fprintf(out, "log.level:    %s\n", cfg.Log.Level)
			fmt.Fprintf(out, "log.format:   %s\n", cfg.Log.Format)
			return nil
		},
	}

	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(showCmd)
	return configCmd
}
