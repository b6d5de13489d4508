package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shapescatter/internal/config"
)

// configCommand creates the configuration inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
		Long: `Inspect the configuration.

Settings are read from the config file, then overridden by SHAPESCATTER_*
environment variables (for example SHAPESCATTER_COUNT=40), then by
command-line flags.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:         "path",
		Short:       "Print the config file path",
		Annotations: map[string]string{skipConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return fmt.Errorf("get config path: %w", err)
				}
				path = p
			}
			fmt.Println(path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := c.cfg.Encode()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	})

	return cmd
}
