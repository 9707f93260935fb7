package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/symptom-triage-server/internal/setup"
)

type setupOptions struct {
	desktopConfig string
	binary        string
	dataDir       string
}

func newSetupCommand(root *rootOptions) *cobra.Command {
	opts := &setupOptions{}

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Register the MCP server with the desktop client",
		Long: `setup adds a symptom-triage entry to the desktop client's MCP
configuration. Other registered servers are left untouched. Restart the
client afterwards to pick up the change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := opts.configPath()
			if err != nil {
				return err
			}

			entry, err := setup.Register(path, setup.Options{
				BinaryPath: opts.binary,
				DataDir:    opts.dataDir,
				ConfigFile: root.configFile,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Registered %s in %s\n", setup.ServerName, path)
			fmt.Fprintf(out, "  command: %s\n", entry.Command)
			for k, v := range entry.Env {
				fmt.Fprintf(out, "  %s=%s\n", k, v)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.desktopConfig, "desktop-config", "", "desktop client config file (default is the OS location)")
	cmd.Flags().StringVar(&opts.binary, "binary", "", "path to the mcp-server binary (default searches PATH)")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", "", "data directory passed to the server")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show registration status",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := opts.configPath()
				if err != nil {
					return err
				}
				return printJSON(cmd, setup.GetStatus(path))
			},
		},
		&cobra.Command{
			Use:   "remove",
			Short: "Remove the registration",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				path, err := opts.configPath()
				if err != nil {
					return err
				}
				removed, err := setup.Unregister(path)
				if err != nil {
					return err
				}
				if !removed {
					fmt.Fprintf(cmd.OutOrStdout(), "%s was not registered\n", setup.ServerName)
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", setup.ServerName, path)
				return nil
			},
		},
	)

	return cmd
}

func (o *setupOptions) configPath() (string, error) {
	if o.desktopConfig != "" {
		return o.desktopConfig, nil
	}
	return setup.DesktopConfigPath()
}
