// Package cli is the terminal front-end of the transaction dashboard.
package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ErrReported is returned by commands whose failure was already shown to the
// user as a notification.
var ErrReported = errors.New("failure reported")

// NewRootCmd builds the dashboard command tree.
func NewRootCmd() *cobra.Command {
	v := viper.New()
	var cfg *Config

	root := &cobra.Command{
		Use:           "dashboard",
		Short:         "Browse and update a contact's transactions",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}
			cfg, err = loadConfig(v, cfgFile)
			return err
		},
	}
	if err := bindFlags(v, root); err != nil {
		panic(err) // flags are static
	}

	config := func() *Config { return cfg }
	root.AddCommand(newListCmd(config))
	root.AddCommand(newCreateCmd(config))
	root.AddCommand(newMarkCmd(config))
	root.AddCommand(newContactCmd(config))
	return root
}
