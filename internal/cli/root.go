// Package cli implements hierconfig's command tree: remediate, tag, and
// fixup, each a thin driver over the hconfig/tagrules/fixup packages.
package cli

import (
	"fmt"
	"os"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/netdevops/hierconfig/util"
)

// Execute builds and runs the hierconfig root command.
func Execute() {
	defer log.Flush()

	rootCmd := &cobra.Command{
		Use:   "hierconfig",
		Short: "hierconfig models hierarchical device configuration and computes remediation",
	}

	cfgFile := rootCmd.PersistentFlags().String("config", "", "Path to a config file read into viper; the subcommands take their settings from their own flags, not from this file.")
	debug := rootCmd.PersistentFlags().Bool("debug", false, "Enable debug tree dumps on stderr.")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *cfgFile != "" {
			log.V(1).Infof("reading config file %s", *cfgFile)
			viper.SetConfigFile(*cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("error reading config: %w", err)
			}
		}
		viper.BindPFlags(cmd.Flags())
		viper.AutomaticEnv()
		util.SetDebug(*debug)
		return nil
	}

	rootCmd.AddCommand(newRemediateCmd())
	rootCmd.AddCommand(newTagCmd())
	rootCmd.AddCommand(newFixupCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Errorf("command failed: %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
