package cli

import (
	"fmt"

	log "github.com/golang/glog"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"

	"github.com/netdevops/hierconfig/hconfig"
	"github.com/netdevops/hierconfig/host"
	"github.com/netdevops/hierconfig/loader"
	"github.com/netdevops/hierconfig/util"
)

func newRemediateCmd() *cobra.Command {
	var (
		runningPath, compiledPath, optionsPath, hostname, osName string
		showDiff                                                 bool
	)

	cmd := &cobra.Command{
		Use:   "remediate",
		Short: "Compute the remediation config to move from a running config to a compiled config.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loader.LoadOptions(optionsPath)
			if err != nil {
				return err
			}
			h := host.New(hostname, osName, opts)

			running, err := hconfig.LoadFromFile(h, runningPath)
			if err != nil {
				return fmt.Errorf("loading running config: %w", err)
			}
			compiled, err := hconfig.LoadFromFile(h, compiledPath)
			if err != nil {
				return fmt.Errorf("loading compiled config: %w", err)
			}
			if err := compiled.AddSectionalExiting(); err != nil {
				return err
			}

			util.DbgPrint("running:\n%s", util.PrettyDump(running.Dump()))
			util.DbgPrint("compiled:\n%s", util.PrettyDump(compiled.Dump()))

			remediation := running.ConfigToGetTo(compiled)
			log.V(1).Infof("computed remediation for %s: %d top-level sections", hostname, len(remediation.Children()))
			out := remediation.Render()

			if showDiff {
				diff := difflib.UnifiedDiff{
					A:        difflib.SplitLines(running.Render()),
					B:        difflib.SplitLines(compiled.Render()),
					FromFile: runningPath,
					ToFile:   compiledPath,
					Context:  3,
				}
				text, err := difflib.GetUnifiedDiffString(diff)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), text)
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&runningPath, "running", "", "Path to the running configuration.")
	cmd.Flags().StringVar(&compiledPath, "compiled", "", "Path to the intended (compiled) configuration.")
	cmd.Flags().StringVar(&optionsPath, "options", "", "Path to the host's options YAML file.")
	cmd.Flags().StringVar(&hostname, "hostname", "device", "Hostname to attribute the configs to.")
	cmd.Flags().StringVar(&osName, "os", "ios", "Device OS identifier (ios, eos, nxos, iosxr, junos).")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "Print a unified text diff instead of the remediation config.")
	cmd.MarkFlagRequired("running")
	cmd.MarkFlagRequired("compiled")
	cmd.MarkFlagRequired("options")

	return cmd
}
