package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netdevops/hierconfig/fixup"
	"github.com/netdevops/hierconfig/hconfig"
	"github.com/netdevops/hierconfig/host"
	"github.com/netdevops/hierconfig/loader"
)

func newFixupCmd() *cobra.Command {
	var (
		runningPath, remediationPath, optionsPath, hostname, osName string
		activeTags                                                  []string
	)

	cmd := &cobra.Command{
		Use:   "fixup",
		Short: "Run the OS-specific fixup framework over a remediation config and print the result.",
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
			remediation, err := hconfig.LoadFromFile(h, remediationPath)
			if err != nil {
				return fmt.Errorf("loading remediation config: %w", err)
			}
			h.Facts["running_config"] = running
			h.Facts["remediation"] = remediation

			tagSet := map[string]struct{}{}
			for _, t := range activeTags {
				tagSet[t] = struct{}{}
			}

			fixups := []fixup.Fixup{fixup.UnusedObjects{}, fixup.InactiveBlocks{}}
			for _, f := range fixups {
				if err := f.Run(h, tagSet); err != nil {
					return err
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), remediation.Render())
			return nil
		},
	}

	cmd.Flags().StringVar(&runningPath, "running", "", "Path to the running configuration.")
	cmd.Flags().StringVar(&remediationPath, "remediation", "", "Path to the remediation configuration to fix up; the result is printed and the file is left unchanged.")
	cmd.Flags().StringVar(&optionsPath, "options", "", "Path to the host's options YAML file.")
	cmd.Flags().StringVar(&hostname, "hostname", "device", "Hostname to attribute the configs to.")
	cmd.Flags().StringVar(&osName, "os", "ios", "Device OS identifier.")
	cmd.Flags().StringSliceVar(&activeTags, "tags", []string{"all"}, "Active tag set gating which fixup scenarios run.")
	cmd.MarkFlagRequired("running")
	cmd.MarkFlagRequired("remediation")
	cmd.MarkFlagRequired("options")

	return cmd
}
