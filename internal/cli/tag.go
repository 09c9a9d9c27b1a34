package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netdevops/hierconfig/hconfig"
	"github.com/netdevops/hierconfig/host"
	"github.com/netdevops/hierconfig/loader"
)

func newTagCmd() *cobra.Command {
	var (
		targetFile, tagsFile, optionsPath, hostname, osName string
		include, exclude                                    []string
	)

	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Apply tag rules to a config and print the lines matching a tag filter.",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := host.Options{}
			if optionsPath != "" {
				var err error
				opts, err = loader.LoadOptions(optionsPath)
				if err != nil {
					return err
				}
			}
			h := host.New(hostname, osName, opts)

			root, err := hconfig.LoadFromFile(h, targetFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			rules, err := loader.LoadTagRules(tagsFile)
			if err != nil {
				return err
			}
			if err := root.AddTags(rules); err != nil {
				return err
			}

			for _, n := range root.AllChildrenSortedByTags(include, exclude) {
				fmt.Fprintln(cmd.OutOrStdout(), n.String())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&targetFile, "file", "", "Path to the configuration to tag.")
	cmd.Flags().StringVar(&tagsFile, "tags-file", "", "Path to the tag rules YAML file.")
	cmd.Flags().StringVar(&optionsPath, "options", "", "Path to the host's options YAML file (optional).")
	cmd.Flags().StringVar(&hostname, "hostname", "device", "Hostname to attribute the config to.")
	cmd.Flags().StringVar(&osName, "os", "ios", "Device OS identifier.")
	cmd.Flags().StringSliceVar(&include, "include", nil, "Only print lines whose effective tags intersect this set.")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Never print lines whose effective tags intersect this set.")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("tags-file")

	return cmd
}
