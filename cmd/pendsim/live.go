package main

import (
	"github.com/spf13/cobra"

	"github.com/san-kum/pendsim/internal/tui"
	"github.com/san-kum/pendsim/internal/viz"
)

func newLiveCmd() *cobra.Command {
	var theme string

	cmd := &cobra.Command{
		Use:   "live",
		Short: "animate the schemes side by side",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, applyRunFlags)
			if err != nil {
				return err
			}
			study, err := runStudy(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			return tui.RunLive(study, theme)
		},
	}
	addRunFlags(cmd)
	cmd.Flags().StringVar(&theme, "theme", viz.ThemeCyberpunk.Name, "color theme (cyberpunk or minimal)")
	return cmd
}
