package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-transcript/internal/prefs"
)

func themeCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the saved colour theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"light", "dark", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}

			store, err := prefs.Open(cfg.PrefsPath)
			if err != nil {
				return fmt.Errorf("open prefs: %w", err)
			}
			defer store.Close()

			var theme prefs.Theme
			switch {
			case len(args) == 0:
				theme, err = store.Theme()
			case args[0] == "toggle":
				theme, err = store.ToggleTheme()
			default:
				theme, err = prefs.ParseTheme(args[0])
				if err == nil {
					err = store.SetTheme(theme)
				}
			}
			if err != nil {
				return err
			}

			fmt.Println(theme)
			return nil
		},
	}
}
