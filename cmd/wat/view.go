package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/wa-transcript/internal/load"
	"github.com/Zuo-Peng/wa-transcript/internal/prefs"
	"github.com/Zuo-Peng/wa-transcript/internal/render"
	"github.com/Zuo-Peng/wa-transcript/internal/tui"
)

func viewCmd() *cobra.Command {
	var self, other, query string
	var width int
	var watch bool

	cmd := &cobra.Command{
		Use:   "view [export.txt]",
		Short: "Show a chat export as a conversation grouped by day",
		Long: `Parses a WhatsApp .txt export and shows it as a conversation.

Without an argument the default export (_chat.txt, see default_file in
~/.config/wat/config.toml) is loaded; if it is missing the view is empty.
On a terminal an interactive viewer opens; when piped the transcript is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			if self == "" {
				self = cfg.SelfName
			}
			if other == "" {
				other = cfg.OtherName
			}

			sess, err := loadSession(cfg, log, args)
			if err != nil {
				return err
			}

			// the theme is optional: without a prefs store we fall back to dark
			theme := prefs.ThemeDark
			store, err := prefs.Open(cfg.PrefsPath)
			if err != nil {
				log.Warn("prefs unavailable", "path", cfg.PrefsPath, "err", err)
			} else {
				defer store.Close()
				if theme, err = store.Theme(); err != nil {
					log.Warn("read theme", "err", err)
				}
			}

			if !term.IsTerminal(int(os.Stdout.Fd())) {
				out, _ := render.Transcript(sess.Messages, render.Options{
					Self:  self,
					Other: other,
					Width: width,
					Query: query,
					Hit:   -1,
					Light: theme.Light(),
				})
				fmt.Print(out)
				return nil
			}

			opts := tui.Options{
				Self:  self,
				Other: other,
				Query: query,
				Theme: theme,
			}
			if store != nil {
				opts.Prefs = store
			}
			if watch && sess.Path != "" {
				ctx, cancel := context.WithCancel(cmd.Context())
				defer cancel()
				changes, err := load.Watch(ctx, log, sess.Path)
				if err != nil {
					return fmt.Errorf("watch %s: %w", sess.Path, err)
				}
				opts.Changes = changes
			}

			return tui.Run(log, sess, opts)
		},
	}

	cmd.Flags().StringVar(&self, "self", "", "Your name as it appears in the export (default from config)")
	cmd.Flags().StringVar(&other, "other", "", "The other person's name (default from config)")
	cmd.Flags().StringVar(&query, "query", "", "Initial search / keyword highlighting")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width for printed output (0 = no wrap)")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload when the export changes on disk")

	return cmd
}
