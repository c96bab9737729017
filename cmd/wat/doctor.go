package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-transcript/internal/load"
	"github.com/Zuo-Peng/wa-transcript/internal/prefs"
	"github.com/Zuo-Peng/wa-transcript/internal/session"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: config, default export, prefs DB, and parse stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			fmt.Println("=== Config ===")
			if cfg.Path != "" {
				fmt.Printf("  File:  %s\n", cfg.Path)
			} else {
				fmt.Println("  File:  (none, using defaults)")
			}
			fmt.Printf("  Self:  %s\n", cfg.SelfName)
			fmt.Printf("  Other: %s\n", cfg.OtherName)

			// default export
			fmt.Println("\n=== Default Export ===")
			fmt.Printf("  Path: %s\n", cfg.DefaultFile)
			exp, err := load.File(cfg.DefaultFile)
			if err != nil {
				fmt.Printf("  Status: NOT LOADED (%v)\n", err)
			} else {
				sess := session.New(exp)
				fmt.Printf("  Size:     %s\n", humanize.Bytes(uint64(exp.Size)))
				fmt.Printf("  Modified: %s\n", humanize.Time(exp.Mtime))
				fmt.Printf("  Messages: %d\n", len(sess.Messages))
				system := 0
				for _, m := range sess.Messages {
					if m.IsSystem() {
						system++
					}
				}
				if system > 0 {
					fmt.Printf("  Unattributed lines folded into %d system message(s)\n", system)
				}
				log.Debug("doctor parsed default export", "session", sess.String())
			}

			// other exports next to it
			fmt.Println("\n=== Exports Nearby ===")
			dir := filepath.Dir(cfg.DefaultFile)
			files, err := load.Scan(dir)
			if err != nil {
				fmt.Printf("  scan error: %v\n", err)
			} else if len(files) == 0 {
				fmt.Printf("  none in %s\n", dir)
			} else {
				for _, f := range files {
					fmt.Printf("  %s (%s)\n", f.Path, humanize.Bytes(uint64(f.Size)))
				}
			}

			// prefs
			fmt.Println("\n=== Prefs ===")
			fmt.Printf("  Path: %s\n", cfg.PrefsPath)
			if _, err := os.Stat(cfg.PrefsPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT CREATED (run 'wat theme light' or toggle in the viewer)")
				return nil
			}
			store, err := prefs.Open(cfg.PrefsPath)
			if err != nil {
				return fmt.Errorf("open prefs: %w", err)
			}
			defer store.Close()

			theme, err := store.Theme()
			if err != nil {
				return fmt.Errorf("read theme: %w", err)
			}
			fmt.Printf("  Theme: %s\n", theme)

			return nil
		},
	}
}
