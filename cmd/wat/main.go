package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-transcript/internal/config"
	"github.com/Zuo-Peng/wa-transcript/internal/load"
	"github.com/Zuo-Peng/wa-transcript/internal/session"
)

var version = "dev"

var verbose bool

func main() {
	rootCmd := &cobra.Command{
		Use:     "wat",
		Short:   "WhatsApp Transcript - read exported WhatsApp chats in the terminal",
		Version: version,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging on stderr")

	rootCmd.AddCommand(viewCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(themeCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config and builds the stderr logger.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return cfg, log, nil
}

// loadSession parses the export named in args, or the default export when
// args is empty. A missing default export is an empty session.
func loadSession(cfg *config.Config, log *slog.Logger, args []string) (*session.Session, error) {
	var exp *load.Export
	if len(args) > 0 {
		var err error
		exp, err = load.File(args[0])
		if err != nil {
			return nil, err
		}
	} else {
		exp = load.Default(log, cfg.DefaultFile)
	}

	sess := session.New(exp)
	log.Info("session loaded", "session", sess.ID, "path", sess.Path, "messages", len(sess.Messages))
	return sess, nil
}
