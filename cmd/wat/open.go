package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-transcript/internal/open"
)

func openCmd() *cobra.Command {
	var message int

	cmd := &cobra.Command{
		Use:   "open <export.txt>",
		Short: "Open the export in $EDITOR at a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			sess, err := loadSession(cfg, log, args)
			if err != nil {
				return err
			}

			line := 1
			if message > 0 {
				m, err := sess.Message(message)
				if err != nil {
					return err
				}
				line = m.Line
			}

			return open.Message(sess.Path, line)
		},
	}

	cmd.Flags().IntVar(&message, "message", 0, "1-based message number to jump to")

	return cmd
}
