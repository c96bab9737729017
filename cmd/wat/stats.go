package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/wa-transcript/internal/parse"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats [export.txt]",
		Short: "Count messages per author and per content kind",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			sess, err := loadSession(cfg, log, args)
			if err != nil {
				return err
			}
			if sess.Empty() {
				fmt.Fprintln(os.Stderr, "No messages.")
				return nil
			}

			st := sess.Stats()
			fmt.Printf("%d messages over %d days\n\n", len(sess.Messages), st.Days)

			authors := newTable([]string{"Author", "Messages", "Media", "First", "Last"})
			for _, a := range st.Authors {
				authors.Append([]string{
					a.Author,
					strconv.Itoa(a.Messages),
					strconv.Itoa(a.Media),
					a.First.Format("2006-01-02 15:04"),
					a.Last.Format("2006-01-02 15:04"),
				})
			}
			authors.Render()
			fmt.Println()

			table := newTable([]string{"Kind", "Count"})
			for _, k := range sortedKinds(st.Kinds) {
				table.Append([]string{string(k), strconv.Itoa(st.Kinds[k])})
			}
			table.Render()
			return nil
		},
	}
}

// sortedKinds orders kinds by count, most frequent first, then by name.
func sortedKinds(counts map[parse.Kind]int) []parse.Kind {
	kinds := make([]parse.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if counts[kinds[i]] != counts[kinds[j]] {
			return counts[kinds[i]] > counts[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})
	return kinds
}

func newTable(header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}
