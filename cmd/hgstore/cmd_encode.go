package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/HgStore/pkg/fsencode"
	"github.com/utkarsh5026/HgStore/pkg/hgpath"
)

func newEncodePathCmd() *cobra.Command {
	var dotencode bool
	var useTable bool

	cmd := &cobra.Command{
		Use:   "encode-path [paths...]",
		Short: "Encode repository paths to store paths",
		Long: `Encode repository paths to their on-disk store form.
Shows both the simple ('store') and fncache encodings for each path.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			type row struct {
				raw     string
				simple  string
				fncache string
			}

			rows := make([]row, 0, len(args))
			for _, raw := range args {
				p, err := hgpath.ParseString(raw)
				if err != nil {
					return fmt.Errorf("invalid path %q: %w", raw, err)
				}
				rows = append(rows, row{
					raw:     raw,
					simple:  fsencode.SimpleEncode(p),
					fncache: fsencode.FncacheEncode(p, dotencode),
				})
			}

			if useTable {
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Path", "Simple", "Fncache")
				for _, r := range rows {
					table.Append(r.raw, r.simple, r.fncache)
				}
				table.Render()
				return nil
			}

			for _, r := range rows {
				fmt.Printf("%s\n  simple:  %s\n  fncache: %s\n", r.raw, r.simple, r.fncache)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dotencode, "dotencode", false, "Hex-escape leading '.' and space (fncache only)")
	cmd.Flags().BoolVarP(&useTable, "table", "t", false, "Display results in table format")

	return cmd
}
