package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/HgStore/cmd/ui"
	"github.com/utkarsh5026/HgStore/pkg/node"
	"github.com/utkarsh5026/HgStore/pkg/store"
)

func newShowCmd() *cobra.Command {
	var storeDir string

	cmd := &cobra.Command{
		Use:   "show <node-hash>",
		Short: "Show a changeset from a store",
		Long: `Read a changeset from a file-backed blobstore and display it.
The node record is resolved first, then the content blob is parsed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := node.FromHex(args[0])
			if err != nil {
				fmt.Println(ui.ErrorMessage("not a node hash: " + args[0]))
				return err
			}

			bs, err := store.NewFileBlobstore(storeDir)
			if err != nil {
				return err
			}

			ctx := context.Background()
			cs, err := store.GetChangeset(ctx, bs, id)
			if err != nil {
				fmt.Println(ui.ErrorMessage(err.Error()))
				return err
			}

			files := make([]string, 0, len(cs.Files))
			for _, f := range cs.Files {
				files = append(files, f.String())
			}

			fmt.Println(ui.FormatChangesetDetailed(ui.ChangesetInfo{
				Node:     id.String(),
				Manifest: cs.ManifestID.String(),
				User:     string(cs.User),
				Time:     fmt.Sprintf("%d %d", cs.Time.Time, cs.Time.TZ),
				Files:    files,
				Comments: string(cs.Comments),
			}))
			return nil
		},
	}

	cmd.Flags().StringVarP(&storeDir, "store", "s", ".hgstore", "Blobstore directory")

	return cmd
}
