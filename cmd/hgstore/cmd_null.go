package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/HgStore/pkg/changeset"
)

func newNullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "null",
		Short: "Print the serialized null changeset",
		Long:  "Print the byte-exact serialization of the null (sentinel root) changeset.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return changeset.NewNull().Generate(os.Stdout)
		},
	}
}
