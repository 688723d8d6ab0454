package main

import (
	"fmt"

	"github.com/gritvcs/grit/pkg/object"
	"github.com/gritvcs/grit/pkg/repo"
	"github.com/spf13/cobra"
)

func newLsTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls-tree <object>",
		Short: "List the contents of a tree object",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			h, err := r.Store.Resolve(args[0])
			if err != nil {
				return err
			}
			tr, err := r.Store.ReadTree(h)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), object.RenderTree(tr))
			return nil
		},
	}
}
