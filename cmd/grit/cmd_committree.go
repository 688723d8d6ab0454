package main

import (
	"fmt"
	"time"

	"github.com/gritvcs/grit/pkg/object"
	"github.com/gritvcs/grit/pkg/repo"
	"github.com/spf13/cobra"
)

func newCommitTreeCmd() *cobra.Command {
	var parent string
	var message string

	cmd := &cobra.Command{
		Use:   "commit-tree <tree>",
		Short: "Create a commit object referencing a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if message == "" {
				return fmt.Errorf("commit-tree: a message is required (-m)")
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			who, err := r.CommitterIdentity()
			if err != nil {
				return err
			}

			h, err := r.CommitTree(
				object.Hash(args[0]),
				object.Hash(parent),
				message,
				who,
				who,
				time.Now(),
			)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "", "parent commit hash")
	cmd.Flags().StringVarP(&message, "message", "m", "", "commit message")

	return cmd
}
