package main

import (
	"fmt"

	"github.com/gritvcs/grit/pkg/object"
	"github.com/gritvcs/grit/pkg/repo"
	"github.com/spf13/cobra"
)

func newCatFileCmd() *cobra.Command {
	var pretty string
	var exist string

	cmd := &cobra.Command{
		Use:   "cat-file (-p <object> | -e <object>)",
		Short: "Show or check for a stored object",
		RunE: func(cmd *cobra.Command, args []string) error {
			if (pretty == "") == (exist == "") {
				return fmt.Errorf("cat-file: exactly one of -p or -e is required")
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			if exist != "" {
				h, err := r.Store.Resolve(exist)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "object %s exists\n", h)
				return nil
			}

			h, err := r.Store.Resolve(pretty)
			if err != nil {
				return err
			}
			objType, body, err := r.Store.Read(h)
			if err != nil {
				return err
			}

			switch objType {
			case object.TypeBlob:
				b, err := object.UnmarshalBlob(body)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(b.Data))
			case object.TypeTree:
				tr, err := object.UnmarshalTree(body)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), object.RenderTree(tr))
			case object.TypeCommit:
				c, err := object.UnmarshalCommit(body)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), object.RenderCommit(c))
			default:
				return fmt.Errorf("cat-file %s: %w: %q", h, object.ErrUnsupportedObjectKind, objType)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pretty, "pretty", "p", "", "pretty-print the object's content")
	cmd.Flags().StringVarP(&exist, "exists", "e", "", "check whether the object exists")

	return cmd
}
