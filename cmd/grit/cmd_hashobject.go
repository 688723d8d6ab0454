package main

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/gritvcs/grit/pkg/object"
	"github.com/gritvcs/grit/pkg/repo"
	"github.com/spf13/cobra"
)

func newHashObjectCmd() *cobra.Command {
	var write string

	cmd := &cobra.Command{
		Use:   "hash-object -w <file>",
		Short: "Store a file as a blob object",
		RunE: func(cmd *cobra.Command, args []string) error {
			if write == "" {
				return fmt.Errorf("hash-object: a file to write is required (-w)")
			}

			r, err := repo.Open(".")
			if err != nil {
				return err
			}

			content, err := os.ReadFile(write)
			if err != nil {
				return fmt.Errorf("hash-object: %w", err)
			}
			if !utf8.Valid(content) {
				return fmt.Errorf("hash-object %s: %w", write, object.ErrInvalidEncoding)
			}

			h, err := r.Store.WriteBlob(&object.Blob{Data: content})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}

	cmd.Flags().StringVarP(&write, "write", "w", "", "file whose content to store")

	return cmd
}
