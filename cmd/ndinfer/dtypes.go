// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/ndarray/dtype"
)

func newDTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dtypes",
		Short: "List the type names accepted by --dtype",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			for _, name := range dtype.Names() {
				desc := "fixed-width text"
				if dt, err := dtype.Parse(name); err == nil {
					desc = dt.String()
				}
				if _, err := fmt.Fprintf(w, "%-10s %s\n", name, desc); err != nil {
					return err
				}
			}
			_, err := fmt.Fprintln(w, "any name may be prefixed by a byte order: <, >, = or |")
			return err
		},
	}
}
