package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/railway/foodata"
	"github.com/kbukum/railway/result"
)

func newKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the ways FooData can fail",
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := foodata.Kinds()
			rows := make([][]string, 0, len(kinds))
			for _, kind := range kinds {
				rows = append(rows, []string{
					kind.String(),
					foodata.Describe(result.Failure[foodata.FooData](kind)),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Kind", "Message"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}
