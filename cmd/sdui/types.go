package main

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func newTypesCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the registered component types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer app.close()

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Type", "Stateful", "Required", "Description"})
			table.SetAutoWrapText(false)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			for _, meta := range app.registry.Metadata() {
				stateful := ""
				if meta.Stateful {
					stateful = "yes"
				}
				table.Append([]string{meta.Type, stateful, strings.Join(meta.Required, ", "), meta.Description})
			}
			table.Render()
			return nil
		},
	}

	return cmd
}
