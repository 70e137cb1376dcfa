package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewMaterialsCommand lista los materiales en el orden de la tabla.
func NewMaterialsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "materials",
		Short: "Listar materiales y precios por gramo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rootOpts.session(cmd.Context())
			if err != nil {
				return err
			}
			list := app.Materials.List()
			return newFormatter(rootOpts, cmd.OutOrStdout()).Print(list, func(w io.Writer) error {
				tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "MATERIAL\tPRECIO/G")
				for _, m := range list.Items {
					fmt.Fprintf(tw, "%s\t%s\n", m.Name, m.Display)
				}
				return tw.Flush()
			})
		},
	}
}
