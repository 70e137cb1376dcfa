// Package cli comandos de administración sobre los mismos casos de uso que la API.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions flags globales.
type RootOptions struct {
	Verbose bool
	Format  string // text | json | yaml

	open Opener
	app  *App
}

// ValidFormats formatos de salida permitidos.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand raíz con el almacenamiento de la configuración (env / .env).
func NewRootCommand() *cobra.Command {
	return NewRootCommandWith(OpenFromConfig)
}

// NewRootCommandWith raíz con un Opener propio (tests).
func NewRootCommandWith(open Opener) *cobra.Command {
	opts := &RootOptions{open: open}

	cmd := &cobra.Command{
		Use:   "costbook",
		Short: "Costbook - costos de materiales, recetas y libro de caja",
		Long: `Administración de Costbook desde la terminal.

Usa la misma configuración y el mismo almacenamiento que la API:
semilla de materiales, respaldo, restauración y reportes del libro.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("formato inválido %q: debe ser uno de %v", opts.Format, ValidFormats)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if opts.app == nil {
				return nil
			}
			err := opts.app.Close()
			opts.app = nil
			return err
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "logs de depuración en stderr")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "formato de salida (text|json|yaml)")

	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewMaterialsCommand(opts))
	cmd.AddCommand(NewHashPasswordCommand())

	return cmd
}

// session abre la aplicación una sola vez por ejecución.
func (o *RootOptions) session(ctx context.Context) (*App, error) {
	if o.app != nil {
		return o.app, nil
	}
	app, err := o.open(ctx, o)
	if err != nil {
		return nil, err
	}
	o.app = app
	return app, nil
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
