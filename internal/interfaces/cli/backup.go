package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/spf13/cobra"
)

// NewExportCommand escribe el respaldo completo.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		out        string
		compressed bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exportar el respaldo JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := rootOpts.session(cmd.Context())
			if err != nil {
				return err
			}
			raw, err := app.Backup.Export(cmd.Context())
			if err != nil {
				return err
			}
			if compressed {
				if raw, err = compress(raw); err != nil {
					return err
				}
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(raw)
				return err
			}
			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return fmt.Errorf("escribir respaldo: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "respaldo escrito en %s (%d bytes)\n", out, len(raw))
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "archivo de salida (- o vacío: stdout)")
	cmd.Flags().BoolVar(&compressed, "brotli", false, "comprimir con brotli")
	return cmd
}

// NewImportCommand restaura un respaldo (reemplaza todos los datos).
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Restaurar un respaldo JSON (reemplaza todo)",
		Long: `Restaura materiales, recetas, movimientos y categorías desde un respaldo.
Acepta el formato actual y el heredado; los archivos .br se descomprimen con brotli.
Si el respaldo no es válido no se cambia nada.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("leer respaldo: %w", err)
			}
			if strings.HasSuffix(in, ".br") {
				if raw, err = decompress(raw); err != nil {
					return fmt.Errorf("descomprimir %s: %w", in, err)
				}
			}
			app, err := rootOpts.session(cmd.Context())
			if err != nil {
				return err
			}
			res, err := app.Backup.Import(cmd.Context(), raw)
			if err != nil {
				return err
			}
			return newFormatter(rootOpts, cmd.OutOrStdout()).Print(res, func(w io.Writer) error {
				fmt.Fprintf(w, "restaurado: %d materiales, %d recetas, %d movimientos, %d categorías\n",
					res.Materials, res.Recipes, res.Records, res.Categories)
				printWarnings(w, res.Warnings)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&in, "in", "i", "", "archivo de respaldo (.json o .json.br)")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func compress(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := brotli.NewWriterLevel(&buf, brotli.BestCompression)
	if _, err := w.Write(raw); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decompress(raw []byte) ([]byte, error) {
	return io.ReadAll(brotli.NewReader(bytes.NewReader(raw)))
}
