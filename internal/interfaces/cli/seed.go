package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Costbook-api/internal/application/dto"
	"github.com/jhoicas/Costbook-api/internal/domain"
	"github.com/jhoicas/Costbook-api/pkg/input"
)

// seedFile formato del archivo de semilla:
//
//	categories = ["食材", "包材"]
//
//	[[materials]]
//	name = "麵粉"
//	unit_price = 0.05
type seedFile struct {
	Categories []string       `toml:"categories"`
	Materials  []seedMaterial `toml:"materials"`
}

type seedMaterial struct {
	Name      string      `toml:"name"`
	UnitPrice interface{} `toml:"unit_price"` // número o texto
}

// SeedResult resumen de la semilla.
type SeedResult struct {
	Created        int      `json:"created"`
	Updated        int      `json:"updated"`
	Categories     int      `json:"categories"`
	UpdatedRecipes []string `json:"updated_recipes,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}

// NewSeedCommand carga materiales y categorías desde TOML.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Cargar materiales y categorías desde un archivo TOML",
		Long: `Crea los materiales del archivo; los que ya existen actualizan su precio
y recalculan las recetas que los usan. Las categorías existentes se ignoran.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, rootOpts, file)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "seed.toml", "archivo TOML")
	return cmd
}

func runSeed(cmd *cobra.Command, opts *RootOptions, file string) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("leer semilla: %w", err)
	}
	var seed seedFile
	if err := toml.Unmarshal(raw, &seed); err != nil {
		return fmt.Errorf("semilla %s: %w", file, err)
	}

	// Precios validados antes de tocar nada.
	prices := make([]dto.Quantity, len(seed.Materials))
	for i, m := range seed.Materials {
		d, err := input.ParseDecimal(fmt.Sprint(m.UnitPrice))
		if err != nil {
			return fmt.Errorf("semilla: material %q: %w", m.Name, err)
		}
		prices[i] = dto.Quantity{Decimal: d}
	}

	ctx := cmd.Context()
	app, err := opts.session(ctx)
	if err != nil {
		return err
	}

	var res SeedResult
	for i, m := range seed.Materials {
		out, err := app.Materials.Create(ctx, dto.CreateMaterialRequest{Name: m.Name, UnitPrice: prices[i]})
		if errors.Is(err, domain.ErrDuplicate) {
			price := prices[i]
			out, err = app.Materials.Update(ctx, m.Name, dto.UpdateMaterialRequest{UnitPrice: &price})
			if err == nil {
				res.Updated++
				res.UpdatedRecipes = append(res.UpdatedRecipes, out.UpdatedRecipes...)
			}
		} else if err == nil {
			res.Created++
		}
		if err != nil {
			return fmt.Errorf("material %q: %w", m.Name, err)
		}
		res.Warnings = append(res.Warnings, out.Warnings...)
	}
	for _, c := range seed.Categories {
		out, err := app.Categories.Create(ctx, dto.CreateCategoryRequest{Name: c})
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		if err != nil {
			return fmt.Errorf("categoría %q: %w", c, err)
		}
		res.Categories++
		res.Warnings = append(res.Warnings, out.Warnings...)
	}

	return newFormatter(opts, cmd.OutOrStdout()).Print(res, func(w io.Writer) error {
		fmt.Fprintf(w, "materiales creados: %d, actualizados: %d, categorías nuevas: %d\n", res.Created, res.Updated, res.Categories)
		if len(res.UpdatedRecipes) > 0 {
			fmt.Fprintf(w, "recetas recalculadas: %v\n", res.UpdatedRecipes)
		}
		printWarnings(w, res.Warnings)
		return nil
	})
}
