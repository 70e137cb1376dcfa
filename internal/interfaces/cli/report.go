package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Costbook-api/internal/application/dto"
	"github.com/jhoicas/Costbook-api/internal/application/usecase"
	"github.com/jhoicas/Costbook-api/internal/domain/costing"
)

// LedgerReport salida estructurada del comando report.
type LedgerReport struct {
	Period     string                       `json:"period,omitempty"`
	Summary    *dto.SummaryResponse         `json:"summary"`
	ByCategory []dto.CategoryTotalsResponse `json:"by_category"`
	ByMonth    []dto.MonthTotalsResponse    `json:"by_month"`
}

// NewReportCommand resumen del libro; en text se muestra como markdown.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		q       dto.LedgerQuery
		pdfFile string
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Resumen del libro de ingresos y gastos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := rootOpts.session(ctx)
			if err != nil {
				return err
			}
			summary, err := app.Ledger.Summary(q)
			if err != nil {
				return err
			}
			byCategory, err := app.Ledger.ByCategory(q)
			if err != nil {
				return err
			}
			byMonth, err := app.Ledger.ByMonth(q)
			if err != nil {
				return err
			}
			rep := LedgerReport{Period: usecase.ReportPeriod(q), Summary: summary, ByCategory: byCategory, ByMonth: byMonth}

			if pdfFile != "" {
				body, _, err := app.Ledger.ReportPDF(ctx, q)
				if err != nil {
					return err
				}
				if err := os.WriteFile(pdfFile, body, 0o644); err != nil {
					return fmt.Errorf("escribir PDF: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "reporte PDF escrito en %s\n", pdfFile)
			}

			return newFormatter(rootOpts, cmd.OutOrStdout()).Print(rep, func(w io.Writer) error {
				return renderMarkdown(w, reportMarkdown(rep, app.Money))
			})
		},
	}
	cmd.Flags().StringVar(&q.Type, "type", "", "income | expense")
	cmd.Flags().StringVar(&q.Category, "category", "", "categoría")
	cmd.Flags().StringVar(&q.Product, "product", "", "receta vendida")
	cmd.Flags().StringVar(&q.From, "from", "", "desde (YYYY-MM-DD)")
	cmd.Flags().StringVar(&q.To, "to", "", "hasta (YYYY-MM-DD)")
	cmd.Flags().StringVar(&pdfFile, "pdf", "", "además escribir el reporte en PDF")
	return cmd
}

func reportMarkdown(rep LedgerReport, money costing.Formatter) string {
	var b strings.Builder
	b.WriteString("# Libro de ingresos y gastos\n\n")
	if rep.Period != "" {
		fmt.Fprintf(&b, "Período: %s\n\n", rep.Period)
	}
	fmt.Fprintf(&b, "- Ingresos: **%s**\n", money.Format(rep.Summary.TotalIncome))
	fmt.Fprintf(&b, "- Gastos: **%s**\n", money.Format(rep.Summary.TotalExpense))
	fmt.Fprintf(&b, "- Neto: **%s**\n", rep.Summary.NetDisplay)
	fmt.Fprintf(&b, "- Movimientos: %d\n\n", rep.Summary.Count)

	if len(rep.ByCategory) > 0 {
		b.WriteString("## Por categoría\n\n| Categoría | Ingresos | Gastos |\n|---|---:|---:|\n")
		for _, c := range rep.ByCategory {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", c.Category, money.Format(c.Income), money.Format(c.Expense))
		}
		b.WriteString("\n")
	}
	if len(rep.ByMonth) > 0 {
		b.WriteString("## Por mes\n\n| Mes | Ingresos | Gastos | Neto |\n|---|---:|---:|---:|\n")
		for _, m := range rep.ByMonth {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", m.Month, money.Format(m.Income), money.Format(m.Expense), money.Format(m.Net))
		}
	}
	return b.String()
}

// renderMarkdown usa estilos de color solo en terminal.
func renderMarkdown(w io.Writer, md string) error {
	style := glamour.WithStandardStyle("notty")
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(100))
	if err != nil {
		return err
	}
	out, err := r.Render(md)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
