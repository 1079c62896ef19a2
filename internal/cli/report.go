package cli

import (
	"fmt"
	"strings"

	"github.com/bndr/gotabulate"
)

// renderBindings renders the -list report as a grid
func renderBindings(results []fileResult) string {
	rows := [][]any{}
	for _, r := range results {
		for _, b := range r.bindings {
			rows = append(rows, []any{r.path, b.Tag, b.Expr})
		}
	}

	if len(rows) == 0 {
		return "no bindings found\n"
	}

	t := gotabulate.Create(rows)
	t.SetHeaders([]string{"File", "Element", "Expression"})
	t.SetAlign("left")
	t.SetWrapStrings(true)
	t.SetMaxCellSize(60)

	grid := strings.TrimRight(t.Render("grid"), "\n")
	return fmt.Sprintf("%s\n%d bindings\n", grid, len(rows))
}
