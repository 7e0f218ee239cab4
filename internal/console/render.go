package console

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// table prints aligned columns. An empty rows slice prints a placeholder
// instead of a bare header.
func (c *Console) table(header []string, rows [][]string) {
	if len(rows) == 0 {
		c.printf("(nenhum registro)\n")
		return
	}
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

// pairs prints label/value lines aligned on the values.
func (c *Console) pairs(kv ...string) {
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for i := 0; i+1 < len(kv); i += 2 {
		fmt.Fprintf(tw, "%s:\t%s\n", kv[i], kv[i+1])
	}
	_ = tw.Flush()
}

func (c *Console) banner(msg string) {
	if msg != "" {
		c.printf("erro: %s\n", msg)
	}
}

// pageLine renders "Página 2 de 5 (42 registros)".
func (c *Console) pageLine(page, totalPages, total int) {
	c.printf("Página %d de %d (%d registros)\n", page, totalPages, total)
}
