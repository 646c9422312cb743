package lr

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.States() {
		fmt.Fprintf(bw, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s.Items))
	}
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		fmt.Fprintf(bw, "s%03d -> s%03d [label=\"%s\"]\n", edge.from.ID, edge.to.ID,
			escapeDot(edge.label.Name))
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(iset *ItemSet) string {
	var b strings.Builder
	for n, i := range iset.items {
		if n > 0 {
			b.WriteString("\\l")
		}
		b.WriteString(escapeDot(i.key))
	}
	b.WriteString("\\l")
	return b.String()
}

var dotEscaper = strings.NewReplacer(
	`"`, `\"`, `{`, `\{`, `}`, `\}`, `|`, `\|`, `<`, `\<`, `>`, `\>`,
)

func escapeDot(s string) string {
	return dotEscaper.Replace(s)
}

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) error {
	if lrgen.tables == nil {
		tracer().Errorf("GOTO table not yet created, cannot export to HTML")
		return fmt.Errorf("GOTO table not yet created")
	}
	return tableAsHTML("GOTO", lrgen.tables.GotoRows(), lrgen.tables.gotos.ValueCount(), w)
}

// ActionTableAsHTML exports the LR(1) ACTION-table in HTML-format.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) error {
	if lrgen.tables == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return fmt.Errorf("ACTION table not yet created")
	}
	return tableAsHTML("ACTION", lrgen.tables.ActionRows(), lrgen.tables.action.ValueCount(), w)
}

func tableAsHTML(tname string, rows [][]string, count int, w io.Writer) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("<html><body>\n")
	fmt.Fprintf(bw, "%s table with %d entries<p>", tname, count)
	bw.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	for r, row := range rows {
		if r == 0 {
			bw.WriteString("<tr bgcolor=#cccccc>")
		} else {
			bw.WriteString("<tr>")
		}
		for c, cell := range row {
			switch {
			case cell == "":
				cell = "&nbsp;"
			case r > 0 && c == 0:
				cell = "state " + cell
			default:
				cell = htmlEscaper.Replace(cell)
			}
			bw.WriteString("<td>")
			bw.WriteString(cell)
			bw.WriteString("</td>")
		}
		bw.WriteString("</tr>\n")
	}
	bw.WriteString("</table></body></html>\n")
	return bw.Flush()
}

var htmlEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;")
