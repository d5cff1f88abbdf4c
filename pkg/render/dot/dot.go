// Package dot emits Graphviz DOT for anchor trees, for structural
// inspection of a map's connectivity without running placement.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/goccy/go-graphviz"

	"github.com/jverhoeven/anchormap/pkg/layout"
)

// ToDOT converts the top-level anchor tree and the per-group trees to DOT.
// Edges carry their compass direction as a label; each group tree becomes a
// cluster subgraph named after the group.
func ToDOT(top *layout.Node, groups map[string]*layout.Node) string {
	var buf bytes.Buffer
	buf.WriteString("digraph anchors {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontsize=12];\n")
	buf.WriteString("  edge [fontsize=10];\n")

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", name)
		writeTree(&buf, groups[name], "    ")
		buf.WriteString("  }\n")
	}

	if top != nil {
		buf.WriteString("\n")
		writeTree(&buf, top, "  ")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeTree(buf *bytes.Buffer, root *layout.Node, indent string) {
	if root == nil {
		return
	}
	root.Walk(func(n *layout.Node) {
		if len(n.Edges()) == 0 && n.Parent == nil {
			fmt.Fprintf(buf, "%s%q;\n", indent, n.ID)
			return
		}
		for _, e := range n.Edges() {
			fmt.Fprintf(buf, "%s%q -> %q [label=%q];\n", indent, n.ID, e.Child.ID, e.Dir.String())
		}
	})
}

// RenderSVG renders a DOT document to SVG with Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
