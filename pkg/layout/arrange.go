package layout

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/jverhoeven/anchormap/pkg/canvas"
	"github.com/jverhoeven/anchormap/pkg/compass"
)

// GroupPlan declares one named group: its member shapes, the ordered anchor
// connections of its internal tree, and optionally a member per side that
// takes top-level connectors arriving on that side of the composite.
type GroupPlan struct {
	Name    string
	Shapes  map[string]canvas.Item
	Decls   []Declaration
	Anchors map[compass.Direction]string
}

// Plan is the fully-resolved input of an arrangement: every group with its
// internal connectivity, the ungrouped top-level shapes, and the top-level
// connectivity over group names and ungrouped shape names.
type Plan struct {
	Groups    []GroupPlan
	TopShapes map[string]canvas.Item
	TopDecls  []Declaration

	// MinSpacing is the clearance enforced between placed boxes.
	MinSpacing float64
	// GroupMargin expands each composite's boundary beyond its members'
	// union box. Zero means the default of GroupMargin units.
	GroupMargin float64
}

// Result exposes the trees built during an arrangement for inspection and
// teardown.
type Result struct {
	Top        *Node
	GroupTrees map[string]*Node
	Wrappers   map[string]*GroupWrapper
}

// Arrange drives the whole pipeline on the given canvas: each group's
// internal tree is laid out and frozen into a composite wrapper, then the
// top-level tree over composites and ungrouped shapes is laid out, and
// finally connectors are drawn for the top level and for every group.
//
// Order matters: a composite's box must be final before the top-level pass
// queries it, and connectors are drawn only once all positions are final.
func Arrange(c *canvas.Canvas, plan Plan) (*Result, error) {
	return ArrangeWithLogger(c, plan, log.Default())
}

// ArrangeWithLogger is Arrange with tracing on the given logger.
func ArrangeWithLogger(c *canvas.Canvas, plan Plan, logger *log.Logger) (*Result, error) {
	margin := plan.GroupMargin
	if margin == 0 {
		margin = GroupMargin
	}

	res := &Result{
		GroupTrees: make(map[string]*Node, len(plan.Groups)),
		Wrappers:   make(map[string]*GroupWrapper, len(plan.Groups)),
	}

	for _, m := range plan.TopShapes {
		c.Add(m)
	}

	topItems := make(map[string]canvas.Item, len(plan.Groups)+len(plan.TopShapes))

	for _, g := range plan.Groups {
		logger.Debug("arranging group", "group", g.Name, "members", len(g.Shapes))
		for _, m := range g.Shapes {
			c.Add(m)
		}
		root, err := BuildTree(g.Shapes, g.Decls)
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", g.Name, err)
		}
		LayoutWithLogger(c, root, plan.MinSpacing, logger)

		members := make([]canvas.Item, 0, len(g.Shapes))
		root.Walk(func(n *Node) { members = append(members, n.Shape) })

		res.GroupTrees[g.Name] = root
		res.Wrappers[g.Name] = WrapGroup(c, g.Name, members, margin)
		for dir, member := range g.Anchors {
			s, ok := g.Shapes[member]
			if !ok {
				return nil, fmt.Errorf("group %s: anchor %s names unknown member %q", g.Name, dir, member)
			}
			res.Wrappers[g.Name].SetAnchor(dir, s)
		}
		topItems[g.Name] = res.Wrappers[g.Name]
	}

	for name, shape := range plan.TopShapes {
		if _, taken := topItems[name]; taken {
			return nil, fmt.Errorf("top-level shape %q clashes with a group name", name)
		}
		topItems[name] = shape
	}

	logger.Debug("arranging top-level tree", "items", len(topItems))
	top, err := BuildTree(topItems, plan.TopDecls)
	if err != nil {
		return nil, fmt.Errorf("top level: %w", err)
	}
	LayoutWithLogger(c, top, plan.MinSpacing, logger)
	res.Top = top

	Connect(c, top)
	for _, g := range plan.Groups {
		Connect(c, res.GroupTrees[g.Name])
	}
	c.Update()

	return res, nil
}

// LeafShapes collects every primitive shape of a plan by full name, for
// overlap validation.
func (p Plan) LeafShapes() map[string]canvas.Item {
	out := make(map[string]canvas.Item)
	for _, g := range p.Groups {
		for name, s := range g.Shapes {
			out[name] = s
		}
	}
	for name, s := range p.TopShapes {
		out[name] = s
	}
	return out
}
