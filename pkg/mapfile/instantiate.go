package mapfile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jverhoeven/anchormap/pkg/canvas"
	"github.com/jverhoeven/anchormap/pkg/compass"
	"github.com/jverhoeven/anchormap/pkg/layout"
)

// Options tune an instantiation.
type Options struct {
	// MinSpacing is the clearance between placed boxes.
	MinSpacing float64
	// GroupMargin expands composite boundaries. Zero picks the layout
	// package default.
	GroupMargin float64
	// Macros are the outermost macro values; component and group macros
	// override them.
	Macros map[string]string
}

// Instantiate materializes the map into an arrangement plan: every group
// reference becomes a group plan with its members created as sized shapes
// under "component.member" names, every plain component becomes a top-level
// shape, and the layout declarations carry over verbatim.
//
// Macros resolve innermost-last: instantiation macros, then the referenced
// group's own macros, then the referencing component's. Shape labels default
// to the component name.
func (m *Map) Instantiate(opts Options) (layout.Plan, error) {
	plan := layout.Plan{
		TopShapes:   make(map[string]canvas.Item),
		TopDecls:    m.decls,
		MinSpacing:  opts.MinSpacing,
		GroupMargin: opts.GroupMargin,
	}

	// Group plans in name order: instantiation order is irrelevant to the
	// result but determinism keeps logs and tests stable.
	names := make([]string, 0, len(m.Components))
	for name := range m.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		comp := m.Components[name]
		if !comp.IsGroupRef() {
			shape, err := makeShape(name, comp, combineMacros(opts.Macros, m.Macros, comp.Macros))
			if err != nil {
				return layout.Plan{}, err
			}
			plan.TopShapes[name] = shape
			continue
		}

		group := m.Groups[comp.Group]
		macros := combineMacros(opts.Macros, m.Macros, group.Macros, comp.Macros)

		gp := layout.GroupPlan{
			Name:   name,
			Shapes: make(map[string]canvas.Item, len(group.Components)),
		}
		for member, memberComp := range group.Components {
			full := name + "." + member
			shape, err := makeShape(full, memberComp, combineMacros(macros, memberComp.Macros))
			if err != nil {
				return layout.Plan{}, err
			}
			gp.Shapes[full] = shape
		}
		for _, d := range group.decls {
			gp.Decls = append(gp.Decls, layout.Declaration{
				Parent: name + "." + d.Parent,
				Dir:    d.Dir,
				Child:  name + "." + d.Child,
			})
		}
		for dirName, member := range group.Anchors {
			dir, err := compass.Parse(dirName)
			if err != nil {
				return layout.Plan{}, fmt.Errorf("group %s: anchor: %w", comp.Group, err)
			}
			if gp.Anchors == nil {
				gp.Anchors = make(map[compass.Direction]string)
			}
			gp.Anchors[dir] = name + "." + member
		}
		plan.Groups = append(plan.Groups, gp)
	}

	return plan, nil
}

// makeShape creates the canvas shape for one component, expanding macros in
// its extent and label.
func makeShape(fullName string, comp Component, macros map[string]string) (canvas.Item, error) {
	w, err := parseExtent("width", fullName, ExpandMacros(comp.Width, macros))
	if err != nil {
		return nil, err
	}
	h, err := parseExtent("height", fullName, ExpandMacros(comp.Height, macros))
	if err != nil {
		return nil, err
	}

	s := canvas.NewShape(strings.ReplaceAll(fullName, "*", "_"), w, h)
	if comp.Label != "" {
		s.Label = ExpandMacros(comp.Label, macros)
	} else {
		s.Label = fullName
	}
	return s, nil
}
