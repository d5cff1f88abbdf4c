// Package mapfile loads diagram descriptions from YAML map files.
//
// A map file declares named components (sized shapes or references to shape
// groups), reusable groups with their own internal layout, and a list of
// layout blocks connecting everything with compass directions. Values may
// use ${name} macros, resolved recursively at instantiation time. Names
// ending in '*' declare implicit 1x1 connector shapes.
package mapfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jverhoeven/anchormap/pkg/compass"
	"github.com/jverhoeven/anchormap/pkg/layout"
)

var (
	// ErrUnknownComponent is returned when a layout references a name with
	// no component declaration and no connector suffix.
	ErrUnknownComponent = errors.New("layout references unknown component")

	// ErrDuplicateConnection is returned when a (component, direction) slot
	// is claimed twice across the combined layout blocks, including via the
	// inverted direction on the other endpoint.
	ErrDuplicateConnection = errors.New("duplicate connection")

	// ErrBadComponent is returned when a component declaration is neither a
	// sized shape nor a group reference, or mixes the two.
	ErrBadComponent = errors.New("component must declare a shape or a group")

	// ErrUnknownGroup is returned when a component references an undeclared
	// group, or an anchor names a non-member.
	ErrUnknownGroup = errors.New("unknown group")

	// ErrNameClash is returned when a component shares its name with a group.
	ErrNameClash = errors.New("component name clashes with a group")

	// ErrNestedGroup is returned when a group member is itself a group
	// reference. Arrangements are two-level: composites at the top, shapes
	// inside.
	ErrNestedGroup = errors.New("groups cannot contain group references")
)

// Component is one declared map element: either a sized shape or a reference
// to a group. Width, Height and Label may contain macros and stay unexpanded
// until instantiation.
type Component struct {
	Shape  string            `yaml:"shape"`
	Group  string            `yaml:"group"`
	Width  string            `yaml:"width"`
	Height string            `yaml:"height"`
	Label  string            `yaml:"label"`
	Macros map[string]string `yaml:"macros"`
}

// IsGroupRef reports whether the component references a group instead of
// declaring a shape of its own.
func (c Component) IsGroupRef() bool { return c.Group != "" }

// Group is a reusable cluster of components with an internal layout. Anchors
// optionally name the member to attach per direction when the group is
// connected at the top level.
type Group struct {
	Components map[string]Component `yaml:"components"`
	Layout     []Block              `yaml:"layout"`
	Macros     map[string]string    `yaml:"macros"`
	Anchors    map[string]string    `yaml:"anchors"`

	// decls is the combined internal layout, resolved at load time.
	decls []layout.Declaration
}

// Map is a fully loaded and validated map description.
type Map struct {
	Groups     map[string]Group     `yaml:"groups"`
	Components map[string]Component `yaml:"components"`
	Layout     []Block              `yaml:"layout"`
	Macros     map[string]string    `yaml:"macros"`

	decls []layout.Declaration
}

// Load reads and validates a YAML map description. Unknown keys anywhere in
// the document are errors.
func Load(r io.Reader) (*Map, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Map
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding map: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadFile loads a map description from a file path.
func LoadFile(path string) (*Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// IsConnectorName reports whether the name declares an implicit connector
// shape.
func IsConnectorName(name string) bool { return strings.HasSuffix(name, "*") }

func (m *Map) validate() error {
	for name, g := range m.Groups {
		valid := make(map[string]bool, len(g.Components))
		for member, comp := range g.Components {
			if comp.IsGroupRef() {
				return fmt.Errorf("%w: %s.%s", ErrNestedGroup, name, member)
			}
			if err := checkComponent(comp); err != nil {
				return fmt.Errorf("group %s, component %s: %w", name, member, err)
			}
			valid[member] = true
		}

		decls, connectors, err := combineBlocks(g.Layout, valid)
		if err != nil {
			return fmt.Errorf("group %s: %w", name, err)
		}
		if g.Components == nil {
			g.Components = make(map[string]Component)
		}
		for _, conn := range connectors {
			g.Components[conn] = connectorComponent()
		}
		g.decls = decls

		for dir, anchor := range g.Anchors {
			if _, err := compass.Parse(dir); err != nil {
				return fmt.Errorf("group %s: anchor: %w", name, err)
			}
			if _, ok := g.Components[anchor]; !ok {
				return fmt.Errorf("%w: anchor %s/%s names non-member %q",
					ErrUnknownGroup, name, dir, anchor)
			}
		}
		m.Groups[name] = g
	}

	valid := make(map[string]bool, len(m.Components))
	for name, comp := range m.Components {
		if _, clash := m.Groups[name]; clash {
			return fmt.Errorf("%w: %q", ErrNameClash, name)
		}
		if comp.IsGroupRef() {
			if _, ok := m.Groups[comp.Group]; !ok {
				return fmt.Errorf("%w: %q referenced by component %q",
					ErrUnknownGroup, comp.Group, name)
			}
		} else if err := checkComponent(comp); err != nil {
			return fmt.Errorf("component %s: %w", name, err)
		}
		valid[name] = true
	}

	decls, connectors, err := combineBlocks(m.Layout, valid)
	if err != nil {
		return err
	}
	if m.Components == nil && len(connectors) > 0 {
		m.Components = make(map[string]Component)
	}
	for _, conn := range connectors {
		m.Components[conn] = connectorComponent()
	}
	m.decls = decls
	return nil
}

func checkComponent(c Component) error {
	if c.Group != "" && (c.Shape != "" || c.Width != "" || c.Height != "") {
		return fmt.Errorf("%w: has both", ErrBadComponent)
	}
	if c.Group == "" && (c.Width == "" || c.Height == "") {
		return fmt.Errorf("%w: missing width or height", ErrBadComponent)
	}
	return nil
}

// connectorComponent is the implicit declaration behind a '*' name.
func connectorComponent() Component {
	return Component{Shape: "connector", Width: "1", Height: "1"}
}

// parseExtent converts a macro-expanded width or height value to a number.
func parseExtent(what, name, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("component %s: bad %s %q", name, what, value)
	}
	return v, nil
}
