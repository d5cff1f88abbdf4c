package layout

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jverhoeven/anchormap/pkg/canvas"
	"github.com/jverhoeven/anchormap/pkg/compass"
)

var (
	// ErrMalformedTree is returned by [BuildTree] when the declaration has no
	// parent-less node (cycle or empty input) or more than one (disconnected
	// forest). The enclosing layout call must be aborted; a partial layout is
	// not usable.
	ErrMalformedTree = errors.New("malformed tree")

	// ErrUnknownNode is returned by [BuildTree] when a connection references
	// an id with no declared shape.
	ErrUnknownNode = errors.New("connection references unknown node")

	// ErrDuplicateDirection is returned by [BuildTree] when a parent declares
	// two children in the same direction. The engine honors exactly one child
	// per direction per parent, so such input is rejected instead of silently
	// keeping the last declaration.
	ErrDuplicateDirection = errors.New("duplicate direction on parent")

	// ErrMultipleParents is returned by [BuildTree] when a node is declared
	// as a child of two different parents.
	ErrMultipleParents = errors.New("node has multiple parents")

	// ErrTreeTooDeep is returned by [BuildTree] when the tree exceeds
	// [MaxDepth]. Placement recurses once per level, so depth bounds stack
	// usage for untrusted input.
	ErrTreeTooDeep = errors.New("tree exceeds maximum depth")
)

// MaxDepth is the maximum supported tree height. Deeper declarations are
// rejected by [BuildTree].
const MaxDepth = 64

// Declaration is one parent→child anchor connection of a flat tree
// declaration. Declarations are ordered; the order decides which edge first
// anchors an unpositioned parent during layout.
type Declaration struct {
	Parent string
	Dir    compass.Direction
	Child  string
}

// BuildTree converts a flat id→shape mapping plus ordered anchor
// declarations into a rooted node tree and returns the unique parent-less
// node.
//
// Fails with ErrMalformedTree when the root count is not exactly one, and
// with ErrUnknownNode, ErrDuplicateDirection or ErrMultipleParents when a
// declaration is inconsistent.
func BuildTree(shapes map[string]canvas.Item, decls []Declaration) (*Node, error) {
	nodes := make(map[string]*Node, len(shapes))
	for id, shape := range shapes {
		nodes[id] = NewNode(id, shape)
	}

	for _, d := range decls {
		parent, ok := nodes[d.Parent]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownNode, d.Parent)
		}
		child, ok := nodes[d.Child]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownNode, d.Child)
		}
		if _, taken := parent.ChildIn(d.Dir); taken {
			return nil, fmt.Errorf("%w: %s/%s", ErrDuplicateDirection, d.Parent, d.Dir)
		}
		if child.Parent != nil {
			return nil, fmt.Errorf("%w: %q", ErrMultipleParents, d.Child)
		}
		parent.edges = append(parent.edges, Edge{Dir: d.Dir, Child: child})
		child.Parent = parent
	}

	var roots []*Node
	for _, n := range nodes {
		if n.Parent == nil {
			roots = append(roots, n)
		}
	}
	if len(roots) != 1 {
		ids := make([]string, len(roots))
		for i, r := range roots {
			ids[i] = r.ID
		}
		slices.Sort(ids)
		return nil, fmt.Errorf("%w: found %d roots %v", ErrMalformedTree, len(roots), ids)
	}

	root := roots[0]
	if root.depth() > MaxDepth {
		return nil, fmt.Errorf("%w: depth %d > %d", ErrTreeTooDeep, root.depth(), MaxDepth)
	}
	return root, nil
}

// DeclarationsFromMap flattens an id→{direction→child} mapping into ordered
// declarations. Map iteration order is not deterministic in Go, so entries
// are ordered canonically: parents by id, directions by compass declaration
// order. Callers with a meaningful source order (map files) should build
// []Declaration directly instead.
func DeclarationsFromMap(connections map[string]map[compass.Direction]string) []Declaration {
	parents := make([]string, 0, len(connections))
	for id := range connections {
		parents = append(parents, id)
	}
	slices.Sort(parents)

	var decls []Declaration
	for _, parent := range parents {
		for _, dir := range compass.All {
			if child, ok := connections[parent][dir]; ok {
				decls = append(decls, Declaration{Parent: parent, Dir: dir, Child: child})
			}
		}
	}
	return decls
}
