package mapfile

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/jverhoeven/anchormap/pkg/compass"
	"github.com/jverhoeven/anchormap/pkg/layout"
)

// Block is one entry of a layout list. Exactly one form is allowed per
// entry:
//
//	- vertical: [a, b, c]        # chain southward
//	- horizontal: [a, b, c]      # chain eastward
//	- diagonal: [a, b, c]        # chain southeastward
//	- directional:               # explicit per-direction connections
//	    a: {e: b, sw: c}
//
// Connections keep the document order of the block they appear in, which
// decides which edge anchors a subtree first during layout.
type Block struct {
	conns []connection
}

type connection struct {
	From string
	Dir  compass.Direction
	To   string
}

// UnmarshalYAML decodes a single-key layout block, preserving the document
// order of directional entries.
func (b *Block) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return fmt.Errorf("line %d: layout block must have exactly one key", node.Line)
	}
	key, val := node.Content[0].Value, node.Content[1]

	chain := func(dir compass.Direction) error {
		var names []string
		if err := val.Decode(&names); err != nil {
			return fmt.Errorf("%s block: %w", key, err)
		}
		for i := 0; i+1 < len(names); i++ {
			b.conns = append(b.conns, connection{From: names[i], Dir: dir, To: names[i+1]})
		}
		return nil
	}

	switch key {
	case "vertical":
		return chain(compass.South)
	case "horizontal":
		return chain(compass.East)
	case "diagonal":
		return chain(compass.SouthEast)
	case "directional":
		return b.decodeDirectional(val)
	default:
		return fmt.Errorf("line %d: unknown layout block %q (want vertical, horizontal, diagonal or directional)",
			node.Line, key)
	}
}

func (b *Block) decodeDirectional(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: directional block must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		from := node.Content[i].Value
		edges := node.Content[i+1]
		if edges.Kind != yaml.MappingNode {
			return fmt.Errorf("line %d: connections of %q must be a mapping", edges.Line, from)
		}
		for j := 0; j+1 < len(edges.Content); j += 2 {
			dir, err := compass.Parse(edges.Content[j].Value)
			if err != nil {
				return fmt.Errorf("line %d: %q: %w", edges.Content[j].Line, from, err)
			}
			b.conns = append(b.conns, connection{From: from, Dir: dir, To: edges.Content[j+1].Value})
		}
	}
	return nil
}

// combineBlocks flattens layout blocks into ordered declarations, checking
// every endpoint name and rejecting duplicate (component, direction) slots.
// A slot is also taken from the far side: connecting a east-to b claims
// (a, e) and (b, w) alike. Names ending in '*' are collected as connectors
// instead of being checked.
func combineBlocks(blocks []Block, valid map[string]bool) ([]layout.Declaration, []string, error) {
	type slot struct {
		name string
		dir  compass.Direction
	}
	taken := make(map[slot]string)
	seenConn := make(map[string]bool)

	var decls []layout.Declaration
	var connectors []string

	checkName := func(name string) error {
		if IsConnectorName(name) {
			if !seenConn[name] {
				seenConn[name] = true
				connectors = append(connectors, name)
			}
			return nil
		}
		if !valid[name] {
			return fmt.Errorf("%w: %q", ErrUnknownComponent, name)
		}
		return nil
	}

	for _, b := range blocks {
		for _, conn := range b.conns {
			if err := checkName(conn.From); err != nil {
				return nil, nil, err
			}
			if err := checkName(conn.To); err != nil {
				return nil, nil, err
			}

			if prev, ok := taken[slot{conn.From, conn.Dir}]; ok {
				return nil, nil, fmt.Errorf("%w: %s/%s already connected to %s",
					ErrDuplicateConnection, conn.From, conn.Dir, prev)
			}
			inv := conn.Dir.Invert()
			if prev, ok := taken[slot{conn.To, inv}]; ok {
				return nil, nil, fmt.Errorf("%w: %s/%s already connected to %s",
					ErrDuplicateConnection, conn.To, inv, prev)
			}

			taken[slot{conn.From, conn.Dir}] = conn.To
			taken[slot{conn.To, inv}] = conn.From
			decls = append(decls, layout.Declaration{Parent: conn.From, Dir: conn.Dir, Child: conn.To})
		}
	}
	return decls, connectors, nil
}
