package layout

import (
	"slices"

	"github.com/charmbracelet/log"

	"github.com/jverhoeven/anchormap/pkg/canvas"
)

// Validate reports whether a laid-out shape set is free of overlaps. For
// each shape it queries the canvas for colliding items and ignores
// everything that is not itself a shape: connector lines, group containers,
// composite boundaries and labels never count as collisions.
//
// The check is a read-only diagnostic. Overlap is a fact, not an error;
// callers decide whether to retry with more spacing or accept the result.
func Validate(c *canvas.Canvas, shapes map[string]canvas.Item) bool {
	return ValidateWithLogger(c, shapes, log.Default())
}

// ValidateWithLogger is Validate with collision reporting on the given
// logger. It returns false as soon as any shape has a qualifying collision.
func ValidateWithLogger(c *canvas.Canvas, shapes map[string]canvas.Item, logger *log.Logger) bool {
	ids := make([]string, 0, len(shapes))
	for id := range shapes {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		shape := shapes[id]
		for _, hit := range c.Colliding(shape) {
			if hit.Kind() != canvas.KindShape {
				continue
			}
			logger.Debug("shapes overlap", "shape", id, "collides_with", hit.Name())
			return false
		}
	}
	return true
}
