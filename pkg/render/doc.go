// Package render groups the output formats of an arranged canvas.
//
// Subpackages each cover one artifact:
//
//   - [svgmap]: draw the placed shapes, group boundaries and connectors as SVG
//   - [layoutjson]: positions and sizes as a machine-readable JSON document
//   - [dot]: the anchor trees as Graphviz DOT, optionally rendered to SVG
//
// [svgmap]: github.com/jverhoeven/anchormap/pkg/render/svgmap
// [layoutjson]: github.com/jverhoeven/anchormap/pkg/render/layoutjson
// [dot]: github.com/jverhoeven/anchormap/pkg/render/dot
package render
