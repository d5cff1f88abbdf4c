package mapfile

import (
	"regexp"

	"github.com/charmbracelet/log"
)

// maxMacroDepth bounds macro expansion so mutually recursive definitions
// cannot loop forever.
const maxMacroDepth = 100

var macroPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ExpandMacros substitutes ${name} references in value, repeatedly, so macro
// values may reference other macros. Unknown names are left in place.
// Expansion stops after maxMacroDepth rounds with a warning; the partially
// expanded value is returned.
func ExpandMacros(value string, macros map[string]string) string {
	current := value
	for range maxMacroDepth {
		next := macroPattern.ReplaceAllStringFunc(current, func(ref string) string {
			name := ref[2 : len(ref)-1]
			if v, ok := macros[name]; ok {
				return v
			}
			return ref
		})
		if next == current {
			return next
		}
		current = next
	}
	log.Warn("excessive macro recursion", "value", value)
	return current
}

// combineMacros merges macro maps, later (more specific) maps overriding
// earlier ones.
func combineMacros(maps ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}
