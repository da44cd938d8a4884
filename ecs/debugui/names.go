package debugui

import (
	"path"
	"strings"
)

// ComponentList joins component type names without their package paths.
func ComponentList(types []string) string {
	short := make([]string, len(types))
	for i, t := range types {
		short[i] = shortName(t)
	}
	return strings.Join(short, ", ")
}

func shortName(t string) string {
	if i := strings.IndexByte(t, '['); i >= 0 {
		return shortName(t[:i]) + t[i:]
	}
	_, name, _ := strings.Cut(path.Base(t), ".")
	if name == "" {
		return t
	}
	return name
}
