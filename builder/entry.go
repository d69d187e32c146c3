package builder

import (
	"sort"
)

// Entry locates the source file of a class
type Entry struct {
	Library string `yaml:"library"` // library id the file was found in
	Path    string `yaml:"path"`    // path relative to the library root path, slash separated
}

// Map maps fully-qualified class names to entries
type Map map[string]*Entry

// Lookup returns the entry for a fully-qualified name
func (m Map) Lookup(name string) (*Entry, bool) {
	entry, ok := m[name]
	return entry, ok
}

// Names returns sorted class names
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
