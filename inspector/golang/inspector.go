package golang

import (
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/viant/classmap/inspector/info"
)

// Name is the dialect name
const Name = "go"

// Go has a single package identifier, so no separator leaf is configured;
// types are qualified as package.Type.
var dialect = &info.Dialect{
	Name:              Name,
	Language:          golang.GetLanguage(),
	NamespaceKeywords: []string{"package"},
	TypeKeywords:      []string{"type"},
	Identifiers:       []string{"package_identifier", "type_identifier"},
	Comments:          []string{"comment"},
	Groups:            []string{"("},
	Separator:         ".",
}

// Dialect returns the Go declaration dialect
func Dialect() *info.Dialect {
	return dialect
}

// NewInspector creates a Go declaration inspector
func NewInspector(config *info.Config) *info.Inspector {
	return info.NewInspector(dialect, config)
}
