package java

import (
	"github.com/smacker/go-tree-sitter/java"
	"github.com/viant/classmap/inspector/info"
)

// Name is the dialect name
const Name = "java"

var dialect = &info.Dialect{
	Name:              Name,
	Language:          java.GetLanguage(),
	NamespaceKeywords: []string{"package"},
	TypeKeywords:      []string{"class", "interface", "enum", "record", "@interface"},
	Identifiers:       []string{"identifier"},
	Separators:        []string{"."},
	Comments:          []string{"line_comment", "block_comment", "comment"},
	Separator:         ".",
}

// Dialect returns the Java declaration dialect
func Dialect() *info.Dialect {
	return dialect
}

// NewInspector creates a Java declaration inspector
func NewInspector(config *info.Config) *info.Inspector {
	return info.NewInspector(dialect, config)
}
