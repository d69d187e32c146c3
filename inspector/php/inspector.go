package php

import (
	"github.com/smacker/go-tree-sitter/php"
	"github.com/viant/classmap/inspector/info"
)

// Name is the dialect name
const Name = "php"

// Separator is the PHP namespace separator
const Separator = `\`

var dialect = &info.Dialect{
	Name:              Name,
	Language:          php.GetLanguage(),
	NamespaceKeywords: []string{"namespace"},
	TypeKeywords:      []string{"class", "interface", "trait", "enum"},
	Identifiers:       []string{"name"},
	Separators:        []string{`\`},
	Comments:          []string{"comment"},
	Separator:         Separator,
}

// Dialect returns the PHP declaration dialect.
// Legacy underscore names such as Vendor_Package_Class are a single identifier.
func Dialect() *info.Dialect {
	return dialect
}

// NewInspector creates a PHP declaration inspector
func NewInspector(config *info.Config) *info.Inspector {
	return info.NewInspector(dialect, config)
}
