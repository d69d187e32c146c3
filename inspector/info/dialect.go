package info

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

type tokenKind int

const (
	tokenOther tokenKind = iota
	tokenNamespace
	tokenType
	tokenIdentifier
	tokenSeparator
	tokenComment
	tokenGroup
)

// Dialect describes how a source language spells namespace and type declarations.
// Token kinds are tree-sitter leaf node types.
type Dialect struct {
	Name              string
	Language          *sitter.Language
	NamespaceKeywords []string // leaves starting a namespace declaration
	TypeKeywords      []string // leaves introducing a type declaration
	Identifiers       []string // leaves accepted as name fragments
	Separators        []string // leaves separating namespace segments
	Comments          []string // leaves ignored entirely
	Groups            []string // leaves opening a group of type declarations
	Separator         string   // canonical separator used in fully-qualified names

	once  sync.Once
	kinds map[string]tokenKind
}

func (d *Dialect) kind(nodeType string) tokenKind {
	d.once.Do(d.index)
	return d.kinds[nodeType]
}

func (d *Dialect) index() {
	d.kinds = make(map[string]tokenKind)
	register := func(types []string, kind tokenKind) {
		for _, t := range types {
			d.kinds[t] = kind
		}
	}
	register(d.Identifiers, tokenIdentifier)
	register(d.Separators, tokenSeparator)
	register(d.NamespaceKeywords, tokenNamespace)
	register(d.TypeKeywords, tokenType)
	register(d.Comments, tokenComment)
	register(d.Groups, tokenGroup)
}
