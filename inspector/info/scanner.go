package info

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

type scanState int

const (
	stateSeek scanState = iota
	stateNamespace
	stateName
)

const errorNodeType = "ERROR"

// scanner runs the declaration state machine over the leaves of a syntax tree
type scanner struct {
	dialect   *Dialect
	source    []byte
	state     scanState
	namespace strings.Builder
	name      string
	complete  bool
}

func newScanner(dialect *Dialect, source []byte) *scanner {
	return &scanner{dialect: dialect, source: source}
}

// declaration returns the scanned declaration, or nil unless a token followed the type name
func (s *scanner) declaration() *Declaration {
	if !s.complete {
		return nil
	}
	return &Declaration{
		Namespace: s.namespace.String(),
		Name:      s.name,
		Separator: s.dialect.Separator,
	}
}

// walk visits leaves depth-first and stops once the declaration is complete.
// Error recovery subtrees and missing nodes never produce tokens.
func (s *scanner) walk(node *sitter.Node) bool {
	if node == nil || node.IsMissing() || node.Type() == errorNodeType {
		return false
	}
	kind := s.dialect.kind(node.Type())
	if kind == tokenComment {
		return false
	}
	count := int(node.ChildCount())
	if count == 0 {
		return s.feed(kind, node.Content(s.source))
	}
	for i := 0; i < count; i++ {
		if s.walk(node.Child(i)) {
			return true
		}
	}
	return false
}

func (s *scanner) feed(kind tokenKind, text string) bool {
	switch s.state {
	case stateNamespace:
		switch kind {
		case tokenIdentifier:
			s.namespace.WriteString(text)
			return false
		case tokenSeparator:
			s.namespace.WriteString(s.dialect.Separator)
			return false
		}
		s.state = stateSeek
	case stateName:
		if s.name != "" {
			s.complete = true
			return true
		}
		switch kind {
		case tokenIdentifier:
			s.name = text
			return false
		case tokenGroup: // type ( A ...; B ... ) maps the first type of the group
			return false
		}
		s.state = stateSeek
	}

	switch kind {
	case tokenNamespace:
		s.state = stateNamespace
		s.namespace.Reset()
	case tokenType:
		s.state = stateName
	}
	return false
}
