package info

import (
	"context"
	"errors"
	"fmt"
	"io"

	sitter "github.com/smacker/go-tree-sitter"
)

// Inspector extracts the first namespace and type declaration of a source using a dialect
type Inspector struct {
	dialect *Dialect
	config  *Config
}

// NewInspector creates an Inspector for the given dialect
func NewInspector(dialect *Dialect, config *Config) *Inspector {
	if config == nil {
		config = DefaultConfig()
	}
	config.Init()
	return &Inspector{
		dialect: dialect,
		config:  config,
	}
}

// Dialect returns the inspector dialect
func (i *Inspector) Dialect() *Dialect {
	return i.dialect
}

// InspectSource scans a complete in-memory source
func (i *Inspector) InspectSource(ctx context.Context, src []byte) (*Declaration, error) {
	declaration, err := i.scan(ctx, sitter.NewParser(), src)
	if err != nil {
		return nil, err
	}
	if declaration == nil {
		return nil, ErrNoDeclaration
	}
	return declaration, nil
}

// InspectReader reads the source chunk by chunk, re-tokenizing everything read so far after
// every chunk, until a complete declaration is found. A declaration cut by a chunk boundary is
// discarded and rescanned with more content.
func (i *Inspector) InspectReader(ctx context.Context, reader io.Reader) (*Declaration, error) {
	parser := sitter.NewParser()
	chunk := make([]byte, i.config.ChunkSize)
	var buffer []byte
	for {
		n, err := io.ReadFull(reader, chunk)
		eof := errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
		if err != nil && !eof {
			return nil, fmt.Errorf("failed to read source: %w", err)
		}
		if n > 0 {
			buffer = append(buffer, chunk[:n]...)
			declaration, err := i.scan(ctx, parser, buffer)
			if err != nil {
				return nil, err
			}
			if declaration != nil {
				return declaration, nil
			}
		}
		if eof {
			return nil, ErrNoDeclaration
		}
	}
}

func (i *Inspector) scan(ctx context.Context, parser *sitter.Parser, src []byte) (*Declaration, error) {
	parser.SetLanguage(i.dialect.Language)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	s := newScanner(i.dialect, src)
	s.walk(tree.RootNode())
	return s.declaration(), nil
}
