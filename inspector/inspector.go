package inspector

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/viant/classmap/inspector/golang"
	"github.com/viant/classmap/inspector/info"
	"github.com/viant/classmap/inspector/java"
	"github.com/viant/classmap/inspector/php"
)

// Inspector provides an interface for extracting the first type declaration of a source
type Inspector interface {
	// InspectSource scans a complete source held in memory
	InspectSource(ctx context.Context, src []byte) (*info.Declaration, error)

	// InspectReader scans a source incrementally until a declaration is found or the reader is exhausted
	InspectReader(ctx context.Context, reader io.Reader) (*info.Declaration, error)

	// Dialect returns the declaration dialect used by the inspector
	Dialect() *info.Dialect
}

// Factory creates appropriate inspectors based on language
type Factory struct {
	config *info.Config
}

// NewFactory creates a new inspector factory with the given config
func NewFactory(config *info.Config) *Factory {
	if config == nil {
		config = info.DefaultConfig()
	}
	return &Factory{
		config: config,
	}
}

// GetInspector returns an appropriate inspector based on file extension
func (f *Factory) GetInspector(filename string) (Inspector, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".php", ".inc":
		return php.NewInspector(f.config), nil
	case ".java":
		return java.NewInspector(f.config), nil
	case ".go":
		return golang.NewInspector(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported file type: %s", ext)
	}
}

// Lookup returns an inspector for the dialect name
func (f *Factory) Lookup(dialect string) (Inspector, error) {
	switch strings.ToLower(dialect) {
	case php.Name:
		return php.NewInspector(f.config), nil
	case java.Name:
		return java.NewInspector(f.config), nil
	case golang.Name, "golang":
		return golang.NewInspector(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}
}

// Extension returns the default source file extension of the dialect
func Extension(dialect string) string {
	switch strings.ToLower(dialect) {
	case java.Name:
		return ".java"
	case golang.Name, "golang":
		return ".go"
	default:
		return ".php"
	}
}
