package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/classmap/inspector"
	"github.com/viant/classmap/inspector/info"
	"github.com/viant/classmap/inspector/php"
	"github.com/viant/classmap/inspector/repository"
)

// DefaultExtension is the source file extension used when none is given
const DefaultExtension = ".php"

// Library is a top-level namespace stored in the directory Root + ID
type Library struct {
	ID        string
	Root      string // always ends with a slash
	Extension string
	Dialect   string // optional, overrides the builder dialect
}

// Builder scans library directory trees and maps the class declared in every source file
// to that file. The map grows across calls until cleared; a later file declaring an already
// mapped name overwrites the earlier entry.
type Builder struct {
	classes    Map
	pending    []*Library
	fs         afs.Service
	config     *info.Config
	dialect    string
	exclusions []string
	logger     *slog.Logger
	factory    *inspector.Factory
	walker     *repository.Walker
}

// New creates a builder
func New(options ...Option) (*Builder, error) {
	b := &Builder{classes: Map{}}
	for _, option := range options {
		option(b)
	}
	if b.fs == nil {
		b.fs = afs.New()
	}
	if b.config == nil {
		b.config = info.DefaultConfig()
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	b.factory = inspector.NewFactory(b.config)
	if b.dialect != "" {
		if _, err := b.factory.Lookup(b.dialect); err != nil {
			return nil, err
		}
	}
	walker, err := repository.NewWalker(b.fs, b.exclusions...)
	if err != nil {
		return nil, err
	}
	b.walker = walker
	return b, nil
}

// Map returns the current map
func (b *Builder) Map() Map {
	return b.classes
}

// ClearMap resets the map to empty
func (b *Builder) ClearMap() {
	b.classes = Map{}
}

// NewLibrary validates library arguments; the extension defaults to DefaultExtension
func NewLibrary(libraryID, rootPath string, extension ...string) (*Library, error) {
	if libraryID == "" {
		return nil, ErrEmptyLibraryID
	}
	if strings.ContainsAny(libraryID, `/\`) || libraryID == "." || libraryID == ".." {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLibraryID, libraryID)
	}
	if !strings.HasSuffix(rootPath, "/") {
		rootPath += "/"
	}
	library := &Library{ID: libraryID, Root: rootPath, Extension: DefaultExtension}
	if len(extension) > 0 && extension[0] != "" {
		library.Extension = extension[0]
	}
	return library, nil
}

// AddLibrary maps every source file under rootPath/libraryID and returns per-file errors in
// visit order. An invalid library id or a missing library directory is returned as error.
func (b *Builder) AddLibrary(ctx context.Context, libraryID, rootPath string, extension ...string) ([]*FileError, error) {
	library, err := NewLibrary(libraryID, rootPath, extension...)
	if err != nil {
		return nil, err
	}
	return b.Add(ctx, library)
}

// AddNamespace registers a library to be scanned by BuildMap. A namespace can be registered once.
func (b *Builder) AddNamespace(libraryID, rootPath string, extension ...string) error {
	library, err := NewLibrary(libraryID, rootPath, extension...)
	if err != nil {
		return err
	}
	if b.HasNamespace(libraryID) {
		return fmt.Errorf("%w: %s", ErrDuplicateNamespace, libraryID)
	}
	b.pending = append(b.pending, library)
	return nil
}

// HasNamespace returns true if the namespace is registered and not yet built
func (b *Builder) HasNamespace(libraryID string) bool {
	return b.namespaceIndex(libraryID) != -1
}

// RemoveNamespace unregisters a namespace
func (b *Builder) RemoveNamespace(libraryID string) error {
	index := b.namespaceIndex(libraryID)
	if index == -1 {
		return fmt.Errorf("%w: %s", ErrNamespaceNotFound, libraryID)
	}
	b.pending = append(b.pending[:index], b.pending[index+1:]...)
	return nil
}

func (b *Builder) namespaceIndex(libraryID string) int {
	for i, library := range b.pending {
		if library.ID == libraryID {
			return i
		}
	}
	return -1
}

// BuildMap scans registered namespaces in registration order and returns all per-file errors.
// Built namespaces are unregistered.
func (b *Builder) BuildMap(ctx context.Context) ([]*FileError, error) {
	var errs []*FileError
	for len(b.pending) > 0 {
		libraryErrs, err := b.Add(ctx, b.pending[0])
		errs = append(errs, libraryErrs...)
		if err != nil {
			return errs, err
		}
		b.pending = b.pending[1:]
	}
	b.pending = nil
	return errs, nil
}

// Add maps every source file of a library created with NewLibrary
func (b *Builder) Add(ctx context.Context, library *Library) ([]*FileError, error) {
	location := library.Root + library.ID
	isDir, err := b.walker.IsDir(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to check library %s: %w", library.ID, err)
	}
	if !isDir {
		return nil, fmt.Errorf("%w: %s", ErrLibraryNotFound, location)
	}
	sourceInspector, err := b.inspectorFor(library)
	if err != nil {
		return nil, err
	}

	var errs []*FileError
	err = b.walker.Walk(ctx, library.Root, library.ID, library.Extension, func(ctx context.Context, relative string, object storage.Object) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		filePath := library.Root + relative
		name, fileErr := b.inspectFile(ctx, sourceInspector, filePath, object)
		if fileErr != nil {
			b.logger.DebugContext(ctx, "file not mapped", "library", library.ID, "path", filePath, "error", fileErr.Err)
			errs = append(errs, fileErr)
			return nil
		}
		b.classes[name] = &Entry{Library: library.ID, Path: relative}
		return nil
	})
	if err != nil {
		return errs, fmt.Errorf("failed to walk library %s: %w", library.ID, err)
	}
	b.logger.DebugContext(ctx, "library mapped", "library", library.ID, "root", library.Root, "errors", len(errs))
	return errs, nil
}

func (b *Builder) inspectFile(ctx context.Context, sourceInspector inspector.Inspector, filePath string, object storage.Object) (string, *FileError) {
	reader, err := b.walker.Open(ctx, object)
	if err != nil {
		return "", &FileError{Kind: OpenError, Path: filePath, Err: err}
	}
	defer reader.Close()

	declaration, err := sourceInspector.InspectReader(ctx, reader)
	if err != nil {
		if errors.Is(err, info.ErrNoDeclaration) {
			return "", &FileError{Kind: FormatError, Path: filePath, Err: err}
		}
		return "", &FileError{Kind: ReadError, Path: filePath, Err: err}
	}
	return declaration.FullName(), nil
}

// inspectorFor returns the library or builder dialect inspector, or the one matching the
// extension. Unknown extensions are scanned as PHP.
func (b *Builder) inspectorFor(library *Library) (inspector.Inspector, error) {
	if library.Dialect != "" {
		return b.factory.Lookup(library.Dialect)
	}
	if b.dialect != "" {
		return b.factory.Lookup(b.dialect)
	}
	if sourceInspector, err := b.factory.GetInspector(library.Extension); err == nil {
		return sourceInspector, nil
	}
	return b.factory.Lookup(php.Name)
}
