package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
)

// ErrInvalidPattern is returned for exclusion patterns that do not compile
var ErrInvalidPattern = errors.New("invalid exclusion pattern")

// Visitor is called for every matched file. The relative path is slash separated and
// starts with the walked directory name.
type Visitor func(ctx context.Context, relative string, object storage.Object) error

// Walker visits source files of a directory tree depth-first, in name order
type Walker struct {
	fs         afs.Service
	exclusions []glob.Glob
}

// NewWalker creates a walker; exclusion patterns are globs over relative paths
func NewWalker(fs afs.Service, exclusions ...string) (*Walker, error) {
	if fs == nil {
		fs = afs.New()
	}
	matchers, err := compileGlobs(exclusions)
	if err != nil {
		return nil, err
	}
	return &Walker{fs: fs, exclusions: matchers}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		matcher, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, errors.Join(ErrInvalidPattern, err)
		}
		matchers = append(matchers, matcher)
	}
	return matchers, nil
}

// IsDir returns true if the location exists and is a directory
func (w *Walker) IsDir(ctx context.Context, location string) (bool, error) {
	URL := Normalize(location)
	exists, err := w.fs.Exists(ctx, URL)
	if err != nil || !exists {
		return false, err
	}
	object, err := w.fs.Object(ctx, URL)
	if err != nil {
		return false, err
	}
	return object.IsDir(), nil
}

// Walk visits files under baseURL/dir whose names end with suffix, compared case-insensitively
func (w *Walker) Walk(ctx context.Context, baseURL, dir, suffix string, visitor Visitor) error {
	base := Normalize(baseURL)
	if len(base) > 1 {
		base = strings.TrimSuffix(base, "/")
	}
	URL := url.Join(base, dir)
	return w.walk(ctx, URL, dir, strings.ToLower(suffix), visitor)
}

func (w *Walker) walk(ctx context.Context, URL, relative, suffix string, visitor Visitor) error {
	objects, err := w.fs.List(ctx, URL)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", URL, err)
	}
	children := make([]storage.Object, 0, len(objects))
	for i, object := range objects {
		if i == 0 && object.IsDir() && object.Name() == path.Base(relative) { // listed directory itself
			continue
		}
		children = append(children, object)
	}
	sort.Slice(children, func(i, j int) bool {
		return children[i].Name() < children[j].Name()
	})

	for _, child := range children {
		childRelative := path.Join(relative, child.Name())
		if w.excluded(childRelative) {
			continue
		}
		if child.IsDir() {
			if err = w.walk(ctx, child.URL(), childRelative, suffix, visitor); err != nil {
				return err
			}
			continue
		}
		if !strings.HasSuffix(strings.ToLower(child.Name()), suffix) {
			continue
		}
		if err = visitor(ctx, childRelative, child); err != nil {
			return err
		}
	}
	return nil
}

func (w *Walker) excluded(relative string) bool {
	for _, matcher := range w.exclusions {
		if matcher.Match(relative) {
			return true
		}
	}
	return false
}

// Open opens a walked file for sequential reads
func (w *Walker) Open(ctx context.Context, object storage.Object) (io.ReadCloser, error) {
	return w.fs.Open(ctx, object)
}

// Normalize makes a scheme-less relative location absolute
func Normalize(location string) string {
	if strings.Contains(location, "://") || filepath.IsAbs(location) {
		return location
	}
	if abs, err := filepath.Abs(location); err == nil {
		return abs
	}
	return location
}
