package builder

import (
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/classmap/inspector/info"
)

type Option func(*Builder)

// WithFs sets the file system used to walk and read libraries
func WithFs(fs afs.Service) Option {
	return func(b *Builder) {
		b.fs = fs
	}
}

// WithConfig sets the inspector config
func WithConfig(config *info.Config) Option {
	return func(b *Builder) {
		b.config = config
	}
}

// WithDialect forces a declaration dialect (php, java, go) regardless of file extension
func WithDialect(dialect string) Option {
	return func(b *Builder) {
		b.dialect = dialect
	}
}

// WithExclusions skips files and directories whose path relative to the root path matches a glob,
// for example "*/Tests/**"
func WithExclusions(patterns ...string) Option {
	return func(b *Builder) {
		b.exclusions = append(b.exclusions, patterns...)
	}
}

// WithLogger sets the logger reporting skipped files
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}
