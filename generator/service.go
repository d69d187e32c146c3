package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/classmap/builder"
	"github.com/viant/classmap/config"
	"github.com/viant/classmap/inspector/repository"
	"github.com/viant/classmap/store"
)

// Result holds a generated class map
type Result struct {
	Map    builder.Map
	Errors []*builder.FileError
	Output string
}

// Service builds class maps for configured libraries and persists them
type Service struct {
	fs       afs.Service
	logger   *slog.Logger
	detector *repository.Detector
	store    *store.Store
}

// New creates a generator service
func New(fs afs.Service, logger *slog.Logger) *Service {
	if fs == nil {
		fs = afs.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		fs:       fs,
		logger:   logger,
		detector: repository.New(fs),
		store:    store.New(fs),
	}
}

// Generate maps libraries in configuration order, so a later library overrides classes of an
// earlier one, and saves the map to the configured output. Per-file errors are logged and
// returned in the result; they do not fail generation.
func (s *Service) Generate(ctx context.Context, cfg *config.Config) (*Result, error) {
	if err := cfg.Init(ctx, s.detector); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	classBuilder, err := builder.New(
		builder.WithFs(s.fs),
		builder.WithLogger(s.logger),
		builder.WithConfig(cfg.InspectorConfig()),
		builder.WithExclusions(cfg.Exclude...),
	)
	if err != nil {
		return nil, err
	}
	result := &Result{Output: cfg.Output}
	for _, library := range cfg.Libraries {
		classLibrary, err := builder.NewLibrary(library.Name, library.Path, library.Extension)
		if err != nil {
			return nil, err
		}
		classLibrary.Dialect = library.Dialect
		errs, err := classBuilder.Add(ctx, classLibrary)
		for _, fileErr := range errs {
			s.logger.WarnContext(ctx, fileErr.Error(), "library", library.Name)
		}
		result.Errors = append(result.Errors, errs...)
		if err != nil {
			return nil, err
		}
		s.logger.InfoContext(ctx, "library mapped", "library", library.Name, "classes", len(classBuilder.Map()), "errors", len(errs))
	}
	result.Map = classBuilder.Map()

	if err := s.store.Save(ctx, cfg.Output, result.Map); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "map saved", "output", cfg.Output, "classes", len(result.Map))
	return result, nil
}
