package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/classmap/inspector"
	"github.com/viant/classmap/inspector/info"
	"github.com/viant/classmap/inspector/repository"
	"gopkg.in/yaml.v3"
)

// DefaultOutput is the class-map file written when no output is configured
const DefaultOutput = "class-map.yaml"

var (
	// ErrNoLibraries is returned when the configuration defines no library
	ErrNoLibraries = errors.New("no libraries specified")
	// ErrInvalidLibrary is returned for a library without a name or path
	ErrInvalidLibrary = errors.New("invalid library")
)

// Library is a top-level namespace: sources live in Path/Name
type Library struct {
	Name      string `yaml:"name"`
	Path      string `yaml:"path"`
	Extension string `yaml:"extension,omitempty"`
	Dialect   string `yaml:"dialect,omitempty"`
}

// Config defines libraries to map and where to store the map
type Config struct {
	Libraries []*Library `yaml:"libraries"`
	Exclude   []string   `yaml:"exclude,omitempty"`
	ChunkSize int        `yaml:"chunkSize,omitempty"`
	Output    string     `yaml:"output,omitempty"`
}

// Load reads YAML configuration from URL
func Load(ctx context.Context, fs afs.Service, URL string) (*Config, error) {
	if fs == nil {
		fs = afs.New()
	}
	data, err := fs.DownloadWithURL(ctx, repository.Normalize(URL))
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", URL, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", URL, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Init sets defaults. A library without extension takes the dialect extension; without
// dialect the dialect is detected from the project stored under the library directory.
func (c *Config) Init(ctx context.Context, detector *repository.Detector) error {
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = info.DefaultChunkSize
	}
	for _, library := range c.Libraries {
		if library.Dialect == "" && library.Extension == "" && detector != nil {
			kind, err := detector.DetectKind(ctx, library.Location())
			if err != nil {
				return fmt.Errorf("failed to detect library %s kind: %w", library.Name, err)
			}
			if kind != repository.KindUnknown {
				library.Dialect = kind
			}
		}
		if library.Extension == "" {
			library.Extension = inspector.Extension(library.Dialect)
		}
	}
	return nil
}

// Validate checks that every library has a unique name and a path
func (c *Config) Validate() error {
	if len(c.Libraries) == 0 {
		return ErrNoLibraries
	}
	var errs []error
	names := map[string]bool{}
	for i, library := range c.Libraries {
		switch {
		case library.Name == "":
			errs = append(errs, fmt.Errorf("%w: #%d has no name", ErrInvalidLibrary, i))
		case library.Path == "":
			errs = append(errs, fmt.Errorf("%w: %s has no path", ErrInvalidLibrary, library.Name))
		case names[library.Name]:
			errs = append(errs, fmt.Errorf("%w: %s is defined more than once", ErrInvalidLibrary, library.Name))
		}
		names[library.Name] = true
	}
	return errors.Join(errs...)
}

// InspectorConfig returns the inspector config
func (c *Config) InspectorConfig() *info.Config {
	return &info.Config{ChunkSize: c.ChunkSize}
}

// Location returns the library directory
func (l *Library) Location() string {
	if l.Path == "" || l.Path[len(l.Path)-1] == '/' {
		return l.Path + l.Name
	}
	return l.Path + "/" + l.Name
}
