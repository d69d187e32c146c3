package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pierrec/lz4/v4"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/classmap/builder"
	"github.com/viant/classmap/inspector/repository"
	"gopkg.in/yaml.v3"
)

// CompressedExtension marks LZ4 framed class-map files
const CompressedExtension = ".lz4"

// ErrFingerprintMismatch is returned when a loaded map does not match its stored fingerprint
var ErrFingerprintMismatch = errors.New("class map fingerprint mismatch")

// Document is the persisted class-map
type Document struct {
	Fingerprint string      `yaml:"fingerprint"`
	Classes     builder.Map `yaml:"classes"`
}

// Store persists class maps
type Store struct {
	fs afs.Service
}

// New creates a store
func New(fs afs.Service) *Store {
	if fs == nil {
		fs = afs.New()
	}
	return &Store{fs: fs}
}

// Save writes the map to URL
func (s *Store) Save(ctx context.Context, URL string, classes builder.Map) error {
	fingerprint, err := classes.Fingerprint()
	if err != nil {
		return fmt.Errorf("failed to fingerprint class map: %w", err)
	}
	data, err := yaml.Marshal(&Document{
		Fingerprint: strconv.FormatUint(fingerprint, 16),
		Classes:     classes,
	})
	if err != nil {
		return fmt.Errorf("failed to encode class map: %w", err)
	}
	if isCompressed(URL) {
		if data, err = compress(data); err != nil {
			return err
		}
	}
	if err = s.fs.Upload(ctx, repository.Normalize(URL), file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save class map %s: %w", URL, err)
	}
	return nil
}

// Load reads the map from URL and verifies its fingerprint
func (s *Store) Load(ctx context.Context, URL string) (builder.Map, error) {
	data, err := s.fs.DownloadWithURL(ctx, repository.Normalize(URL))
	if err != nil {
		return nil, fmt.Errorf("failed to load class map %s: %w", URL, err)
	}
	if isCompressed(URL) {
		if data, err = decompress(data); err != nil {
			return nil, err
		}
	}
	document := &Document{}
	if err = yaml.Unmarshal(data, document); err != nil {
		return nil, fmt.Errorf("failed to decode class map %s: %w", URL, err)
	}
	if document.Classes == nil {
		document.Classes = builder.Map{}
	}
	fingerprint, err := document.Classes.Fingerprint()
	if err != nil {
		return nil, fmt.Errorf("failed to fingerprint class map: %w", err)
	}
	if strconv.FormatUint(fingerprint, 16) != document.Fingerprint {
		return nil, fmt.Errorf("%w: %s", ErrFingerprintMismatch, URL)
	}
	return document.Classes, nil
}

func isCompressed(URL string) bool {
	return strings.HasSuffix(strings.ToLower(URL), CompressedExtension)
}

func compress(data []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	writer := lz4.NewWriter(buf)
	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress class map: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress class map: %w", err)
	}
	return buf.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	decompressed, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress class map: %w", err)
	}
	return decompressed, nil
}
