package repository

import (
	"context"

	"github.com/viant/afs"
	"github.com/viant/afs/url"
)

// Project kinds
const (
	KindUnknown = "unknown"
	KindPHP     = "php"
	KindJava    = "java"
	KindGo      = "go"
)

type marker struct {
	name string
	kind string
}

// Detector identifies the kind of source project stored under a location
type Detector struct {
	fs      afs.Service
	markers []marker
	// suffixes probed when no marker file is present
	suffixes []marker
}

// New creates a new project detector instance
func New(fs afs.Service) *Detector {
	if fs == nil {
		fs = afs.New()
	}
	return &Detector{
		fs: fs,
		markers: []marker{
			{"composer.json", KindPHP}, // PHP projects
			{"pom.xml", KindJava},      // Java/Maven projects
			{"build.gradle", KindJava}, // Java/Gradle projects
			{"go.mod", KindGo},         // Go projects
		},
		suffixes: []marker{
			{".php", KindPHP},
			{".java", KindJava},
			{".go", KindGo},
		},
	}
}

// DetectKind returns the project kind of the location, checking marker files first and
// then the source files directly under the location. A missing location is unknown.
func (d *Detector) DetectKind(ctx context.Context, location string) (string, error) {
	URL := Normalize(location)
	if exists, err := d.fs.Exists(ctx, URL); err != nil || !exists {
		return KindUnknown, err
	}
	for _, candidate := range d.markers {
		exists, err := d.fs.Exists(ctx, url.Join(URL, candidate.name))
		if err != nil {
			return KindUnknown, err
		}
		if exists {
			return candidate.kind, nil
		}
	}
	for _, candidate := range d.suffixes {
		has, err := HasFileWithSuffixes(ctx, d.fs, URL, []string{candidate.name}, nil)
		if err != nil {
			return KindUnknown, err
		}
		if has {
			return candidate.kind, nil
		}
	}
	return KindUnknown, nil
}
