package builder_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/classmap/builder"
	"github.com/viant/classmap/inspector/info"
)

func dummyMap() builder.Map {
	return builder.Map{
		`Dummy\ShortFile`:               {Library: "Dummy", Path: "Dummy/ShortFile.php"},
		`Dummy\LongFile`:                {Library: "Dummy", Path: "Dummy/LongFile.php"},
		`Dummy\AnotherLongFile`:         {Library: "Dummy", Path: "Dummy/AnotherLongFile.php"},
		`Dummy\DifferentNamespaceStyle`: {Library: "Dummy", Path: "Dummy/DifferentNamespaceStyle.php"},
		`Dummy\Subdirectory\SubdirSupport`: {
			Library: "Dummy", Path: "Dummy/Subdirectory/SubdirSupport.php",
		},
		`Dummy_Subdirectory_NoNamespace`: {Library: "Dummy", Path: "Dummy/Subdirectory/NoNamespace.php"},
	}
}

func TestBuilder_AddLibrary(t *testing.T) {
	tests := []struct {
		name       string
		rootPath   string
		wantErrors []string
	}{
		{
			name:       "trailing slash",
			rootPath:   "testdata/data/",
			wantErrors: []string{"Not a valid class file: testdata/data/Dummy/Subdirectory/InvalidFile.php"},
		},
		{
			name:       "appends slash",
			rootPath:   "testdata/data",
			wantErrors: []string{"Not a valid class file: testdata/data/Dummy/Subdirectory/InvalidFile.php"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := builder.New()
			require.NoError(t, err)

			errs, err := b.AddLibrary(context.Background(), "Dummy", tt.rootPath)
			require.NoError(t, err)
			assert.Equal(t, tt.wantErrors, builder.Messages(errs))
			assert.Equal(t, dummyMap(), b.Map())
			require.Len(t, errs, 1)
			assert.Equal(t, builder.FormatError, errs[0].Kind)
			assert.ErrorIs(t, errs[0], info.ErrNoDeclaration)
		})
	}
}

func TestBuilder_AddLibraryOverwritesOldEntries(t *testing.T) {
	ctx := context.Background()
	b, err := builder.New()
	require.NoError(t, err)

	_, err = b.AddLibrary(ctx, "Dummy", "testdata/data/")
	require.NoError(t, err)
	errs, err := b.AddLibrary(ctx, "Dummy2", "testdata/data/")
	require.NoError(t, err)
	assert.Empty(t, errs)

	expect := dummyMap()
	expect[`Dummy\ShortFile`] = &builder.Entry{Library: "Dummy2", Path: "Dummy2/ShortFile.php"}
	assert.Equal(t, expect, b.Map())
}

func TestBuilder_TraitHandling(t *testing.T) {
	b, err := builder.New()
	require.NoError(t, err)

	errs, err := b.AddLibrary(context.Background(), "TraitTest", "testdata/data/")
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, builder.Map{
		`TraitTest\SampleTrait`: {Library: "TraitTest", Path: "TraitTest/SampleTrait.php"},
	}, b.Map())
}

func TestBuilder_BuildMap(t *testing.T) {
	ctx := context.Background()
	b, err := builder.New()
	require.NoError(t, err)

	require.NoError(t, b.AddNamespace("Dummy", "testdata/data/"))
	require.NoError(t, b.AddNamespace("Dummy2", "testdata/data"))
	require.NoError(t, b.AddNamespace("TraitTest", "testdata/data"))
	assert.Empty(t, b.Map())

	assert.ErrorIs(t, b.AddNamespace("Dummy", "testdata/other/"), builder.ErrDuplicateNamespace)
	assert.True(t, b.HasNamespace("TraitTest"))
	require.NoError(t, b.RemoveNamespace("TraitTest"))
	assert.False(t, b.HasNamespace("TraitTest"))
	assert.ErrorIs(t, b.RemoveNamespace("TraitTest"), builder.ErrNamespaceNotFound)

	errs, err := b.BuildMap(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Not a valid class file: testdata/data/Dummy/Subdirectory/InvalidFile.php"}, builder.Messages(errs))

	expect := dummyMap()
	expect[`Dummy\ShortFile`] = &builder.Entry{Library: "Dummy2", Path: "Dummy2/ShortFile.php"}
	assert.Equal(t, expect, b.Map())
	assert.False(t, b.HasNamespace("Dummy"))

	errs, err = b.BuildMap(ctx)
	require.NoError(t, err)
	assert.Empty(t, errs)

	require.NoError(t, b.AddNamespace("Dummy", "testdata/data/"))
	assert.True(t, b.HasNamespace("Dummy"))
}

func TestBuilder_ClearMap(t *testing.T) {
	b, err := builder.New()
	require.NoError(t, err)

	_, err = b.AddLibrary(context.Background(), "Dummy", "testdata/data/")
	require.NoError(t, err)
	assert.NotEmpty(t, b.Map())

	b.ClearMap()
	assert.Empty(t, b.Map())
}

func TestBuilder_ConfigurationErrors(t *testing.T) {
	ctx := context.Background()
	b, err := builder.New()
	require.NoError(t, err)

	_, err = b.AddLibrary(ctx, "", "testdata/data/")
	assert.ErrorIs(t, err, builder.ErrEmptyLibraryID)

	_, err = b.AddLibrary(ctx, "Missing", "testdata/data/")
	assert.ErrorIs(t, err, builder.ErrLibraryNotFound)

	_, err = b.AddLibrary(ctx, "README.txt", "testdata/data/Dummy")
	assert.ErrorIs(t, err, builder.ErrLibraryNotFound)

	for _, libraryID := range []string{"Dummy/", "Dummy/Subdirectory", `Dummy\Subdirectory`, ".", ".."} {
		_, err = b.AddLibrary(ctx, libraryID, "testdata/data/")
		assert.ErrorIs(t, err, builder.ErrInvalidLibraryID, libraryID)
	}

	assert.ErrorIs(t, b.AddNamespace("", "testdata/data/"), builder.ErrEmptyLibraryID)
	assert.ErrorIs(t, b.AddNamespace("Dummy/", "testdata/data/"), builder.ErrInvalidLibraryID)
	assert.False(t, b.HasNamespace("Dummy/"))
	assert.Empty(t, b.Map())

	_, err = builder.New(builder.WithDialect("cobol"))
	assert.Error(t, err)

	_, err = builder.New(builder.WithExclusions("[unclosed"))
	assert.Error(t, err)
}

func TestBuilder_ChunkBoundaries(t *testing.T) {
	for _, chunkSize := range []int{17, 64, 1000, 4096, 1 << 16} {
		b, err := builder.New(builder.WithConfig(&info.Config{ChunkSize: chunkSize}))
		require.NoError(t, err)

		errs, err := b.AddLibrary(context.Background(), "Dummy", "testdata/data/")
		require.NoError(t, err)
		assert.Len(t, errs, 1, "chunk size %d", chunkSize)
		assert.Equal(t, dummyMap(), b.Map(), "chunk size %d", chunkSize)
	}
}

func TestBuilder_Extension(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Lib", "Upper.PHP"), "<?php\nnamespace Lib;\nclass Upper {}\n")
	writeFile(t, filepath.Join(root, "Lib", "Legacy.inc"), "<?php\nclass Lib_Legacy {}\n")
	writeFile(t, filepath.Join(root, "Lib", "Same.php"), "<?php\nnamespace Lib;\nclass Same {}\n")
	writeFile(t, filepath.Join(root, "Lib", "Sub", "Same.php"), "<?php\nnamespace Lib;\nclass Same {}\n")

	b, err := builder.New()
	require.NoError(t, err)

	errs, err := b.AddLibrary(context.Background(), "Lib", root, ".php")
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, builder.Map{
		`Lib\Upper`: {Library: "Lib", Path: "Lib/Upper.PHP"},
		`Lib\Same`:  {Library: "Lib", Path: "Lib/Sub/Same.php"},
	}, b.Map())

	b.ClearMap()
	errs, err = b.AddLibrary(context.Background(), "Lib", root, ".inc")
	require.NoError(t, err)
	assert.Empty(t, errs)
	assert.Equal(t, builder.Map{
		`Lib_Legacy`: {Library: "Lib", Path: "Lib/Legacy.inc"},
	}, b.Map())
}

func TestBuilder_Exclusions(t *testing.T) {
	b, err := builder.New(builder.WithExclusions("*/Subdirectory"))
	require.NoError(t, err)

	errs, err := b.AddLibrary(context.Background(), "Dummy", "testdata/data/")
	require.NoError(t, err)
	assert.Empty(t, errs)

	expect := dummyMap()
	delete(expect, `Dummy\Subdirectory\SubdirSupport`)
	delete(expect, `Dummy_Subdirectory_NoNamespace`)
	assert.Equal(t, expect, b.Map())
}

func TestBuilder_Dialects(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "app", "Main.java"), "package com.example.app;\n\nimport java.util.List;\n\npublic final class Main {\n}\n")
	writeFile(t, filepath.Join(root, "app", "model", "User.java"), "package com.example.app.model;\n\npublic record User(String name) {}\n")
	writeFile(t, filepath.Join(root, "app", "Broken.java"), "package com.example.app;\n")
	writeFile(t, filepath.Join(root, "app", "store", "store.go"), "package store\n\n// Store keeps items\ntype Store struct {\n\titems map[string]struct{ value int }\n}\n")

	ctx := context.Background()
	b, err := builder.New()
	require.NoError(t, err)

	errs, err := b.AddLibrary(ctx, "app", root, ".java")
	require.NoError(t, err)
	assert.Equal(t, []string{"Not a valid class file: " + root + "/app/Broken.java"}, builder.Messages(errs))

	errs, err = b.AddLibrary(ctx, "app", root, ".go")
	require.NoError(t, err)
	assert.Empty(t, errs)

	assert.Equal(t, builder.Map{
		"com.example.app.Main":       {Library: "app", Path: "app/Main.java"},
		"com.example.app.model.User": {Library: "app", Path: "app/model/User.java"},
		"store.Store":                {Library: "app", Path: "app/store/store.go"},
	}, b.Map())
}

var errRead = errors.New("device read failure")

// faultyFs fails to open or read selected files
type faultyFs struct {
	afs.Service
	openFailures map[string]bool
	readFailures map[string]bool
}

func (f *faultyFs) Open(ctx context.Context, object storage.Object, options ...storage.Option) (io.ReadCloser, error) {
	if f.openFailures[object.Name()] {
		return nil, fmt.Errorf("failed to open %s: permission denied", object.URL())
	}
	reader, err := f.Service.Open(ctx, object, options...)
	if err != nil || !f.readFailures[object.Name()] {
		return reader, err
	}
	partial := io.MultiReader(io.LimitReader(reader, 16), iotest.ErrReader(errRead))
	return struct {
		io.Reader
		io.Closer
	}{partial, reader}, nil
}

func TestBuilder_FileErrors(t *testing.T) {
	fs := &faultyFs{
		Service:      afs.New(),
		openFailures: map[string]bool{"ShortFile.php": true},
		readFailures: map[string]bool{"LongFile.php": true},
	}
	b, err := builder.New(builder.WithFs(fs))
	require.NoError(t, err)

	errs, err := b.AddLibrary(context.Background(), "Dummy", "testdata/data/")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Cannot read file: testdata/data/Dummy/LongFile.php",
		"Cannot open file for reading: testdata/data/Dummy/ShortFile.php",
		"Not a valid class file: testdata/data/Dummy/Subdirectory/InvalidFile.php",
	}, builder.Messages(errs))
	require.Len(t, errs, 3)
	assert.Equal(t, builder.ReadError, errs[0].Kind)
	assert.ErrorIs(t, errs[0], errRead)
	assert.Equal(t, builder.OpenError, errs[1].Kind)
	assert.Equal(t, builder.FormatError, errs[2].Kind)

	expect := dummyMap()
	delete(expect, `Dummy\ShortFile`)
	delete(expect, `Dummy\LongFile`)
	assert.Equal(t, expect, b.Map())
}

func TestMap_Lookup(t *testing.T) {
	classes := dummyMap()
	entry, ok := classes.Lookup(`Dummy\LongFile`)
	require.True(t, ok)
	assert.Equal(t, "Dummy/LongFile.php", entry.Path)

	_, ok = classes.Lookup(`Dummy\Missing`)
	assert.False(t, ok)

	assert.Equal(t, []string{
		`Dummy\AnotherLongFile`,
		`Dummy\DifferentNamespaceStyle`,
		`Dummy\LongFile`,
		`Dummy\ShortFile`,
		`Dummy\Subdirectory\SubdirSupport`,
		`Dummy_Subdirectory_NoNamespace`,
	}, classes.Names())
}

func TestMap_Fingerprint(t *testing.T) {
	first, err := dummyMap().Fingerprint()
	require.NoError(t, err)
	second, err := dummyMap().Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	changed := dummyMap()
	changed[`Dummy\ShortFile`].Library = "Dummy2"
	third, err := changed.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
}

func writeFile(t *testing.T, location, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(location), 0o755))
	require.NoError(t, os.WriteFile(location, []byte(content), 0o644))
}
