package inspector_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/classmap/inspector"
	"github.com/viant/classmap/inspector/info"
)

func TestFactory_GetInspector(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantErr  bool
		dialect  string
	}{
		{
			name:     "PHP file",
			filename: "ShortFile.php",
			dialect:  "php",
		},
		{
			name:     "PHP include file",
			filename: "Legacy.INC",
			dialect:  "php",
		},
		{
			name:     "Java file",
			filename: "Test.java",
			dialect:  "java",
		},
		{
			name:     "Go file",
			filename: "store.go",
			dialect:  "go",
		},
		{
			name:     "Unsupported file",
			filename: "test.cpp",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := inspector.NewFactory(&info.Config{ChunkSize: 1024})

			insp, err := factory.GetInspector(tt.filename)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			if !assert.NoError(t, err) {
				return
			}
			assert.Equal(t, tt.dialect, insp.Dialect().Name)
		})
	}
}

func TestFactory_Lookup(t *testing.T) {
	factory := inspector.NewFactory(nil)
	for _, dialect := range []string{"php", "PHP", "java", "go", "golang"} {
		insp, err := factory.Lookup(dialect)
		if assert.NoError(t, err, dialect) {
			assert.NotNil(t, insp.Dialect())
		}
	}
	_, err := factory.Lookup("cobol")
	assert.Error(t, err)

	insp, err := factory.Lookup("php")
	assert.NoError(t, err)
	declaration, err := insp.InspectSource(context.Background(), []byte("<?php\nnamespace A;\nclass B {}\n"))
	assert.NoError(t, err)
	assert.Equal(t, `A\B`, declaration.FullName())
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".php", inspector.Extension(""))
	assert.Equal(t, ".php", inspector.Extension("php"))
	assert.Equal(t, ".java", inspector.Extension("java"))
	assert.Equal(t, ".go", inspector.Extension("go"))
}
