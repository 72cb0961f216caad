package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/alecthomas/keepnames/internal/keepfile"
	"github.com/alecthomas/keepnames/internal/keepnames"
	"github.com/alecthomas/keepnames/internal/manifest"
)

func TestManifestPaths(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "sub", "b.yaml")
	root, paths, err := manifestPaths([]string{a, b})
	assert.NoError(t, err)
	assert.Equal(t, 2, len(paths))
	for i, path := range []string{a, b} {
		assert.Equal(t, path, filepath.Join(root, filepath.FromSlash(paths[i])))
		assert.False(t, strings.HasPrefix(paths[i], "/"))
	}
}

func TestEndToEnd(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "app.yaml")
	err := os.WriteFile(manifestPath, []byte(`
packages:
  - name: cache
    classes:
      - name: Store
        typeParams: [V]
  - name: model
    classes:
      - name: User
  - name: app
    classes:
      - name: Client
        fields:
          - name: store
            type: cache.Store<model.User>
            annotations: ["@Inject"]
      - name: AppModule
        annotations: ["@Module"]
`), 0600)
	assert.NoError(t, err)

	root, paths, err := manifestPaths([]string{manifestPath})
	assert.NoError(t, err)
	result, err := manifest.Load(os.DirFS(root), paths)
	assert.NoError(t, err)
	keep, err := keepnames.Collect(result.Graph, result.Seeds)
	assert.NoError(t, err)

	output := filepath.Join(dir, keepfile.DefaultFilename)
	logger := slog.New(slog.DiscardHandler)
	err = writeKeepFile(context.Background(), logger, output, keep.Names(), 0)
	assert.NoError(t, err)

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	expected := strings.Join([]string{
		keepfile.Header,
		"-keepnames class cache.Store",
		"-keepnames class model.User",
		"-keepnames class app.Client",
		"-keepnames class app.AppModule",
	}, keepfile.Newline) + keepfile.Newline
	assert.Equal(t, expected, string(data))
}

func TestWriteKeepFileLogging(t *testing.T) {
	tests := []struct {
		name     string
		existing bool
		names    []string
		expected string
		absent   string
	}{
		{"Written", false, []string{"app.Client"}, "Generated output file", "Nothing to keep"},
		{"EmptyKeepsExisting", true, nil, "Nothing to keep", "Generated output file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), keepfile.DefaultFilename)
			if tt.existing {
				err := os.WriteFile(output, []byte(keepfile.Header+keepfile.Newline), 0600)
				assert.NoError(t, err)
			}
			logs := &strings.Builder{}
			logger := slog.New(slog.NewTextHandler(logs, nil))
			err := writeKeepFile(context.Background(), logger, output, tt.names, 0)
			assert.NoError(t, err)
			assert.Contains(t, logs.String(), tt.expected)
			assert.NotContains(t, logs.String(), tt.absent)

			_, err = os.Stat(output + ".lock")
			assert.True(t, os.IsNotExist(err))
		})
	}
}
