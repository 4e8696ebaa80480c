package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "nodebug.dev/pkg/nodebug/internal/model"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "index.js"), "console.log(1)\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "child.js"), "console.log(2)\n")

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		assert.False(t, containsPath(visited, filepath.Join(nestedDir, "child.js")), "Walk() visited a nested file when recursive is false")
		assert.True(t, containsPath(visited, filepath.Join(root, "index.js")), "Walk() did not visit top-level file")
	})

	t.Run("recursive visits nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "child.js")
		writeTestFile(t, child, "console.log(2)\n")

		var visited []string
		err := adapter.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)
		assert.True(t, containsPath(visited, child))
	})
}

func TestLocalSourceFSAdapter_Get(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "index.js"), "x\n")
	writeTestFile(t, filepath.Join(root, "lib.mjs"), "x\n")
	writeTestFile(t, filepath.Join(root, "readme.md"), "x\n")

	mustMkdir(t, filepath.Join(root, "src"))
	writeTestFile(t, filepath.Join(root, "src", "app.cjs"), "x\n")
	writeTestFile(t, filepath.Join(root, "src", "view.jsx"), "x\n")
	writeTestFile(t, filepath.Join(root, "src", "app.test.js"), "x\n")

	mustMkdir(t, filepath.Join(root, "node_modules"))
	writeTestFile(t, filepath.Join(root, "node_modules", "dep.js"), "x\n")

	mustMkdir(t, filepath.Join(root, ".cache"))
	writeTestFile(t, filepath.Join(root, ".cache", "hidden.js"), "x\n")

	tests := []struct {
		name    string
		roots   []m.Path
		exclude []string
		want    []string
	}{
		{
			name:  "non recursive root",
			roots: []m.Path{m.Path(root)},
			want:  []string{"index.js", "lib.mjs"},
		},
		{
			name:  "recursive root skips node_modules and dot directories",
			roots: []m.Path{m.Path(root + "/...")},
			want:  []string{"index.js", "lib.mjs", "src/app.cjs", "src/app.test.js", "src/view.jsx"},
		},
		{
			name:    "exclude patterns",
			roots:   []m.Path{m.Path(root + "/...")},
			exclude: []string{`\.test\.js$`, `\.jsx$`},
			want:    []string{"index.js", "lib.mjs", "src/app.cjs"},
		},
		{
			name:  "single file root",
			roots: []m.Path{m.Path(filepath.Join(root, "src", "app.cjs"))},
			want:  []string{"src/app.cjs"},
		},
		{
			name:  "duplicate roots are collapsed",
			roots: []m.Path{m.Path(root), m.Path(filepath.Join(root, "index.js"))},
			want:  []string{"index.js", "lib.mjs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sources, err := NewLocalSourceFSAdapter().Get(context.Background(), tt.roots, tt.exclude...)
			require.NoError(t, err)

			var got []string
			for _, source := range sources {
				rel, err := filepath.Rel(root, string(source.Origin.Path))
				require.NoError(t, err)
				assert.NotEmpty(t, source.Origin.Hash)
				got = append(got, filepath.ToSlash(rel))
			}

			sort.Strings(got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocalSourceFSAdapter_Get_Errors(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	t.Run("missing root", func(t *testing.T) {
		_, err := adapter.Get(context.Background(), []m.Path{m.Path(filepath.Join(t.TempDir(), "missing"))})
		assert.ErrorContains(t, err, "root path error")
	})

	t.Run("invalid exclude", func(t *testing.T) {
		_, err := adapter.Get(context.Background(), []m.Path{m.Path(t.TempDir())}, "([")
		assert.ErrorContains(t, err, "invalid exclude pattern")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := adapter.Get(ctx, []m.Path{m.Path(t.TempDir())})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLocalSourceFSAdapter_ReadWriteFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	dir := filepath.Join(root, "out", "nested")
	require.NoError(t, adapter.MkdirAll(m.Path(dir)))

	path := filepath.Join(dir, "index.js")
	content := []byte("const a = 1;\n")
	require.NoError(t, adapter.WriteFile(m.Path(path), content, 0o644))

	got, err := adapter.ReadFile(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestLocalSourceFSAdapter_HashFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "index.js")
	content := []byte("import debug from 'debug';\n")
	writeTestBytes(t, path, content)

	hash, err := adapter.HashFile(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%x", sha256.Sum256(content)), hash)

	_, err = adapter.HashFile(m.Path(filepath.Join(root, "missing.js")))
	assert.Error(t, err)
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "index.js")
	writeTestFile(t, path, "x\n")

	info, err := adapter.FileInfo(m.Path(path))
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	dirInfo, err := adapter.FileInfo(m.Path(root))
	require.NoError(t, err)
	assert.True(t, dirInfo.IsDir())
}

func TestLocalSourceFSAdapter_PathHelpers(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	rel, err := adapter.RelPath("/tmp/project", "/tmp/project/src/lib/index.js")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("src", "lib", "index.js"), string(rel))

	joined := adapter.JoinPath("/tmp", "project", "index.js")
	assert.Equal(t, filepath.Join("/tmp", "project", "index.js"), string(joined))
}

func TestParseRootPath(t *testing.T) {
	tests := []struct {
		in        string
		path      string
		recursive bool
	}{
		{in: "./...", path: ".", recursive: true},
		{in: "...", path: ".", recursive: true},
		{in: "./src/...", path: "./src", recursive: true},
		{in: "./src", path: "./src", recursive: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			path, recursive := parseRootPath(tt.in)
			assert.Equal(t, tt.path, path)
			assert.Equal(t, tt.recursive, recursive)
		})
	}
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	writeTestBytes(t, path, []byte(contents))
}

func writeTestBytes(t *testing.T, path string, contents []byte) {
	t.Helper()
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
