package include

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	load := Map(map[string]string{"a.tt": "alpha"})

	src, err := load("a.tt")
	require.NoError(t, err)
	assert.Equal(t, "alpha", src)

	_, err = load("b.tt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.tt")
}

func TestFS(t *testing.T) {
	fs := memfs.New()
	f, err := fs.Create("header.tt")
	require.NoError(t, err)
	_, err = f.Write([]byte("# ${title}\n"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	load := FS(fs)
	src, err := load("header.tt")
	require.NoError(t, err)
	assert.Equal(t, "# ${title}\n", src)

	_, err = load("missing.tt")
	require.Error(t, err)
}

func TestDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "row.tt"), []byte("|${it}|"), 0o644))

	load := Dir(dir)
	src, err := load("row.tt")
	require.NoError(t, err)
	assert.Equal(t, "|${it}|", src)
}

func TestLimit(t *testing.T) {
	calls := 0
	load := Limit(func(path string) (string, error) {
		calls++
		return "x", nil
	}, 2)

	_, err := load("a")
	require.NoError(t, err)
	_, err = load("b")
	require.NoError(t, err)
	_, err = load("c")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "budget exhausted")
	assert.Equal(t, 2, calls)
}

func TestGit(t *testing.T) {
	if os.Getenv("TT_NETWORK_TESTS") == "" {
		t.Skip("set TT_NETWORK_TESTS to run network-dependent tests")
	}
	load, err := Git("https://github.com/git-fixtures/basic.git", "")
	require.NoError(t, err)
	_, err = load("LICENSE")
	require.NoError(t, err)
}
