// Package include provides loaders for the $include directive. Every
// constructor returns the func(path) (string, error) shape consumed by
// Options.LoadInclude.
//
// Loaders perform no cycle detection: a template pack whose files include
// each other in a loop will recurse until the stack is exhausted. Wrap a
// loader with Limit to enforce a budget.
package include

import (
	"io"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
	"golang.org/x/xerrors"
)

// Func loads the template source behind an include path.
type Func func(path string) (string, error)

// FS loads includes from a billy filesystem.
func FS(fs billy.Filesystem) Func {
	return func(path string) (string, error) {
		f, err := fs.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

// Dir loads includes from a directory on the host filesystem, resolved
// relative to root.
func Dir(root string) Func {
	return FS(osfs.New(root))
}

// Map loads includes from an in-memory table of path to source.
func Map(files map[string]string) Func {
	return func(path string) (string, error) {
		src, ok := files[path]
		if !ok {
			return "", xerrors.Errorf("no include registered for %q", path)
		}
		return src, nil
	}
}

// Git clones a repository of templates into an in-memory filesystem and
// loads includes from it. ref selects the reference to check out; empty
// means the remote default branch.
func Git(url string, ref plumbing.ReferenceName) (Func, error) {
	fs := memfs.New()
	storage := memory.NewStorage()
	opts := &git.CloneOptions{
		URL:          url,
		SingleBranch: true,
	}
	if ref != "" {
		opts.ReferenceName = ref
	}
	if _, err := git.Clone(storage, fs, opts); err != nil {
		return nil, xerrors.Errorf("cloning %s: %w", url, err)
	}
	return FS(fs), nil
}

// Limit wraps a loader so that at most max loads are served before it starts
// failing, bounding runaway include recursion. The counter spans the
// loader's lifetime, so dedicate one wrapped loader per render.
func Limit(load Func, max int) Func {
	remaining := max
	return func(path string) (string, error) {
		if remaining <= 0 {
			return "", xerrors.Errorf("include budget exhausted at %q", path)
		}
		remaining--
		return load(path)
	}
}
