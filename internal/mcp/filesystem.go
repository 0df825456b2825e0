package mcp

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// ErrAccessDenied is returned for paths outside the served tree.
var ErrAccessDenied = stderrors.New("access denied")

// Entry is one item of a directory listing.
type Entry struct {
	Name string
	Dir  bool
}

// FileSystem is the storage the filesystem tools operate on.
type FileSystem interface {
	ReadFile(name string) (string, error)
	WriteFile(name, content string) error
	ListDirectory(name string) ([]Entry, error)
}

// Compile-time verification that both file systems implement FileSystem.
var (
	_ FileSystem = (*MemoryFS)(nil)
	_ FileSystem = (*DirFS)(nil)
)

// MemoryFS keeps files in a map keyed by cleaned slash path.
// Directories exist implicitly as prefixes of stored files.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]string
}

// NewMemoryFS creates an empty in-memory file system.
func NewMemoryFS() *MemoryFS {
	return &MemoryFS{files: make(map[string]string, 4)}
}

// ReadFile returns the content stored under name.
func (m *MemoryFS) ReadFile(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	content, ok := m.files[path.Clean(name)]
	if !ok {
		return "", &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	return content, nil
}

// WriteFile stores content under name, replacing any previous content.
func (m *MemoryFS) WriteFile(name, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[path.Clean(name)] = content

	return nil
}

// ListDirectory lists the direct children of name.
func (m *MemoryFS) ListDirectory(name string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dir := path.Clean(name)

	seen := make(map[string]bool)
	entries := make([]Entry, 0, len(m.files))

	for file := range m.files {
		var rest string

		switch {
		case dir == "." && !strings.HasPrefix(file, "/"):
			rest = file
		case dir == "/" && strings.HasPrefix(file, "/"):
			rest = strings.TrimPrefix(file, "/")
		case strings.HasPrefix(file, dir+"/"):
			rest = strings.TrimPrefix(file, dir+"/")
		default:
			continue
		}

		child, _, nested := strings.Cut(rest, "/")
		if seen[child] {
			continue
		}

		seen[child] = true
		entries = append(entries, Entry{Name: child, Dir: nested})
	}

	if len(entries) == 0 && dir != "." && dir != "/" {
		if _, isFile := m.files[dir]; !isFile {
			return nil, &fs.PathError{Op: "scandir", Path: name, Err: fs.ErrNotExist}
		}

		return nil, &fs.PathError{Op: "scandir", Path: name, Err: stderrors.New("not a directory")}
	}

	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })

	return entries, nil
}

// DirFS serves a directory tree through os.Root, which refuses any path
// that escapes the tree, symlinks included.
type DirFS struct {
	dir  string
	root *os.Root
}

// NewDirFS opens dir as the root of the served tree.
func NewDirFS(dir string) (*DirFS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, err
	}

	return &DirFS{dir: abs, root: root}, nil
}

// Dir returns the absolute path of the served tree.
func (d *DirFS) Dir() string {
	return d.dir
}

// Close releases the root handle.
func (d *DirFS) Close() error {
	return d.root.Close()
}

// local maps a client path onto a path relative to the root. Absolute paths
// must lie inside the served tree.
func (d *DirFS) local(name string) (string, error) {
	rel := name
	if filepath.IsAbs(name) {
		var err error

		rel, err = filepath.Rel(d.dir, name)
		if err != nil {
			return "", &fs.PathError{Op: "resolve", Path: name, Err: ErrAccessDenied}
		}
	}

	if !filepath.IsLocal(rel) && rel != "." {
		return "", &fs.PathError{Op: "resolve", Path: name, Err: ErrAccessDenied}
	}

	return rel, nil
}

// ReadFile reads a file inside the tree.
func (d *DirFS) ReadFile(name string) (string, error) {
	rel, err := d.local(name)
	if err != nil {
		return "", err
	}

	data, err := d.root.ReadFile(rel)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// WriteFile writes a file inside the tree, creating or truncating it.
func (d *DirFS) WriteFile(name, content string) error {
	rel, err := d.local(name)
	if err != nil {
		return err
	}

	return d.root.WriteFile(rel, []byte(content), 0o644)
}

// ListDirectory lists a directory inside the tree.
func (d *DirFS) ListDirectory(name string) ([]Entry, error) {
	rel, err := d.local(name)
	if err != nil {
		return nil, err
	}

	f, err := d.root.Open(rel)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dirEntries, err := f.ReadDir(-1)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, e := range dirEntries {
		entries = append(entries, Entry{Name: e.Name(), Dir: e.IsDir()})
	}

	slices.SortFunc(entries, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })

	return entries, nil
}
