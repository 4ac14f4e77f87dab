package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FS is a filesystem-backed Store rooted at a directory. Revisions are
// content hashes, so identical content always carries the same marker
// and any change is detectable. A process-wide mutex serializes
// mutations; conflict detection still matters because viewer and
// editor (or two editors) may hold stale revisions across reads.
type FS struct {
	root string
	mu   sync.Mutex
}

// NewFS opens a filesystem store rooted at dir.
func NewFS(dir string) (*FS, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("store: %s is not a directory", dir)
	}
	return &FS{root: dir}, nil
}

func contentRev(data []byte) Revision {
	sum := sha256.Sum256(data)
	return Revision(hex.EncodeToString(sum[:8]))
}

func (f *FS) abs(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", fmt.Errorf("store: path %q escapes the root", path)
	}
	return filepath.Join(f.root, clean), nil
}

func (f *FS) Read(path string) (File, error) {
	abs, err := f.abs(path)
	if err != nil {
		return File{}, err
	}
	data, err := os.ReadFile(abs)
	if os.IsNotExist(err) {
		return File{}, fmt.Errorf("store: read %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return File{}, fmt.Errorf("store: read %s: %w", path, err)
	}
	return File{Path: path, Data: data, Rev: contentRev(data)}, nil
}

func (f *FS) Write(path string, data []byte, rev Revision) (Revision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writeLocked(path, data, rev, true)
}

func (f *FS) writeLocked(path string, data []byte, rev Revision, checkRev bool) (Revision, error) {
	abs, err := f.abs(path)
	if err != nil {
		return "", err
	}
	if checkRev {
		current, err := os.ReadFile(abs)
		switch {
		case os.IsNotExist(err):
			if rev != "" {
				return "", fmt.Errorf("store: write %s: %w", path, ErrConflict)
			}
		case err != nil:
			return "", fmt.Errorf("store: write %s: %w", path, err)
		default:
			if contentRev(current) != rev {
				return "", fmt.Errorf("store: write %s: %w", path, ErrConflict)
			}
		}
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("store: write %s: %w", path, err)
	}
	tmp := abs + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("store: write %s: %w", path, err)
	}
	if err := os.Rename(tmp, abs); err != nil {
		return "", fmt.Errorf("store: write %s: %w", path, err)
	}
	return contentRev(data), nil
}

func (f *FS) Delete(path string, rev Revision) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleteLocked(path, rev, true)
}

func (f *FS) deleteLocked(path string, rev Revision, checkRev bool) error {
	abs, err := f.abs(path)
	if err != nil {
		return err
	}
	current, err := os.ReadFile(abs)
	if os.IsNotExist(err) {
		return fmt.Errorf("store: delete %s: %w", path, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("store: delete %s: %w", path, err)
	}
	if checkRev && contentRev(current) != rev {
		return fmt.Errorf("store: delete %s: %w", path, ErrConflict)
	}
	if err := os.Remove(abs); err != nil {
		return fmt.Errorf("store: delete %s: %w", path, err)
	}
	return nil
}

func (f *FS) List(prefix string) ([]string, error) {
	base, err := f.abs(prefix)
	if err != nil {
		return nil, err
	}
	var paths []string
	err = filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && p == base {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() || strings.HasSuffix(p, ".tmp") {
			return nil
		}
		rel, err := filepath.Rel(f.root, p)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: list %s: %w", prefix, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// Head hashes the sorted path:revision table of every file, so any
// content change anywhere moves the head.
func (f *FS) Head() (Revision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.headLocked()
}

func (f *FS) headLocked() (Revision, error) {
	paths, err := f.List("")
	if err != nil {
		return "", err
	}
	h := sha256.New()
	for _, p := range paths {
		file, err := f.Read(p)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(h, "%s:%s\n", p, file.Rev)
	}
	return Revision(hex.EncodeToString(h.Sum(nil)[:8])), nil
}

// Apply performs all ops as one change. The head must still match
// base; individual per-file revision checks are subsumed by that.
func (f *FS) Apply(ops []Op, base Revision) (Revision, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	head, err := f.headLocked()
	if err != nil {
		return "", err
	}
	if head != base {
		return "", fmt.Errorf("store: apply: %w", ErrConflict)
	}
	for _, op := range ops {
		if op.Delete {
			if err := f.deleteLocked(op.Path, "", false); err != nil {
				return "", err
			}
			continue
		}
		if _, err := f.writeLocked(op.Path, op.Data, "", false); err != nil {
			return "", err
		}
	}
	return f.headLocked()
}
