// Package adapter contains infrastructure adapters for the railsbp CLI.
package adapter

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	m "railsbp.dev/pkg/railsbp/internal/model"
)

// TreeSuffixes are the file suffixes of tree dumps. The source path of a dump
// is the dump path without the suffix.
var TreeSuffixes = []string{".sexp.yml", ".sexp.yaml"}

// ErrNoSources is returned by Get when no tree dump matched the inputs.
var ErrNoSources = errors.New("no sources found")

// SourceFSAdapter abstracts the filesystem operations the domain layer relies
// on when scanning a project, so workflow logic can be tested without
// touching the disk.
type SourceFSAdapter interface {
	// Get resolves paths into sources. A path ending in "/..." is scanned
	// recursively. Exclude entries are regular expressions matched against
	// the slash-separated path relative to root.
	Get(ctx context.Context, root m.Path, paths []m.Path, exclude ...string) ([]m.Source, error)

	// Walk traverses root. When recursive is false sub-directories are skipped.
	Walk(ctx context.Context, root m.Path, recursive bool, fn FilepathWalkFunc) error

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// HashFile returns the SHA-256 fingerprint of the file at path.
	HashFile(ctx context.Context, path m.Path) (string, error)

	// FileInfo returns metadata for a path.
	FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk without
// leaking the standard-library type into the domain layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter reads sources from the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get implements SourceFSAdapter.
func (a *LocalSourceFSAdapter) Get(ctx context.Context, root m.Path, paths []m.Path, exclude ...string) ([]m.Source, error) {
	if root == "" {
		root = "."
	}

	if len(paths) == 0 {
		paths = []m.Path{"./..."}
	}

	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})

	var sources []m.Source

	for _, p := range paths {
		base, recursive := splitRecursive(p)
		if !filepath.IsAbs(base) {
			base = filepath.Join(string(root), base)
		}

		info, err := a.FileInfo(ctx, m.Path(base))
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}

		if !info.IsDir() {
			source, ok, err := a.sourceFor(ctx, root, base, excludes)
			if err != nil {
				return nil, err
			}

			if ok {
				sources = appendUnique(sources, seen, source)
			}

			continue
		}

		err = a.Walk(ctx, m.Path(base), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				return nil
			}

			source, ok, err := a.sourceFor(ctx, root, path, excludes)
			if err != nil {
				return err
			}

			if ok {
				sources = appendUnique(sources, seen, source)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}

	if len(sources) == 0 {
		return nil, ErrNoSources
	}

	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Origin.ShortPath < sources[j].Origin.ShortPath
	})

	return sources, nil
}

func (a *LocalSourceFSAdapter) sourceFor(ctx context.Context, root m.Path, path string, excludes []*regexp.Regexp) (m.Source, bool, error) {
	sourcePath, ok := TrimTreeSuffix(path)
	if !ok {
		return m.Source{}, false, nil
	}

	short, err := shortPath(root, sourcePath)
	if err != nil {
		return m.Source{}, false, err
	}

	for _, re := range excludes {
		if re.MatchString(string(short)) {
			return m.Source{}, false, nil
		}
	}

	hash, err := a.HashFile(ctx, m.Path(path))
	if err != nil {
		return m.Source{}, false, fmt.Errorf("hash %s: %w", path, err)
	}

	return m.Source{
		Origin: &m.File{
			FullPath:  m.Path(path),
			ShortPath: short,
			Hash:      hash,
		},
	}, true, nil
}

// TrimTreeSuffix returns the source path a tree dump stands for.
func TrimTreeSuffix(path string) (string, bool) {
	for _, suffix := range TreeSuffixes {
		if strings.HasSuffix(path, suffix) && len(path) > len(suffix) {
			return strings.TrimSuffix(path, suffix), true
		}
	}

	return path, false
}

func splitRecursive(p m.Path) (string, bool) {
	s := filepath.ToSlash(string(p))

	switch {
	case s == "...":
		return ".", true
	case strings.HasSuffix(s, "/..."):
		base := strings.TrimSuffix(s, "/...")
		if base == "" {
			base = "/"
		}

		return filepath.FromSlash(base), true
	default:
		return string(p), false
	}
}

func shortPath(root m.Path, path string) (m.Path, error) {
	rel, err := filepath.Rel(string(root), path)
	if err != nil {
		return "", fmt.Errorf("relative path of %s: %w", path, err)
	}

	return m.Path(filepath.ToSlash(rel)), nil
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	excludes := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		excludes = append(excludes, re)
	}

	return excludes, nil
}

func appendUnique(sources []m.Source, seen map[string]struct{}, source m.Source) []m.Source {
	key := string(source.Origin.FullPath)
	if _, ok := seen[key]; ok {
		return sources
	}

	seen[key] = struct{}{}

	return append(sources, source)
}

// Walk iterates over files under root, optionally descending into
// sub-directories.
func (a *LocalSourceFSAdapter) Walk(ctx context.Context, root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && path != rootStr {
			if !recursive || strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(string(path))
}

// HashFile returns the SHA-256 hash of the file at path.
func (a *LocalSourceFSAdapter) HashFile(ctx context.Context, path m.Path) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := os.Open(string(path))
	if err != nil {
		return "", err
	}

	defer func() {
		_ = f.Close()
	}()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// FileInfo returns os.FileInfo metadata for path.
func (a *LocalSourceFSAdapter) FileInfo(ctx context.Context, path m.Path) (os.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.Stat(string(path))
}
