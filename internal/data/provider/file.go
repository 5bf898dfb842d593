package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/colonyops/reportbox/internal/core/report"
)

// Format is the encoding of a file source.
type Format string

// Supported file formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrNoMatches is returned when a glob source matches no files.
var ErrNoMatches = errors.New("no files match")

// document is the wrapped form of a report file: {"reports": [...]}.
type document struct {
	Reports []report.Record `json:"reports" yaml:"reports"`
}

// File reads records from a single file or from every file matching a
// doublestar glob. Matches are read in sorted path order and concatenated.
type File struct {
	format Format
	path   string
}

// NewFile creates a file provider.
func NewFile(format Format, path string) *File {
	return &File{format: format, path: path}
}

// Name implements Provider.
func (f *File) Name() string { return string(f.format) + ":" + f.path }

// Reports implements Provider.
func (f *File) Reports(ctx context.Context) ([]report.Record, error) {
	paths, err := f.Paths()
	if err != nil {
		return nil, err
	}

	records := make([]report.Record, 0)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		recs, err := f.readFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		records = append(records, recs...)
	}

	return records, nil
}

// Paths resolves the files the provider reads, in read order.
func (f *File) Paths() ([]string, error) {
	if !isGlob(f.path) {
		return []string{f.path}, nil
	}

	matches, err := doublestar.FilepathGlob(f.path, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", f.path, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w %q", ErrNoMatches, f.path)
	}

	slices.Sort(matches)
	return matches, nil
}

// WatchTarget implements Watchable. A glob whose remainder spans
// directories watches every directory under its base, including ones
// created later.
func (f *File) WatchTarget() (WatchTarget, error) {
	if !isGlob(f.path) {
		return fileTarget(f.path), nil
	}

	pattern := filepath.ToSlash(filepath.Clean(f.path))
	base, rest := doublestar.SplitPattern(pattern)
	base = filepath.FromSlash(base)
	recursive := strings.Contains(rest, "/")

	dirs := []string{base}
	if recursive {
		sub, err := subdirs(base)
		if err != nil {
			return WatchTarget{}, err
		}
		dirs = sub
	}

	return WatchTarget{
		Dirs:      dirs,
		Recursive: recursive,
		Match: func(path string) bool {
			ok, _ := doublestar.Match(pattern, filepath.ToSlash(filepath.Clean(path)))
			return ok
		},
	}, nil
}

func (f *File) readFile(path string) ([]report.Record, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	return Decode(f.format, fh)
}

// Decode reads records in the given format from r. Both formats accept a
// bare list of records or a document with a reports list.
func Decode(format Format, r io.Reader) ([]report.Record, error) {
	switch format {
	case FormatYAML:
		return decodeYAML(r)
	default:
		return decodeJSON(r)
	}
}

// decodeJSON accepts either a bare array of records or a {"reports": [...]}
// document.
func decodeJSON(r io.Reader) ([]report.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []report.Record{}, nil
	}

	if trimmed[0] == '{' {
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, fmt.Errorf("decode JSON: %w", err)
		}
		return nonNil(doc.Reports), nil
	}

	var records []report.Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("decode JSON: %w", err)
	}
	return nonNil(records), nil
}

// decodeYAML accepts either a sequence of records or a mapping with a
// reports key.
func decodeYAML(r io.Reader) ([]report.Record, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if errors.Is(err, io.EOF) {
			return []report.Record{}, nil
		}
		return nil, fmt.Errorf("decode YAML: %w", err)
	}

	root := &node
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	if root.Kind == yaml.MappingNode {
		var doc document
		if err := root.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
		return nonNil(doc.Reports), nil
	}

	var records []report.Record
	if err := root.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode YAML: %w", err)
	}
	return nonNil(records), nil
}

func nonNil(records []report.Record) []report.Record {
	if records == nil {
		return []report.Record{}
	}
	return records
}

func isGlob(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

// subdirs returns root and every directory below it.
func subdirs(root string) ([]string, error) {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	return dirs, nil
}
