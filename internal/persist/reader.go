package persist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/artifactsmith/internal/ctxlog"
	"github.com/specialistvlad/artifactsmith/internal/errs"
)

// Status is the outcome of reading a persisted artifact.
type Status int

const (
	// StatusMissing means no file exists at the path.
	StatusMissing Status = iota
	// StatusRead means the file parsed and Values holds what it declared.
	StatusRead
	// StatusUnreadable means the file exists but could not be parsed.
	StatusUnreadable
)

func (s Status) String() string {
	switch s {
	case StatusMissing:
		return "missing"
	case StatusRead:
		return "read"
	case StatusUnreadable:
		return "unreadable"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is what a read produced.
type Result struct {
	Status Status
	Path   string
	// Values holds persisted values for the requested names only; names the
	// file does not declare are absent.
	Values map[string]string
	// Err wraps errs.ErrPersistedUnreadable when Status is StatusUnreadable.
	Err error
}

// Parser extracts name -> value pairs from a file's raw content.
type Parser func(data []byte) (map[string]string, error)

// Reader dispatches to parsers by file extension.
type Reader struct {
	parsers map[string]Parser
}

// NewReader returns a reader that understands .xml, .properties, .hcl,
// .yaml and .yml files.
func NewReader() *Reader {
	r := &Reader{parsers: make(map[string]Parser)}
	r.Register(".xml", ParseXML)
	r.Register(".pom", ParseXML)
	r.Register(".properties", ParseProperties)
	r.Register(".prefs", ParseProperties)
	r.Register(".hcl", ParseHCL)
	r.Register(".yaml", ParseYAML)
	r.Register(".yml", ParseYAML)
	return r
}

// Register adds or replaces the parser for an extension (with leading dot).
func (r *Reader) Register(ext string, p Parser) {
	r.parsers[strings.ToLower(ext)] = p
}

// Read parses the file at path and returns the values for names.
func (r *Reader) Read(ctx context.Context, path string, names []string) Result {
	logger := ctxlog.FromContext(ctx).With("path", path)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Result{Status: StatusMissing, Path: path}
	}
	if err != nil {
		return unreadable(path, err)
	}

	parse, ok := r.parsers[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return unreadable(path, fmt.Errorf("no parser for %q files", filepath.Ext(path)))
	}

	all, err := safeParse(parse, data)
	if err != nil {
		logger.Debug("Persisted artifact could not be parsed.", "error", err)
		return unreadable(path, err)
	}

	values := make(map[string]string, len(names))
	for _, name := range names {
		if v, ok := all[name]; ok {
			values[name] = v
		}
	}
	logger.Debug("Read persisted values.", "declared", len(all), "matched", len(values))
	return Result{Status: StatusRead, Path: path, Values: values}
}

func unreadable(path string, cause error) Result {
	return Result{
		Status: StatusUnreadable,
		Path:   path,
		Err:    fmt.Errorf("%w: %s: %w", errs.ErrPersistedUnreadable, path, cause),
	}
}

// safeParse keeps a misbehaving parser from taking the pass down with it.
func safeParse(parse Parser, data []byte) (values map[string]string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parser panicked: %v", r)
		}
	}()
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("file is empty")
	}
	return parse(data)
}
