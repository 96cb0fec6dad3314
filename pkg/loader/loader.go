package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"mercator-hq/chatlens/pkg/config"
)

// Format identifies a document encoding.
type Format string

const (
	// FormatJSON is the native export format.
	FormatJSON Format = "json"
	// FormatYAML is accepted for hand-written fixtures.
	FormatYAML Format = "yaml"
)

// Config contains loader settings.
type Config struct {
	// MaxSize is the largest export in bytes. 0 disables the check.
	MaxSize uint64

	// Extensions are the file extensions Discover returns.
	Extensions []string

	// SkipHidden ignores dot files and dot directories during discovery.
	SkipHidden bool
}

// FromConfig converts the loader section into a Config.
func FromConfig(cfg config.LoaderConfig) (Config, error) {
	size, err := cfg.MaxDocumentBytes()
	if err != nil {
		return Config{}, err
	}
	return Config{
		MaxSize:    size,
		Extensions: cfg.Extensions,
		SkipHidden: cfg.SkipHidden,
	}, nil
}

// Export is a decoded chat export together with its file metadata.
type Export struct {
	Path     string
	Size     int64
	ModTime  time.Time
	Format   Format
	Document any
}

// Loader reads chat exports from disk.
type Loader struct {
	config Config
}

// New creates a Loader. Missing extensions default to .json, .yaml and .yml.
func New(cfg Config) *Loader {
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = config.DefaultExtensions()
	}
	return &Loader{config: cfg}
}

// LoadFile reads and decodes the export at path. The document may be any JSON
// value, including null; interpreting it is left to the analyzer.
func (l *Loader) LoadFile(path string) (*Export, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Path: path, Op: "stat", Reason: statReason(err), Cause: err}
	}
	if !info.Mode().IsRegular() {
		return nil, &LoadError{Path: path, Op: "stat", Reason: ReasonIO, Cause: errors.New("not a regular file")}
	}
	if l.config.MaxSize > 0 && uint64(info.Size()) > l.config.MaxSize {
		return nil, &LoadError{
			Path:   path,
			Op:     "stat",
			Reason: ReasonTooLarge,
			Cause:  fmt.Errorf("%w: %d bytes > %d bytes", ErrTooLarge, info.Size(), l.config.MaxSize),
		}
	}

	format, err := l.formatOf(path)
	if err != nil {
		return nil, &LoadError{Path: path, Op: "decode", Reason: ReasonUnsupported, Cause: err}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Op: "read", Reason: statReason(err), Cause: err}
	}

	doc, err := decodeBytes(data, format)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, err
	}

	return &Export{
		Path:     path,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		Format:   format,
		Document: doc,
	}, nil
}

// Decode reads a whole document from r. The size limit applies to readers
// as well.
func (l *Loader) Decode(r io.Reader, format Format) (any, error) {
	src := r
	if l.config.MaxSize > 0 {
		src = io.LimitReader(r, int64(l.config.MaxSize)+1)
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, &LoadError{Op: "read", Reason: ReasonIO, Cause: err}
	}
	if l.config.MaxSize > 0 && uint64(len(data)) > l.config.MaxSize {
		return nil, &LoadError{
			Op:     "read",
			Reason: ReasonTooLarge,
			Cause:  fmt.Errorf("%w: more than %d bytes", ErrTooLarge, l.config.MaxSize),
		}
	}

	return decodeBytes(data, format)
}

// Discover returns the exports under dir, recursively, in lexical order.
// dir may also name a single file, which is returned as is.
func (l *Loader) Discover(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &LoadError{Path: dir, Op: "stat", Reason: statReason(err), Cause: err}
	}
	if !info.IsDir() {
		return []string{dir}, nil
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path != dir && l.config.SkipHidden && IsHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		if l.Matches(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, &LoadError{Path: dir, Op: "walk", Reason: ReasonIO, Cause: err}
	}

	sort.Strings(files)
	return files, nil
}

// Matches reports whether path has one of the configured extensions and,
// when hidden files are skipped, is not a dot file.
func (l *Loader) Matches(path string) bool {
	if l.config.SkipHidden && IsHidden(filepath.Base(path)) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, valid := range l.config.Extensions {
		if ext == strings.ToLower(valid) {
			return true
		}
	}
	return false
}

// IsHidden reports whether a file name starts with a dot.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// formatOf is FormatOf, except that extra configured extensions decode as
// JSON.
func (l *Loader) formatOf(path string) (Format, error) {
	format, err := FormatOf(path)
	if err == nil {
		return format, nil
	}
	if l.Matches(path) {
		return FormatJSON, nil
	}
	return "", err
}

// FormatOf selects the decoder for path by extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func decodeBytes(data []byte, format Format) (any, error) {
	if !utf8.Valid(data) {
		return nil, &LoadError{Op: "decode", Reason: ReasonEncoding, Cause: ErrInvalidEncoding}
	}

	var (
		doc any
		err error
	)
	switch format {
	case FormatJSON:
		doc, err = decodeJSON(data)
	case FormatYAML:
		doc, err = decodeYAML(data)
	default:
		return nil, &LoadError{Op: "decode", Reason: ReasonUnsupported, Cause: fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)}
	}
	if err != nil {
		return nil, &LoadError{Op: "decode", Reason: ReasonDecode, Cause: err}
	}
	return doc, nil
}

func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after top-level value")
	}
	return doc, nil
}

func decodeYAML(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return normalize(doc), nil
}

// normalize converts YAML mappings with non-string keys into map[string]any
// so YAML and JSON exports look the same to the analyzer.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalize(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalize(val)
		}
		return m
	case []any:
		for i := range t {
			t[i] = normalize(t[i])
		}
		return t
	default:
		return v
	}
}

func statReason(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ReasonNotFound
	case errors.Is(err, fs.ErrPermission):
		return ReasonPermission
	default:
		return ReasonIO
	}
}
