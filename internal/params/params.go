// Package params loads diagram parameters and application variables.
//
// A diagram parameter file maps block names to parameter names to values.
// Values are kept as strings and parsed by the block that asks for them, so
// the same file can feed scalars, lists and matrices. A parameter can be
// overridden by the environment variable BLOCK_PARAM (both upper-cased),
// which wins over the file; the block's default is used when neither is
// set or parses.
package params

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaSource string

// FileBase is the base name looked for in a run directory.
const FileBase = "diagram_params"

// Format is a parameter file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf infers the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", &LoadError{Code: ErrCodeUnsupportedFormat, Path: path, Message: "want .json, .yaml, .yml or .toml"}
}

// Diagram holds raw parameter values by block name, then parameter name.
// Names are NFC-normalized.
type Diagram map[string]map[string]string

// Get returns the raw value of block.name.
func (d Diagram) Get(block, name string) (string, bool) {
	vars, ok := d[norm.NFC.String(block)]
	if !ok {
		return "", false
	}
	v, ok := vars[norm.NFC.String(name)]
	return v, ok
}

// Set stores a raw value, mainly for tests and the CLI --set flag.
func (d Diagram) Set(block, name, value string) {
	block, name = norm.NFC.String(block), norm.NFC.String(name)
	if d[block] == nil {
		d[block] = make(map[string]string)
	}
	d[block][name] = value
}

// Blocks returns the block names in sorted order.
func (d Diagram) Blocks() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load reads a parameter file, choosing the decoder by extension.
func Load(path string) (Diagram, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeReadFailed, Path: path, Message: "cannot read file", Err: err}
	}
	d, err := Parse(data, format)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	slog.Info("loaded diagram params", "path", path, "blocks", len(d))
	return d, nil
}

// LoadDir looks for diagram_params.{json,yaml,yml,toml} in dir. A missing
// file is not an error: the result is an empty Diagram and every parameter
// falls back to its default.
func LoadDir(dir string) (Diagram, error) {
	for _, ext := range []string{".json", ".yaml", ".yml", ".toml"} {
		path := filepath.Join(dir, FileBase+ext)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return Load(path)
	}
	slog.Info("no diagram params file found", "dir", dir)
	return Diagram{}, nil
}

// Parse decodes and validates a parameter document.
func Parse(data []byte, format Format) (Diagram, error) {
	var raw map[string]map[string]any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, &LoadError{Code: ErrCodeParseFailed, Message: err.Error(), Err: err}
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &LoadError{Code: ErrCodeParseFailed, Message: err.Error(), Err: err}
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &raw); err != nil {
			return nil, &LoadError{Code: ErrCodeParseFailed, Message: err.Error(), Err: err}
		}
	default:
		return nil, &LoadError{Code: ErrCodeUnsupportedFormat, Message: fmt.Sprintf("unknown format %q", format)}
	}

	if err := Validate(raw); err != nil {
		return nil, err
	}

	d := make(Diagram, len(raw))
	for block, vars := range raw {
		for name, v := range vars {
			s, err := stringify(v)
			if err != nil {
				return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("%s.%s: %v", block, name, err), Err: err}
			}
			d.Set(block, name, s)
		}
	}
	return d, nil
}

// Validate checks a decoded document against the embedded CUE schema.
func Validate(raw map[string]map[string]any) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource).LookupPath(cue.ParsePath("#Diagram"))
	if err := schema.Err(); err != nil {
		return &LoadError{Code: ErrCodeSchemaViolation, Message: "schema: " + err.Error(), Err: err}
	}
	if raw == nil {
		raw = map[string]map[string]any{}
	}
	v := schema.Unify(ctx.Encode(raw))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return &LoadError{Code: ErrCodeSchemaViolation, Message: err.Error(), Err: err}
	}
	return nil
}

// stringify renders a decoded value the way parameter parsers read it.
func stringify(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case []any:
		b, err := json.Marshal(x)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return "", fmt.Errorf("unsupported value type %T", v)
}
