package params

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/signal"
)

// Parser converts a raw value into T. def is the block's default, which
// some parsers use to pick a shape. ok is false when src does not parse.
type Parser[T any] func(src string, def T) (v T, ok bool)

// EnvName returns the environment variable that overrides block.name.
func EnvName(block, name string) string {
	return strings.ToUpper(norm.NFC.String(block)) + "_" + strings.ToUpper(norm.NFC.String(name))
}

// LoadParam resolves one parameter: the environment override first, then
// the diagram file, then def. A value that does not parse is skipped.
func LoadParam[T any](d Diagram, blockName, name string, def T, parse Parser[T]) T {
	env := EnvName(blockName, name)
	if src, ok := os.LookupEnv(env); ok {
		if v, ok := parse(src, def); ok {
			slog.Info("param from environment", "var", env, "value", src)
			return v
		}
		slog.Warn("ignoring unparsable environment param", "var", env, "value", src)
	}
	if src, ok := d.Get(blockName, name); ok {
		if v, ok := parse(src, def); ok {
			slog.Debug("param from diagram file", "block", blockName, "param", name, "value", src)
			return v
		}
		slog.Warn("ignoring unparsable diagram param", "block", blockName, "param", name, "value", src)
	}
	return def
}

// LoadIC loads a matrix initial condition and panics with a ConfigError if
// its shape differs from def.
func LoadIC(d Diagram, blockName, name string, def *signal.Matrix[float64]) *signal.Matrix[float64] {
	ic := LoadParam(d, blockName, name, def, Matrix)
	if ic.Rows() != def.Rows() || ic.Cols() != def.Cols() {
		panic(&block.ConfigError{
			Code:    block.ErrCodeShapeMismatch,
			Block:   blockName,
			Param:   name,
			Message: "initial condition is " + shape(ic) + ", required " + shape(def),
		})
	}
	return ic
}

func shape(m *signal.Matrix[float64]) string {
	return strconv.Itoa(m.Rows()) + "x" + strconv.Itoa(m.Cols())
}

// Float parses a decimal number.
func Float(src string, _ float64) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(src), 64)
	return v, err == nil
}

// Bool parses true/false, 1/0.
func Bool(src string, _ bool) (bool, bool) {
	v, err := strconv.ParseBool(strings.TrimSpace(src))
	return v, err == nil
}

// String accepts any value.
func String(src string, _ string) (string, bool) {
	return src, true
}

// Strings parses a list written as JSON ("[\"a\", \"b\"]") or bare
// comma-separated text. Brackets and double quotes are stripped.
func Strings(src string, _ []string) ([]string, bool) {
	return splitList(src), true
}

// Floats parses a list of numbers; entries that are not numbers are dropped.
func Floats(src string, _ []float64) ([]float64, bool) {
	return parseFloats(src), true
}

// Matrix parses a list of numbers into a matrix shaped after def: a single
// value fills def's shape, exactly def.Len() values are read row by row into
// def's shape, and any other count becomes a 1xN row vector.
func Matrix(src string, def *signal.Matrix[float64]) (*signal.Matrix[float64], bool) {
	vals := parseFloats(src)
	if len(vals) == 0 {
		return nil, false
	}
	if def != nil {
		switch len(vals) {
		case 1:
			m := signal.NewMatrix[float64](def.Rows(), def.Cols())
			m.Fill(vals[0])
			return m, true
		case def.Len():
			m := signal.NewMatrix[float64](def.Rows(), def.Cols())
			for i, v := range vals {
				m.Set(i/def.Cols(), i%def.Cols(), v)
			}
			return m, true
		}
	}
	return signal.FromRows([][]float64{vals}), true
}

func splitList(src string) []string {
	cleaned := strings.NewReplacer("[", "", "]", "", `"`, "").Replace(src)
	cleaned = strings.ReplaceAll(cleaned, ", ", ",")
	if cleaned == "" {
		return []string{}
	}
	return strings.Split(cleaned, ",")
}

func parseFloats(src string) []float64 {
	parts := splitList(src)
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		if v, err := strconv.ParseFloat(strings.TrimSpace(p), 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}
