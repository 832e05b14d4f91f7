package blocks

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/blockrt/internal/block"
	"github.com/roach88/blockrt/internal/signal"
)

// MaxFormatInputs is the largest number of inputs a StringFormat accepts.
const MaxFormatInputs = 8

// Formatter renders already-stringified inputs into the output text.
type Formatter func(args []string) string

// StringFormatParams configures a StringFormat.
type StringFormatParams struct {
	Arity  int
	Format Formatter
}

// NewStringFormatParams builds params from a template in which each "{}"
// is replaced by the next input, in order. "{{" and "}}" are literal braces.
// The template is NFC-normalized. The number of placeholders must equal
// arity, which must be 1 to MaxFormatInputs.
func NewStringFormatParams(template string, arity int) *StringFormatParams {
	if arity < 1 || arity > MaxFormatInputs {
		block.PanicConfig(block.ErrCodeInvalidParameter, "arity", "must be 1 to %d, got %d", MaxFormatInputs, arity)
	}
	parts, err := splitTemplate(norm.NFC.String(template))
	if err != nil {
		block.PanicConfig(block.ErrCodeInvalidParameter, "format", "%v", err)
	}
	if len(parts)-1 != arity {
		block.PanicConfig(block.ErrCodeInvalidParameter, "format", "template has %d placeholders for %d inputs", len(parts)-1, arity)
	}
	return &StringFormatParams{
		Arity: arity,
		Format: func(args []string) string {
			var sb strings.Builder
			for i, lit := range parts {
				sb.WriteString(lit)
				if i < len(args) && i < len(parts)-1 {
					sb.WriteString(args[i])
				}
			}
			return sb.String()
		},
	}
}

// splitTemplate returns the literal text around each placeholder.
func splitTemplate(t string) ([]string, error) {
	var (
		parts []string
		cur   strings.Builder
	)
	for i := 0; i < len(t); i++ {
		switch {
		case strings.HasPrefix(t[i:], "{{"):
			cur.WriteByte('{')
			i++
		case strings.HasPrefix(t[i:], "}}"):
			cur.WriteByte('}')
			i++
		case strings.HasPrefix(t[i:], "{}"):
			parts = append(parts, cur.String())
			cur.Reset()
			i++
		case t[i] == '{' || t[i] == '}':
			return nil, fmt.Errorf("unmatched %q at offset %d", t[i], i)
		default:
			cur.WriteByte(t[i])
		}
	}
	return append(parts, cur.String()), nil
}

// StringFormat renders its inputs into a byte string. Scalars and matrices
// render as JSON (matrices as arrays of rows); byte inputs are inserted as
// UTF-8 text, or as nothing when they are not valid UTF-8.
type StringFormat struct {
	args []string
	out  signal.ByteStream
}

func (b *StringFormat) Process(p *StringFormatParams, _ block.Context, in []signal.Data) []byte {
	if len(in) != p.Arity {
		panic(&block.PreconditionError{
			Code:    block.ErrCodeShapeMismatch,
			Block:   "StringFormat",
			Message: fmt.Sprintf("got %d inputs, want %d", len(in), p.Arity),
		})
	}
	b.args = b.args[:0]
	for _, d := range in {
		b.args = append(b.args, formatArg(d))
	}
	b.out.SetBuffer(append(b.out.Buffer(), p.Format(b.args)...))
	return b.out.Bytes()
}

func (b *StringFormat) Snapshot() signal.Data { return signal.BytesData(b.out.Bytes()) }

func formatArg(d signal.Data) string {
	if d.Kind == signal.DataBytes {
		if !utf8.Valid(d.Bytes) {
			return ""
		}
		return string(d.Bytes)
	}
	return d.JSON()
}
