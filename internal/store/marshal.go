package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/roach88/blockrt/internal/signal"
)

// marshalJSON encodes v with HTML escaping disabled and no trailing newline,
// so stored text is stable across Go versions.
func marshalJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

// payload is the stored form of signal.Data. Non-finite values are kept as
// the strings "NaN", "inf" and "-inf", which plain JSON cannot hold.
type payload struct {
	Kind   signal.DataKind `json:"kind"`
	Rows   int             `json:"rows,omitempty"`
	Cols   int             `json:"cols,omitempty"`
	Values []jsonFloat     `json:"values,omitempty"`
	Bytes  []byte          `json:"bytes,omitempty"`
}

type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte(strconv.Quote(signal.FormatFloat(v))), nil
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

func (f *jsonFloat) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		switch s {
		case "NaN":
			*f = jsonFloat(math.NaN())
		case "inf":
			*f = jsonFloat(math.Inf(1))
		case "-inf":
			*f = jsonFloat(math.Inf(-1))
		default:
			return fmt.Errorf("invalid number %q", s)
		}
		return nil
	}
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return err
	}
	*f = jsonFloat(v)
	return nil
}

// marshalPayload converts a sample value to JSON TEXT for storage.
func marshalPayload(d signal.Data) (string, error) {
	p := payload{Kind: d.Kind, Rows: d.Rows, Cols: d.Cols, Bytes: d.Bytes}
	if len(d.Values) > 0 {
		p.Values = make([]jsonFloat, len(d.Values))
		for i, v := range d.Values {
			p.Values[i] = jsonFloat(v)
		}
	}
	s, err := marshalJSON(p)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	return s, nil
}

func unmarshalPayload(data string) (signal.Data, error) {
	var p payload
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return signal.Data{}, fmt.Errorf("unmarshal payload: %w", err)
	}
	d := signal.Data{Kind: p.Kind, Rows: p.Rows, Cols: p.Cols, Bytes: p.Bytes}
	if len(p.Values) > 0 {
		d.Values = make([]float64, len(p.Values))
		for i, v := range p.Values {
			d.Values[i] = float64(v)
		}
	}
	return d, nil
}

// marshalParams converts diagram parameters to JSON TEXT. Map keys are
// sorted by encoding/json.
func marshalParams(p map[string]map[string]string) (string, error) {
	if len(p) == 0 {
		return "{}", nil
	}
	s, err := marshalJSON(p)
	if err != nil {
		return "", fmt.Errorf("marshal params: %w", err)
	}
	return s, nil
}

func unmarshalParams(data string) (map[string]map[string]string, error) {
	p := map[string]map[string]string{}
	if data == "" || data == "{}" {
		return p, nil
	}
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("unmarshal params: %w", err)
	}
	return p, nil
}
