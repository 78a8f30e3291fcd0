package tough

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrLabelLength   = errors.New("invalid label length")
	ErrFieldOverflow = errors.New("value does not fit its field")
)

type FieldKind uint8

const (
	StringField FieldKind = iota
	IntField
	FloatField
)

// Field is one fixed-width column of a record
type Field struct {
	Name  string
	Width int
	Kind  FieldKind
	Prec  int // digits after the point of float fields
}

// Format is the ordered list of fields of a record
type Format []Field

func (f Format) Width() (w int) {
	for _, fld := range f {
		w += fld.Width
	}
	return
}

// Encode formats values into a fixed-column line, one value per field.
// Values may be string, int, float64 or nil; nil and NaN are written blank.
// Strings are left-justified, numbers right-justified. Trailing blanks are
// removed.
func (f Format) Encode(values ...interface{}) (string, error) {
	if len(values) > len(f) {
		return "", fmt.Errorf("%d values for %d fields", len(values), len(f))
	}
	var sb strings.Builder
	sb.Grow(f.Width())
	for i, fld := range f {
		var v interface{}
		if i < len(values) {
			v = values[i]
		}
		s, err := fld.encode(v)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return strings.TrimRight(sb.String(), " "), nil
}

func (fld Field) encode(v interface{}) (string, error) {
	blank := strings.Repeat(" ", fld.Width)
	if v != nil && kindOf(v) != fld.Kind {
		return "", fmt.Errorf("%s: %T value in a field of kind %d", fld.Name, v, fld.Kind)
	}
	switch val := v.(type) {
	case nil:
		return blank, nil
	case string:
		if len(val) > fld.Width {
			return "", fmt.Errorf("%w: %s %q is wider than %d", ErrFieldOverflow, fld.Name, val, fld.Width)
		}
		return fmt.Sprintf("%-*s", fld.Width, val), nil
	case int:
		s := strconv.Itoa(val)
		if len(s) > fld.Width {
			return "", fmt.Errorf("%w: %s %d is wider than %d", ErrFieldOverflow, fld.Name, val, fld.Width)
		}
		return fmt.Sprintf("%*s", fld.Width, s), nil
	case float64:
		if math.IsNaN(val) {
			return blank, nil
		}
		s, err := formatFloat(val, fld.Width, fld.Prec)
		if err != nil {
			return "", fmt.Errorf("%s: %w", fld.Name, err)
		}
		return s, nil
	}
	return "", fmt.Errorf("%s: unsupported value type %T", fld.Name, v)
}

func kindOf(v interface{}) FieldKind {
	switch v.(type) {
	case int:
		return IntField
	case float64:
		return FloatField
	}
	return StringField
}

// formatFloat writes v in scientific notation, right-justified in width
// columns, dropping digits until it fits
func formatFloat(v float64, width, prec int) (string, error) {
	if math.IsInf(v, 0) {
		return "", fmt.Errorf("%w: %g", ErrFieldOverflow, v)
	}
	for p := prec; p >= 0; p-- {
		s := strconv.FormatFloat(v, 'e', p, 64)
		if len(s) <= width {
			return fmt.Sprintf("%*s", width, s), nil
		}
	}
	return "", fmt.Errorf("%w: %g in %d columns", ErrFieldOverflow, v, width)
}

// Split cuts a line into its fields, trimmed. Short lines are padded.
func (f Format) Split(line string) []string {
	if len(line) < f.Width() {
		line += strings.Repeat(" ", f.Width()-len(line))
	}
	out := make([]string, len(f))
	pos := 0
	for i, fld := range f {
		out[i] = strings.TrimSpace(line[pos : pos+fld.Width])
		pos += fld.Width
	}
	return out
}

// ParseFloat reads a float field. A blank field is NaN. Fortran forms such as
// "1.0D-3" and "1.0-5" are accepted.
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN(), nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	t := strings.NewReplacer("d", "e", "D", "e").Replace(s)
	if !strings.ContainsAny(t, "eE") {
		// Exponent sign without marker
		if k := strings.LastIndexAny(t, "+-"); k > 0 {
			t = t[:k] + "e" + t[k:]
		}
	}
	v, err := strconv.ParseFloat(t, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float %q", s)
	}
	return v, nil
}

// ParseInt reads an integer field, blank is 0
func ParseInt(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return v, nil
}
