package swiftmt

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ComponentKind selects how a tag value is split into components.
type ComponentKind int

const (
	KindPlain              ComponentKind = iota // [value]
	KindDateCurrencyAmount                      // [YYMMDD, currency, amount], e.g. 32A
	KindCurrencyAmount                          // [currency, amount], e.g. 32B
	KindDate                                    // [YYYYMMDD], e.g. 30T
	KindParty                                   // [account, BIC], option A party fields
	KindLines                                   // one component per line, e.g. 59, 70
	KindQualified                               // [qualifier, issuer, value], ISO 15022 generic fields
)

// componentKinds maps tag names to their layout. Tags missing here are
// plain unless their value has the ISO 15022 ":QUAL/" shape.
var componentKinds = map[string]ComponentKind{
	"32A": KindDateCurrencyAmount,
	"32B": KindCurrencyAmount,
	"33B": KindCurrencyAmount,
	"34B": KindCurrencyAmount,
	"71F": KindCurrencyAmount,
	"71G": KindCurrencyAmount,
	"30":  KindDate,
	"30F": KindDate,
	"30P": KindDate,
	"30T": KindDate,
	"30V": KindDate,
	"30X": KindDate,
	"50A": KindParty,
	"51A": KindParty,
	"52A": KindParty,
	"53A": KindParty,
	"54A": KindParty,
	"55A": KindParty,
	"56A": KindParty,
	"57A": KindParty,
	"58A": KindParty,
	"59A": KindParty,
	"82A": KindParty,
	"83A": KindParty,
	"87A": KindParty,
	"50K": KindLines,
	"59":  KindLines,
	"70":  KindLines,
	"72":  KindLines,
	"77B": KindLines,
	"77D": KindLines,
}

var qualifiedValuePattern = regexp.MustCompile(`(?s)^:([A-Z0-9]{4})/([A-Z0-9]*)/(.*)$`)

// ComponentKindOf returns the layout used for a tag value.
func ComponentKindOf(name, value string) ComponentKind {
	if k, ok := componentKinds[name]; ok {
		return k
	}
	if qualifiedValuePattern.MatchString(value) {
		return KindQualified
	}
	return KindPlain
}

// Field is a typed view over one tag. It never changes the tag it came from.
type Field struct {
	name       string
	value      string
	kind       ComponentKind
	components []string
}

// NewField decomposes value according to the layout registered for name.
func NewField(name, value string) *Field {
	kind := ComponentKindOf(name, value)
	return &Field{
		name:       name,
		value:      value,
		kind:       kind,
		components: splitComponents(kind, value),
	}
}

// FieldFromTag is NewField over an existing tag.
func FieldFromTag(t Tag) *Field {
	return NewField(t.Name, t.Value)
}

func (f *Field) Name() string        { return f.name }
func (f *Field) Value() string       { return f.value }
func (f *Field) Kind() ComponentKind { return f.kind }
func (f *Field) Tag() Tag            { return Tag{Name: f.name, Value: f.value} }
func (f *Field) String() string      { return f.Tag().String() }

// Number returns the numeric part of the tag name, "32" for "32A".
func (f *Field) Number() string {
	if n := len(f.name); n > 2 && f.name[n-1] >= 'A' && f.name[n-1] <= 'Z' {
		return f.name[:n-1]
	}
	return f.name
}

// Letter returns the letter option of the tag name, "A" for "32A", or "".
func (f *Field) Letter() string {
	if n := len(f.name); n > 2 && f.name[n-1] >= 'A' && f.name[n-1] <= 'Z' {
		return f.name[n-1:]
	}
	return ""
}

// Components returns a copy of the decomposed components.
func (f *Field) Components() []string {
	out := make([]string, len(f.components))
	copy(out, f.components)
	return out
}

// Component returns component i (zero based), or "" when out of range.
func (f *Field) Component(i int) string {
	if i < 0 || i >= len(f.components) {
		return ""
	}
	return f.components[i]
}

// Lines returns the value split on line breaks.
func (f *Field) Lines() []string {
	return strings.Split(normalizeNewlines(f.value), "\n")
}

// Qualifier returns the ISO 15022 qualifier, "SETT" for ":SETT//20240102".
func (f *Field) Qualifier() string {
	if f.kind != KindQualified {
		return ""
	}
	return f.components[0]
}

// BIC returns the identifier code of an option A party field.
func (f *Field) BIC() string {
	switch f.kind {
	case KindParty:
		return f.components[1]
	case KindQualified:
		if err := ValidateBIC(f.components[2]); err == nil {
			return f.components[2]
		}
	}
	return ""
}

// Account returns the optional "/account" line of a party field, without the slash.
func (f *Field) Account() string {
	if f.kind != KindParty {
		return ""
	}
	return f.components[0]
}

// Date parses the date component of the field.
func (f *Field) Date() (time.Time, error) {
	switch f.kind {
	case KindDateCurrencyAmount:
		return parseDate("060102", f.components[0])
	case KindDate:
		return parseDate("20060102", f.components[0])
	case KindQualified:
		v := f.components[2]
		if len(v) >= 8 {
			return parseDate("20060102", v[:8])
		}
	}
	return time.Time{}, &FieldError{Tag: f.name, Err: fmt.Errorf("%w: date", ErrMissingComponent)}
}

// Currency returns the ISO 4217 code carried by the field, or "".
func (f *Field) Currency() string {
	switch f.kind {
	case KindDateCurrencyAmount:
		return f.components[1]
	case KindCurrencyAmount:
		return f.components[0]
	case KindQualified:
		_, rest := splitSign(f.components[2])
		ccy, _ := splitCurrencyAmount(rest)
		return ccy
	}
	return ""
}

// Amount parses the amount component. SWIFT amounts use a comma as the
// decimal separator; a leading "N" marks a negative ISO 15022 amount.
func (f *Field) Amount() (decimal.Decimal, error) {
	var raw string
	switch f.kind {
	case KindDateCurrencyAmount:
		raw = f.components[2]
	case KindCurrencyAmount:
		raw = f.components[1]
	case KindQualified:
		negative, rest := splitSign(f.components[2])
		_, raw = splitCurrencyAmount(rest)
		if negative {
			raw = "-" + raw
		}
	default:
		return decimal.Zero, &FieldError{Tag: f.name, Err: fmt.Errorf("%w: amount", ErrMissingComponent)}
	}
	amount, err := ParseAmount(raw)
	if err != nil {
		return decimal.Zero, &FieldError{Tag: f.name, Err: err}
	}
	return amount, nil
}

// ParseAmount converts a SWIFT amount such as "1000,50" or "1000," to a decimal.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ",")
	if s == "" || s == "-" {
		return decimal.Zero, fmt.Errorf("%w: empty amount", ErrMissingComponent)
	}
	return decimal.NewFromString(strings.Replace(s, ",", ".", 1))
}

// FormatAmount renders d with a comma decimal separator, keeping the
// trailing comma SWIFT uses for whole amounts.
func FormatAmount(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		return s + ","
	}
	return strings.Replace(s, ".", ",", 1)
}

func splitComponents(kind ComponentKind, value string) []string {
	switch kind {
	case KindDateCurrencyAmount:
		return []string{cut(value, 0, 6), cut(value, 6, 9), cut(value, 9, len(value))}
	case KindCurrencyAmount:
		return []string{cut(value, 0, 3), cut(value, 3, len(value))}
	case KindDate:
		return []string{value}
	case KindParty:
		lines := strings.Split(normalizeNewlines(value), "\n")
		if len(lines) > 1 && strings.HasPrefix(lines[0], "/") {
			return []string{strings.TrimPrefix(lines[0], "/"), lines[1]}
		}
		return []string{"", lines[0]}
	case KindLines:
		return strings.Split(normalizeNewlines(value), "\n")
	case KindQualified:
		m := qualifiedValuePattern.FindStringSubmatch(value)
		if m == nil {
			return []string{"", "", value}
		}
		return []string{m[1], m[2], m[3]}
	}
	return []string{value}
}

// splitCurrencyAmount splits "USD1000," into ("USD", "1000,"). Values with no
// leading currency code are returned as the amount.
func splitCurrencyAmount(v string) (string, string) {
	if len(v) >= 3 && isUpperAlpha(v[:3]) {
		return v[:3], v[3:]
	}
	return "", v
}

// splitSign strips the ISO 15022 "N" sign from "NUSD10," or "N10,". A
// currency that merely starts with N, such as "NOK10,", is left alone.
func splitSign(v string) (bool, string) {
	if len(v) < 2 || v[0] != 'N' {
		return false, v
	}
	if isDigit(v[1]) {
		return true, v[1:]
	}
	if len(v) >= 5 && isUpperAlpha(v[1:4]) && (isDigit(v[4]) || v[4] == ',') {
		return true, v[1:]
	}
	return false, v
}

func parseDate(layout, value string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q: %v", ErrMissingComponent, value, err)
	}
	return t, nil
}

func cut(s string, from, to int) string {
	if from >= len(s) {
		return ""
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}

func isUpperAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return s != ""
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}
