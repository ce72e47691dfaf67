package swiftmt

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tag is a single name/value pair of block 4, e.g. {"32A", "210930USD1000,00"}.
type Tag struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// NewTag returns a tag with the given name and value.
func NewTag(name, value string) Tag {
	return Tag{Name: name, Value: value}
}

// Tags lets a single Tag be passed wherever a TagSource is accepted.
func (t Tag) Tags() []Tag { return []Tag{t} }

func (t Tag) String() string {
	return ":" + t.Name + ":" + t.Value
}

// TagSource is anything that contributes an ordered run of tags: a Tag or a Block.
type TagSource interface {
	Tags() []Tag
}

type BoundaryKind int

const (
	BoundaryBounded   BoundaryKind = iota // START..END plus optional TAIL
	BoundaryLetter                        // split by letter option of a field number
	BoundaryQualified                     // 16R/16S with a qualifier
	BoundaryTail                          // last anchor through end
	BoundaryHead                          // start through first anchor
)

var boundaryKindNames = map[BoundaryKind]string{
	BoundaryBounded:   "bounded",
	BoundaryLetter:    "letter",
	BoundaryQualified: "qualified",
	BoundaryTail:      "tail",
	BoundaryHead:      "head",
}

func (k BoundaryKind) String() string {
	if s, ok := boundaryKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("BoundaryKind(%d)", int(k))
}

func parseBoundaryKindString(s string) (BoundaryKind, error) {
	for k, name := range boundaryKindNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unsupported boundary kind %q", ErrInvalidSchema, s)
}

func (k BoundaryKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON accepts either the numeric kind or its name.
func (k *BoundaryKind) UnmarshalJSON(data []byte) error {
	var aux interface{}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch v := aux.(type) {
	case float64:
		*k = BoundaryKind(v)
		return nil
	case string:
		parsed, err := parseBoundaryKindString(v)
		if err != nil {
			return err
		}
		*k = parsed
		return nil
	}
	return fmt.Errorf("%w: boundary kind must be a string or number", ErrInvalidSchema)
}

func (k BoundaryKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

func (k *BoundaryKind) UnmarshalYAML(node *yaml.Node) error {
	if node.Tag == "!!int" {
		var n int
		if err := node.Decode(&n); err != nil {
			return err
		}
		*k = BoundaryKind(n)
		return nil
	}
	parsed, err := parseBoundaryKindString(node.Value)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Boundary describes how a sequence is cut out of its parent block.
// Only the fields relevant to Kind are used.
type Boundary struct {
	Kind BoundaryKind `json:"kind" yaml:"kind"`

	// BoundaryBounded
	Start []string `json:"start,omitempty" yaml:"start,omitempty"`
	End   []string `json:"end,omitempty" yaml:"end,omitempty"`
	Tail  []string `json:"tail,omitempty" yaml:"tail,omitempty"`

	// BoundaryLetter
	Number string `json:"number,omitempty" yaml:"number,omitempty"`
	Letter string `json:"letter,omitempty" yaml:"letter,omitempty"`

	// BoundaryQualified
	Qualifier string `json:"qualifier,omitempty" yaml:"qualifier,omitempty"`

	// BoundaryTail, BoundaryHead
	Anchor        string `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	IncludeAnchor bool   `json:"include_anchor,omitempty" yaml:"include_anchor,omitempty"`
}

func Bounded(start, end, tail []string) Boundary {
	return Boundary{Kind: BoundaryBounded, Start: start, End: end, Tail: tail}
}

func Letter(number, letter string) Boundary {
	return Boundary{Kind: BoundaryLetter, Number: number, Letter: letter}
}

func Qualified(qualifier string) Boundary {
	return Boundary{Kind: BoundaryQualified, Qualifier: qualifier}
}

func TailFrom(anchor string, include bool) Boundary {
	return Boundary{Kind: BoundaryTail, Anchor: anchor, IncludeAnchor: include}
}

func HeadUntil(anchor string, include bool) Boundary {
	return Boundary{Kind: BoundaryHead, Anchor: anchor, IncludeAnchor: include}
}

// validate checks that the fields required by Kind are set.
func (b Boundary) validate() error {
	switch b.Kind {
	case BoundaryBounded:
		if len(b.Start) == 0 || len(b.End) == 0 {
			return fmt.Errorf("%w: bounded boundary needs start and end tags", ErrInvalidSchema)
		}
	case BoundaryLetter:
		if b.Number == "" {
			return fmt.Errorf("%w: letter boundary needs a field number", ErrInvalidSchema)
		}
		if len(b.Letter) > 1 {
			return fmt.Errorf("%w: letter option %q must be a single letter", ErrInvalidSchema, b.Letter)
		}
	case BoundaryQualified:
		if b.Qualifier == "" {
			return fmt.Errorf("%w: qualified boundary needs a qualifier", ErrInvalidSchema)
		}
	case BoundaryTail, BoundaryHead:
		if b.Anchor == "" {
			return fmt.Errorf("%w: %s boundary needs an anchor tag", ErrInvalidSchema, b.Kind)
		}
	default:
		return fmt.Errorf("%w: unsupported boundary kind %d", ErrInvalidSchema, int(b.Kind))
	}
	return nil
}

// Direction of the application header: input to or output from the network.
type Direction byte

const (
	DirectionInput  Direction = 'I'
	DirectionOutput Direction = 'O'
)

func (d Direction) String() string {
	if d == 0 {
		return ""
	}
	return string(rune(d))
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	switch s := strings.ToUpper(strings.TrimSpace(string(text))); s {
	case "":
		*d = 0
	case "I", "INPUT":
		*d = DirectionInput
	case "O", "OUTPUT":
		*d = DirectionOutput
	default:
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidHeader, s)
	}
	return nil
}

const (
	TagStartOfBlock = "16R"
	TagEndOfBlock   = "16S"

	// DefaultSender and DefaultReceiver are test logical terminals used when
	// a message is built from scratch without addresses.
	DefaultSender   = "TESTBEBBAXXX"
	DefaultReceiver = "TESTUS33AXXX"

	ServiceFinancial = "01"
	ApplicationFIN   = "F"
)
