package swiftmt

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FieldSpec declares one tag of a message type.
type FieldSpec struct {
	Tag         string `json:"tag" yaml:"tag"`
	Sequence    string `json:"sequence,omitempty" yaml:"sequence,omitempty"` // "" for fields outside any sequence
	Mandatory   bool   `json:"mandatory,omitempty" yaml:"mandatory,omitempty"`
	Repeatable  bool   `json:"repeatable,omitempty" yaml:"repeatable,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// SchemaConfig is the serializable form of a Schema.
type SchemaConfig struct {
	Type      string         `json:"type" yaml:"type"`
	Name      string         `json:"name" yaml:"name"`
	Fields    []FieldSpec    `json:"fields" yaml:"fields"`
	Sequences []SequenceSpec `json:"sequences,omitempty" yaml:"sequences,omitempty"`
}

// Schema is the compiled description of one MT message type: which tags it
// declares and how its sequences are bounded. A Schema is immutable once
// compiled and safe for concurrent use.
type Schema struct {
	mt         string
	name       string
	fields     []FieldSpec
	fieldIndex map[string][]int
	sequences  []*SequenceSpec
	seqIndex   map[string]*SequenceSpec
	open       bool // accepts any well formed tag name, used for unregistered types
	validator  *CompiledValidator
}

// Generic is the schema used for message types with no registered schema.
// It declares no sequences and accepts every tag.
var Generic = &Schema{
	name:       "Generic MT message",
	fieldIndex: map[string][]int{},
	seqIndex:   map[string]*SequenceSpec{},
	open:       true,
	validator:  NewCompiledValidator(),
}

// NewSchema compiles cfg, checking that sequence names are unique, that
// every parent exists and that boundaries are complete.
func NewSchema(cfg *SchemaConfig) (*Schema, error) {
	if cfg == nil || cfg.Type == "" {
		return nil, fmt.Errorf("%w: missing message type", ErrInvalidSchema)
	}
	s := &Schema{
		mt:         normalizeType(cfg.Type),
		name:       cfg.Name,
		fields:     make([]FieldSpec, len(cfg.Fields)),
		fieldIndex: make(map[string][]int, len(cfg.Fields)),
		seqIndex:   make(map[string]*SequenceSpec, len(cfg.Sequences)),
	}
	copy(s.fields, cfg.Fields)

	for i := range cfg.Sequences {
		sp := cfg.Sequences[i]
		if sp.Name == "" {
			return nil, fmt.Errorf("%w: MT%s: sequence without a name", ErrInvalidSchema, s.mt)
		}
		if _, dup := s.seqIndex[sp.Name]; dup {
			return nil, fmt.Errorf("%w: MT%s: duplicate sequence %s", ErrInvalidSchema, s.mt, sp.Name)
		}
		if err := sp.Boundary.validate(); err != nil {
			return nil, &SequenceError{Sequence: sp.Name, Err: err}
		}
		sp.schema = s
		s.sequences = append(s.sequences, &sp)
		s.seqIndex[sp.Name] = &sp
	}
	for _, sp := range s.sequences {
		if sp.Parent == "" {
			continue
		}
		parent, ok := s.seqIndex[sp.Parent]
		if !ok {
			return nil, &SequenceError{Sequence: sp.Name, Err: fmt.Errorf("%w: parent %s", ErrUnknownSequence, sp.Parent)}
		}
		sp.parent = parent
	}
	for _, sp := range s.sequences {
		if sp.depth() < 0 {
			return nil, &SequenceError{Sequence: sp.Name, Err: fmt.Errorf("%w: parent cycle", ErrInvalidSchema)}
		}
	}

	if s.hasQualified() {
		for _, tag := range []string{TagStartOfBlock, TagEndOfBlock} {
			if !hasField(s.fields, tag) {
				s.fields = append(s.fields, FieldSpec{Tag: tag, Repeatable: true, Description: "block delimiter"})
			}
		}
	}

	for i, f := range s.fields {
		if !ValidTagName(f.Tag) {
			return nil, &FieldError{Tag: f.Tag, Err: ErrInvalidTag}
		}
		if f.Sequence != "" {
			if _, ok := s.seqIndex[f.Sequence]; !ok {
				return nil, &FieldError{Tag: f.Tag, Err: fmt.Errorf("%w: %s", ErrUnknownSequence, f.Sequence)}
			}
		}
		s.fieldIndex[f.Tag] = append(s.fieldIndex[f.Tag], i)
	}

	s.validator = compileValidator(s)
	return s, nil
}

func (s *Schema) hasQualified() bool {
	for _, sp := range s.sequences {
		if sp.Boundary.Kind == BoundaryQualified {
			return true
		}
	}
	return false
}

func hasField(fields []FieldSpec, tag string) bool {
	for _, f := range fields {
		if f.Tag == tag {
			return true
		}
	}
	return false
}

// MustSchema is NewSchema for package-level catalog declarations.
func MustSchema(cfg *SchemaConfig) *Schema {
	s, err := NewSchema(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

// LoadSchemaJSON compiles a schema from its JSON form.
func LoadSchemaJSON(data []byte) (*Schema, error) {
	var cfg SchemaConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}
	return NewSchema(&cfg)
}

// LoadSchemaYAML compiles a schema from its YAML form.
func LoadSchemaYAML(data []byte) (*Schema, error) {
	var cfg SchemaConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}
	return NewSchema(&cfg)
}

// Type returns the MT number without prefix, e.g. "537". Empty for Generic.
func (s *Schema) Type() string { return s.mt }

func (s *Schema) Name() string { return s.name }

// Fields returns the declared fields in declaration order.
func (s *Schema) Fields() []FieldSpec {
	out := make([]FieldSpec, len(s.fields))
	copy(out, s.fields)
	return out
}

// Sequences returns the declared sequences in declaration order.
func (s *Schema) Sequences() []*SequenceSpec {
	out := make([]*SequenceSpec, len(s.sequences))
	copy(out, s.sequences)
	return out
}

// Sequence looks up a sequence by name ("A", "B2a", ...).
func (s *Schema) Sequence(name string) (*SequenceSpec, bool) {
	sp, ok := s.seqIndex[name]
	return sp, ok
}

// MustSequence is Sequence that panics on an unknown name.
func (s *Schema) MustSequence(name string) *SequenceSpec {
	sp, ok := s.seqIndex[name]
	if !ok {
		panic(&SequenceError{Sequence: name, Err: ErrUnknownSequence})
	}
	return sp
}

// Declares reports whether tag is a declared field of the message type.
func (s *Schema) Declares(tag string) bool {
	if s.open {
		return ValidTagName(tag) || ValidSystemTagName(tag)
	}
	_, ok := s.fieldIndex[tag]
	return ok
}

// FieldSpecs returns every declaration of tag; one tag may be declared in
// several sequences.
func (s *Schema) FieldSpecs(tag string) []FieldSpec {
	idx := s.fieldIndex[tag]
	out := make([]FieldSpec, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.fields[i])
	}
	return out
}

// Config returns the serializable form of the schema.
func (s *Schema) Config() *SchemaConfig {
	cfg := &SchemaConfig{Type: s.mt, Name: s.name, Fields: s.Fields()}
	for _, sp := range s.sequences {
		c := *sp
		c.schema, c.parent = nil, nil
		cfg.Sequences = append(cfg.Sequences, c)
	}
	return cfg
}

// GetValidator returns the validator compiled from the schema declarations.
func (s *Schema) GetValidator() *CompiledValidator {
	return s.validator
}

func (s *Schema) String() string {
	if s.mt == "" {
		return s.name
	}
	return "MT" + s.mt
}
