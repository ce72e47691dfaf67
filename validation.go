package swiftmt

import (
	"fmt"
	"regexp"
	"sync"
)

// ValidationRule checks one structural property of a message.
type ValidationRule interface {
	Validate(msg *Message) error
	Name() string // e.g. "mandatory"
}

// CompiledValidator holds the rules derived from a Schema plus any rules
// added later. It is safe for concurrent use.
type CompiledValidator struct {
	rules []ValidationRule
	mu    sync.RWMutex
}

// NewCompiledValidator creates a new, empty validator.
func NewCompiledValidator() *CompiledValidator {
	return &CompiledValidator{rules: make([]ValidationRule, 0)}
}

// AddRule appends a rule run after the schema rules.
func (cv *CompiledValidator) AddRule(rule ValidationRule) {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	cv.rules = append(cv.rules, rule)
}

// Rules returns the rule names in evaluation order.
func (cv *CompiledValidator) Rules() []string {
	cv.mu.RLock()
	defer cv.mu.RUnlock()
	out := make([]string, 0, len(cv.rules))
	for _, r := range cv.rules {
		out = append(out, r.Name())
	}
	return out
}

// ValidateMessage runs every rule and returns the first failure.
func (cv *CompiledValidator) ValidateMessage(msg *Message) error {
	cv.mu.RLock()
	defer cv.mu.RUnlock()

	if msg.block4 == nil {
		return ErrUninitialized
	}
	for _, rule := range cv.rules {
		if err := rule.Validate(msg); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAll runs every rule and collects all failures.
func (cv *CompiledValidator) ValidateAll(msg *Message) []error {
	cv.mu.RLock()
	defer cv.mu.RUnlock()

	if msg.block4 == nil {
		return []error{ErrUninitialized}
	}
	var errs []error
	for _, rule := range cv.rules {
		if err := rule.Validate(msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// --- Validation Rule Implementations ---

// MandatoryFieldRule requires Tag in every instance of Sequence, or in the
// message body when Sequence is empty. Absent optional sequences are not
// checked.
type MandatoryFieldRule struct {
	Tag      string
	Sequence *SequenceSpec
}

func (r *MandatoryFieldRule) Name() string { return "mandatory" }

func (r *MandatoryFieldRule) Validate(msg *Message) error {
	if r.Sequence == nil {
		if !msg.block4.ContainsTag(r.Tag) {
			return &ValidationError{Tag: r.Tag, Rule: r.Name(), Message: "mandatory field missing"}
		}
		return nil
	}
	for i, blk := range r.Sequence.Resolve(msg.block4) {
		if !blk.ContainsTag(r.Tag) {
			return &ValidationError{
				Tag:      r.Tag,
				Sequence: r.Sequence.Name,
				Rule:     r.Name(),
				Message:  fmt.Sprintf("mandatory field missing in occurrence %d", i+1),
			}
		}
	}
	return nil
}

// MandatorySequenceRule requires at least one instance of Sequence inside
// every instance of its parent.
type MandatorySequenceRule struct {
	Sequence *SequenceSpec
}

func (r *MandatorySequenceRule) Name() string { return "mandatory_sequence" }

func (r *MandatorySequenceRule) Validate(msg *Message) error {
	for _, scope := range r.Sequence.scopes(msg.block4) {
		if len(r.Sequence.within(scope)) == 0 {
			return &ValidationError{Sequence: r.Sequence.Name, Rule: r.Name(), Message: "mandatory sequence missing"}
		}
	}
	return nil
}

// SingleFieldRule rejects repeated occurrences of a non-repeatable tag
// inside one instance of Sequence (or the body).
type SingleFieldRule struct {
	Tag      string
	Sequence *SequenceSpec
}

func (r *SingleFieldRule) Name() string { return "cardinality" }

func (r *SingleFieldRule) Validate(msg *Message) error {
	scopes := []*Block{msg.block4}
	seq := ""
	if r.Sequence != nil {
		scopes = r.Sequence.Resolve(msg.block4)
		seq = r.Sequence.Name
	}
	for _, blk := range scopes {
		if n := len(blk.TagsByName(r.Tag)); n > 1 {
			return &ValidationError{Tag: r.Tag, Sequence: seq, Rule: r.Name(), Message: fmt.Sprintf("field occurs %d times", n)}
		}
	}
	return nil
}

// DeclaredTagsRule rejects tags the schema does not declare.
type DeclaredTagsRule struct {
	Schema *Schema
}

func (r *DeclaredTagsRule) Name() string { return "declared" }

func (r *DeclaredTagsRule) Validate(msg *Message) error {
	for _, t := range msg.block4.raw() {
		if !r.Schema.Declares(t.Name) {
			return &ValidationError{Tag: t.Name, Rule: r.Name(), Message: "field not declared for MT" + r.Schema.mt}
		}
	}
	return nil
}

// PatternRule matches every occurrence of Tag against Pattern.
type PatternRule struct {
	Tag         string
	Pattern     string
	Description string // User-friendly error message
	regex       *regexp.Regexp
}

// NewPatternRule compiles pattern up front so the rule can be shared
// between goroutines.
func NewPatternRule(tag, pattern, description string) (*PatternRule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern for %s: %w", tag, err)
	}
	return &PatternRule{Tag: tag, Pattern: pattern, Description: description, regex: re}, nil
}

func (r *PatternRule) Name() string { return "pattern" }

func (r *PatternRule) Validate(msg *Message) error {
	if r.regex == nil {
		r.regex = regexp.MustCompile(r.Pattern)
	}
	for _, t := range msg.block4.TagsByName(r.Tag) {
		if !r.regex.MatchString(t.Value) {
			text := r.Description
			if text == "" {
				text = "does not match pattern " + r.Pattern
			}
			return &ValidationError{Tag: r.Tag, Rule: r.Name(), Message: text}
		}
	}
	return nil
}

// CustomRule allows defining an arbitrary validation function.
type CustomRule struct {
	ValidateFunc func(*Message) error
	RuleName     string
}

func (r *CustomRule) Name() string { return r.RuleName }

func (r *CustomRule) Validate(msg *Message) error {
	return r.ValidateFunc(msg)
}

// RequireOneOf returns a rule that passes when at least one of tags is in
// the message body.
func RequireOneOf(name string, tags ...string) ValidationRule {
	return &CustomRule{
		RuleName: name,
		ValidateFunc: func(msg *Message) error {
			if indexOfAny(msg.block4.raw(), tags, 0) >= 0 {
				return nil
			}
			return &ValidationError{Tag: tags[0], Rule: name, Message: fmt.Sprintf("one of %v is required", tags)}
		},
	}
}

// compileValidator derives the presence and cardinality rules declared by
// the schema tables.
func compileValidator(s *Schema) *CompiledValidator {
	validator := NewCompiledValidator()
	if !s.open {
		validator.rules = append(validator.rules, &DeclaredTagsRule{Schema: s})
	}

	for _, sp := range s.sequences {
		if sp.Mandatory {
			validator.rules = append(validator.rules, &MandatorySequenceRule{Sequence: sp})
		}
	}
	for _, f := range s.fields {
		seq := s.seqIndex[f.Sequence]
		if f.Mandatory {
			validator.rules = append(validator.rules, &MandatoryFieldRule{Tag: f.Tag, Sequence: seq})
		}
		// An instance includes its nested sequences, so tags can only be
		// counted in leaf scopes.
		leaf := (seq == nil && len(s.sequences) == 0) || (seq != nil && len(seq.Children()) == 0)
		if !f.Repeatable && leaf {
			validator.rules = append(validator.rules, &SingleFieldRule{Tag: f.Tag, Sequence: seq})
		}
	}
	return validator
}
