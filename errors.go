package swiftmt

import "fmt"

var (
	ErrUninitialized    = fmt.Errorf("message not initialized")
	ErrUnknownField     = fmt.Errorf("unknown field")
	ErrUnknownSequence  = fmt.Errorf("unknown sequence")
	ErrUnknownType      = fmt.Errorf("unknown message type")
	ErrTypeMismatch     = fmt.Errorf("message type mismatch")
	ErrServiceMessage   = fmt.Errorf("service message")
	ErrInvalidTag       = fmt.Errorf("invalid tag")
	ErrInvalidBlock     = fmt.Errorf("invalid block")
	ErrInvalidHeader    = fmt.Errorf("invalid header")
	ErrInvalidAddress   = fmt.Errorf("invalid logical terminal address")
	ErrInvalidSchema    = fmt.Errorf("invalid schema")
	ErrDuplicateType    = fmt.Errorf("message type already registered")
	ErrMissingComponent = fmt.Errorf("component not found")
	ErrValidationFailed = fmt.Errorf("validation failed")
)

// FieldError reports a problem with a field, identified by tag name.
type FieldError struct {
	Tag string
	Err error
}

func (fe *FieldError) Error() string {
	return fmt.Sprintf("field %s: %v", fe.Tag, fe.Err)
}

func (fe *FieldError) Unwrap() error { return fe.Err }

// SequenceError reports a problem with a named sequence.
type SequenceError struct {
	Sequence string
	Err      error
}

func (se *SequenceError) Error() string {
	return fmt.Sprintf("sequence %s: %v", se.Sequence, se.Err)
}

func (se *SequenceError) Unwrap() error { return se.Err }

type ValidationError struct {
	Tag      string
	Sequence string
	Rule     string
	Message  string
}

func (ve *ValidationError) Error() string {
	where := "message"
	if ve.Sequence != "" {
		where = "sequence " + ve.Sequence
	}
	if ve.Tag != "" {
		return fmt.Sprintf("validation failed for field %s in %s (%s): %s", ve.Tag, where, ve.Rule, ve.Message)
	}
	return fmt.Sprintf("validation failed for %s (%s): %s", where, ve.Rule, ve.Message)
}

func (ve *ValidationError) Unwrap() error { return ErrValidationFailed }

// ParseError locates a decoding failure inside the FIN text.
type ParseError struct {
	Block  int
	Offset int
	Err    error
}

func (pe *ParseError) Error() string {
	if pe.Block > 0 {
		return fmt.Sprintf("block %d at offset %d: %v", pe.Block, pe.Offset, pe.Err)
	}
	return fmt.Sprintf("offset %d: %v", pe.Offset, pe.Err)
}

func (pe *ParseError) Unwrap() error { return pe.Err }
