package swiftmt

import "fmt"

// Builder assembles a message tag by tag. The first error is kept and
// reported by Build; later calls are still recorded.
type Builder struct {
	msg    *Message
	errors []error
}

func NewBuilder(schema *Schema, opts ...MessageOption) *Builder {
	return &Builder{
		msg:    NewMessage(schema, opts...),
		errors: make([]error, 0, 4),
	}
}

func (b *Builder) Sender(address string) *Builder {
	if err := b.msg.SetSender(address); err != nil {
		b.errors = append(b.errors, err)
	}
	return b
}

func (b *Builder) Receiver(address string) *Builder {
	if err := b.msg.SetReceiver(address); err != nil {
		b.errors = append(b.errors, err)
	}
	return b
}

func (b *Builder) MUR(ref string) *Builder {
	b.msg.SetUserHeaderTag("108", ref)
	return b
}

// UETR sets block 3 field 121. An empty uetr generates a new one.
func (b *Builder) UETR(uetr string) *Builder {
	v, err := NormalizeUETR(uetr)
	if err != nil {
		b.errors = append(b.errors, err)
		return b
	}
	b.msg.SetUserHeaderTag("121", v)
	return b
}

// Tag appends one tag. The name must be well formed and declared by the schema.
func (b *Builder) Tag(name, value string) *Builder {
	if !ValidTagName(name) {
		b.errors = append(b.errors, &FieldError{Tag: name, Err: ErrInvalidTag})
		return b
	}
	if !b.msg.Schema().Declares(name) {
		b.errors = append(b.errors, &FieldError{Tag: name, Err: ErrUnknownField})
		return b
	}
	b.msg.block4.AppendTag(name, value)
	return b
}

// Field appends the tag behind f.
func (b *Builder) Field(f *Field) *Builder {
	return b.Tag(f.Name(), f.Value())
}

// Add appends raw tags or pre-built sequence blocks without checks.
func (b *Builder) Add(sources ...TagSource) *Builder {
	b.msg.block4.Append(sources...)
	return b
}

// Sequence appends a new instance of the named sequence wrapping content.
func (b *Builder) Sequence(name string, content ...TagSource) *Builder {
	sp, ok := b.msg.Schema().Sequence(name)
	if !ok {
		b.errors = append(b.errors, &SequenceError{Sequence: name, Err: ErrUnknownSequence})
		return b
	}
	b.msg.block4.Append(sp.NewInstance(content...))
	return b
}

func (b *Builder) Build() (*Message, error) {
	if len(b.errors) > 0 {
		return nil, fmt.Errorf("build MT%s: %w", b.msg.Type(), b.errors[0])
	}
	msg := b.msg
	b.msg = nil // Transfer ownership
	return msg, nil
}

func (b *Builder) MustBuild() *Message {
	msg, err := b.Build()
	if err != nil {
		panic(err)
	}
	return msg
}
