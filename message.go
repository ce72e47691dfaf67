package swiftmt

import (
	"go.uber.org/zap/zapcore"
)

// Message is one MT message: headers plus the block 4 tag list, bound to the
// Schema of its type. Fields and sequences are recomputed from block 4 on
// every call.
//
// A Message has no internal locking. Concurrent mutation and reads of the
// same message must be serialized by the caller.
type Message struct {
	schema  *Schema
	basic   BasicHeader
	app     ApplicationHeader
	user    []Tag
	block4  *Block
	trailer string // block 5, kept verbatim
}

// NewMessage returns an empty input message addressed from DefaultSender to
// DefaultReceiver. A nil schema selects Generic.
func NewMessage(schema *Schema, opts ...MessageOption) *Message {
	if schema == nil {
		schema = Generic
	}
	m := &Message{
		schema: schema,
		basic: BasicHeader{
			Application:     ApplicationFIN,
			Service:         ServiceFinancial,
			LogicalTerminal: DefaultSender,
		},
		app: ApplicationHeader{
			Direction:   DirectionInput,
			MessageType: schema.mt,
			Receiver:    DefaultReceiver,
			Priority:    "N",
		},
		block4: &Block{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Schema returns the schema the message is read through, Generic when none
// is set.
func (m *Message) Schema() *Schema {
	if m.schema == nil {
		return Generic
	}
	return m.schema
}

// Type returns the MT number from block 2, falling back to the schema type.
func (m *Message) Type() string {
	if m.app.MessageType != "" {
		return m.app.MessageType
	}
	return m.Schema().mt
}

func (m *Message) BasicHeader() BasicHeader             { return m.basic }
func (m *Message) ApplicationHeader() ApplicationHeader { return m.app }
func (m *Message) Trailer() string                      { return m.trailer }
func (m *Message) SetTrailer(v string)                  { m.trailer = v }

// IsServiceMessage reports whether block 1 carries a service identifier
// other than "01".
func (m *Message) IsServiceMessage() bool { return m.basic.IsServiceMessage() }

// UserHeader returns a copy of the block 3 fields.
func (m *Message) UserHeader() []Tag {
	out := make([]Tag, len(m.user))
	copy(out, m.user)
	return out
}

// UserHeaderTag returns the value of block 3 field name, or "".
func (m *Message) UserHeaderTag(name string) string {
	for _, t := range m.user {
		if t.Name == name {
			return t.Value
		}
	}
	return ""
}

// SetUserHeaderTag replaces or appends block 3 field name.
func (m *Message) SetUserHeaderTag(name, value string) {
	for i := range m.user {
		if m.user[i].Name == name {
			m.user[i].Value = value
			return
		}
	}
	m.user = append(m.user, Tag{Name: name, Value: value})
}

// MUR returns the message user reference (block 3 field 108).
func (m *Message) MUR() string { return m.UserHeaderTag("108") }

// UETR returns the unique end-to-end transaction reference (block 3 field 121).
func (m *Message) UETR() string { return m.UserHeaderTag("121") }

// Sender returns the logical terminal of the sending party. For output
// messages it is taken from the MIR.
func (m *Message) Sender() string {
	if m.app.Direction == DirectionOutput {
		return m.app.MIRSender()
	}
	return m.basic.LogicalTerminal
}

// Receiver returns the logical terminal of the receiving party.
func (m *Message) Receiver() string {
	if m.app.Direction == DirectionOutput {
		return m.basic.LogicalTerminal
	}
	return m.app.Receiver
}

// SetSender sets the sender from an 8 or 11 character BIC or a 12 character
// logical terminal.
func (m *Message) SetSender(address string) error {
	lt, err := LogicalTerminal(address)
	if err != nil {
		return err
	}
	m.setSenderLT(lt)
	return nil
}

// SetReceiver sets the receiver like SetSender.
func (m *Message) SetReceiver(address string) error {
	lt, err := LogicalTerminal(address)
	if err != nil {
		return err
	}
	m.setReceiverLT(lt)
	return nil
}

func (m *Message) setSenderLT(lt string) {
	if m.app.Direction == DirectionOutput && len(m.app.MIR) == MIRLength {
		m.app.MIR = m.app.MIR[:6] + lt + m.app.MIR[18:]
		return
	}
	m.basic.LogicalTerminal = lt
}

func (m *Message) setReceiverLT(lt string) {
	if m.app.Direction == DirectionOutput {
		m.basic.LogicalTerminal = lt
		return
	}
	m.app.Receiver = lt
}

// Block4 returns the live block 4 tag list. Appending to it changes the
// message. It fails with ErrUninitialized on a message that was never
// built or parsed.
func (m *Message) Block4() (*Block, error) {
	if m.block4 == nil {
		return nil, ErrUninitialized
	}
	return m.block4, nil
}

// Append adds tags or whole sequences at the end of block 4.
func (m *Message) Append(sources ...TagSource) error {
	if m.block4 == nil {
		return ErrUninitialized
	}
	m.block4.Append(sources...)
	return nil
}

// IsEmpty reports whether block 4 has no tags. An uninitialized message is empty.
func (m *Message) IsEmpty() bool { return m.block4.IsEmpty() }

// Field returns the first occurrence of tag in block 4, or nil when the
// message has none. Tags the schema does not declare fail with
// ErrUnknownField.
func (m *Message) Field(tag string) (*Field, error) {
	if err := m.checkField(tag); err != nil {
		return nil, err
	}
	return FieldIn(m.block4, tag), nil
}

// Fields returns every occurrence of tag in block 4 in wire order. The
// slice is empty, never nil, when the tag is absent.
func (m *Message) Fields(tag string) ([]*Field, error) {
	if err := m.checkField(tag); err != nil {
		return nil, err
	}
	return FieldsIn(m.block4, tag), nil
}

// FieldIn returns the first occurrence of tag inside blk, or nil.
func FieldIn(blk *Block, tag string) *Field {
	t, ok := blk.TagByName(tag)
	if !ok {
		return nil
	}
	return FieldFromTag(t)
}

// FieldsIn returns every occurrence of tag inside blk. Never nil.
func FieldsIn(blk *Block, tag string) []*Field {
	tags := blk.TagsByName(tag)
	out := make([]*Field, 0, len(tags))
	for _, t := range tags {
		out = append(out, FieldFromTag(t))
	}
	return out
}

// Sequence returns the first instance of the named sequence. Absence is
// reported as an empty block, or as nil for sequences declared Nullable.
func (m *Message) Sequence(name string) (*Block, error) {
	sp, err := m.lookupSequence(name)
	if err != nil {
		return nil, err
	}
	return sp.ResolveFirst(m.block4), nil
}

// SequenceList returns every instance of the named sequence in wire order.
// The slice is empty, never nil, when there is none.
func (m *Message) SequenceList(name string) ([]*Block, error) {
	sp, err := m.lookupSequence(name)
	if err != nil {
		return nil, err
	}
	return sp.Resolve(m.block4), nil
}

func (m *Message) checkField(tag string) error {
	if m.block4 == nil {
		return ErrUninitialized
	}
	if !m.Schema().Declares(tag) {
		return &FieldError{Tag: tag, Err: ErrUnknownField}
	}
	return nil
}

func (m *Message) lookupSequence(name string) (*SequenceSpec, error) {
	if m.block4 == nil {
		return nil, ErrUninitialized
	}
	sp, ok := m.Schema().Sequence(name)
	if !ok {
		return nil, &SequenceError{Sequence: name, Err: ErrUnknownSequence}
	}
	return sp, nil
}

// Validate runs the schema's compiled validator against the message and
// returns the first failure.
func (m *Message) Validate() error {
	v := m.Schema().GetValidator()
	if v == nil {
		return nil // No validator configured
	}
	return v.ValidateMessage(m)
}

// Clone creates a deep copy of the message. The schema is shared.
func (m *Message) Clone() *Message {
	clone := &Message{
		schema:  m.schema,
		basic:   m.basic,
		app:     m.app,
		user:    m.UserHeader(),
		block4:  m.block4.Clone(),
		trailer: m.trailer,
	}
	return clone
}

// String renders the message as FIN text, or "" when it is uninitialized.
func (m *Message) String() string {
	s, _ := m.FIN()
	return s
}

// MarshalLogObject implements zapcore.ObjectMarshaler for structured logging.
func (m *Message) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("type", m.Type())
	enc.AddString("sender", m.Sender())
	enc.AddString("receiver", m.Receiver())
	if mur := m.MUR(); mur != "" {
		enc.AddString("mur", mur)
	}
	if m.block4 == nil {
		enc.AddBool("uninitialized", true)
		return nil
	}
	enc.AddInt("tags", m.block4.Len())
	return enc.AddArray("block4", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, t := range m.block4.raw() {
			arr.AppendString(t.String())
		}
		return nil
	}))
}
