package swiftmt

import (
	"encoding/json"
	"fmt"
)

type jsonMessage struct {
	Type        string            `json:"type"`
	Basic       BasicHeader       `json:"basicHeader"`
	Application ApplicationHeader `json:"applicationHeader"`
	User        []Tag             `json:"userHeader,omitempty"`
	Block4      []Tag             `json:"block4"`
	Trailer     string            `json:"trailer,omitempty"`
}

// MarshalJSON encodes headers and block 4 tags in wire order.
func (m *Message) MarshalJSON() ([]byte, error) {
	if m.block4 == nil {
		return nil, ErrUninitialized
	}
	return json.Marshal(jsonMessage{
		Type:        m.Type(),
		Basic:       m.basic,
		Application: m.app,
		User:        m.user,
		Block4:      m.block4.Tags(),
		Trailer:     m.trailer,
	})
}

// UnmarshalJSON decodes the MarshalJSON form. A message without a schema is
// bound to the registered schema of the decoded type, or to Generic.
func (m *Message) UnmarshalJSON(data []byte) error {
	var aux jsonMessage
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.basic = aux.Basic
	m.app = aux.Application
	if m.app.MessageType == "" {
		m.app.MessageType = normalizeType(aux.Type)
	}
	m.user = aux.User
	m.block4 = NewBlock(aux.Block4...)
	m.trailer = aux.Trailer
	if m.schema == nil {
		if s, err := Lookup(m.Type()); err == nil {
			m.schema = s
		} else {
			m.schema = Generic
		}
	}
	return nil
}

// FromJSON decodes a message and binds it to schema, warning on a type
// mismatch like Parse. A nil schema selects the registered one.
func FromJSON(schema *Schema, data []byte, opts ...ParseOption) (*Message, error) {
	m := &Message{schema: schema}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("failed to decode message JSON: %w", err)
	}
	sanityCheck(m, schema != nil, newParseOptions(opts).logger)
	return m, nil
}
