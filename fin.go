package swiftmt

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var tagLinePattern = regexp.MustCompile(`^:([0-9]{2}[A-Za-z]?):(.*)$`)

// ParseFIN decodes FIN text and binds it to the schema registered for its
// message type, or to Generic when the type has no schema. Malformed text
// fails with a *ParseError.
func ParseFIN(text string, opts ...ParseOption) (*Message, error) {
	return parseWith(nil, text, newParseOptions(opts))
}

// Parse decodes FIN text leniently. Text that cannot be decoded yields an
// empty message for schema; a type mismatch or a service message is kept
// as parsed. Each case is logged as a warning and never returned as an
// error. A nil schema selects the registered schema for the parsed type.
func Parse(schema *Schema, text string, opts ...ParseOption) *Message {
	po := newParseOptions(opts)
	m, err := parseWith(schema, text, po)
	if err != nil {
		po.logger.Warn("unparseable FIN text, returning empty message",
			zap.Stringer("schema", schemaOrGeneric(schema)), zap.Error(err))
		return NewMessage(schema)
	}
	return m
}

// ParseReader reads all of r and parses it like Parse. Only read errors
// are returned.
func ParseReader(schema *Schema, r io.Reader, opts ...ParseOption) (*Message, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}
	return Parse(schema, string(data), opts...), nil
}

// ParseFile reads path and parses it like Parse.
func ParseFile(schema *Schema, path string, opts ...ParseOption) (*Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read message file: %w", err)
	}
	return Parse(schema, string(data), opts...), nil
}

// FromMessage binds a copy of src to schema, with the same warnings as Parse.
func FromMessage(schema *Schema, src *Message, opts ...ParseOption) *Message {
	if src == nil {
		return NewMessage(schema)
	}
	m := src.Clone()
	if m.block4 == nil {
		m.block4 = &Block{}
	}
	m.schema = schemaOrGeneric(schema)
	sanityCheck(m, schema != nil, newParseOptions(opts).logger)
	return m
}

func parseWith(schema *Schema, text string, po *parseOptions) (*Message, error) {
	m, err := decodeFIN(text)
	if err != nil {
		return nil, err
	}
	if schema == nil {
		if s, lerr := Lookup(m.app.MessageType); lerr == nil {
			m.schema = s
		} else {
			m.schema = Generic
		}
	} else {
		m.schema = schema
	}
	sanityCheck(m, schema != nil, po.logger)
	return m, nil
}

// sanityCheck logs parsed content that does not fit the bound schema.
func sanityCheck(m *Message, explicit bool, log *zap.Logger) {
	err := checkBinding(m, explicit)
	switch {
	case errors.Is(err, ErrServiceMessage):
		log.Warn("parsed a service message",
			zap.String("service", m.basic.Service), zap.Stringer("schema", m.Schema()), zap.Error(err))
	case errors.Is(err, ErrTypeMismatch):
		log.Warn("message type mismatch",
			zap.String("expected", m.Schema().mt), zap.String("actual", m.app.MessageType), zap.Error(err))
	}
}

// checkBinding reports a service message, or a message whose block 2 type
// differs from an explicitly chosen schema.
func checkBinding(m *Message, explicit bool) error {
	if m.IsServiceMessage() {
		return fmt.Errorf("%w: service identifier %s", ErrServiceMessage, m.basic.Service)
	}
	if explicit && m.Schema().mt != "" && m.app.MessageType != m.Schema().mt {
		return fmt.Errorf("%w: read MT%s as MT%s", ErrTypeMismatch, m.app.MessageType, m.Schema().mt)
	}
	return nil
}

func schemaOrGeneric(s *Schema) *Schema {
	if s == nil {
		return Generic
	}
	return s
}

// decodeFIN splits FIN text into its blocks. Blocks 1 and 4 are required.
func decodeFIN(text string) (*Message, error) {
	text = normalizeNewlines(text)
	blocks, err := splitBlocks(text)
	if err != nil {
		return nil, err
	}

	m := &Message{}
	b1, ok := blocks["1"]
	if !ok {
		return nil, &ParseError{Block: 1, Err: fmt.Errorf("%w: missing basic header", ErrInvalidBlock)}
	}
	if m.basic, err = ParseBasicHeader(b1); err != nil {
		return nil, err
	}
	if b2, ok := blocks["2"]; ok {
		if m.app, err = ParseApplicationHeader(b2); err != nil {
			return nil, err
		}
	}
	if b3, ok := blocks["3"]; ok {
		if m.user, err = parseUserHeader(b3); err != nil {
			return nil, err
		}
	}
	b4, ok := blocks["4"]
	if !ok {
		return nil, &ParseError{Block: 4, Err: fmt.Errorf("%w: missing text block", ErrInvalidBlock)}
	}
	if m.block4, err = parseBlock4(b4); err != nil {
		return nil, err
	}
	m.trailer = blocks["5"]
	return m, nil
}

// splitBlocks returns the content of each top-level {id:...} block. Block 4
// in text form ends at "\n-}"; every other block is brace balanced.
func splitBlocks(text string) (map[string]string, error) {
	blocks := make(map[string]string, 5)
	pos := 0
	for {
		for pos < len(text) && isSpace(text[pos]) {
			pos++
		}
		if pos >= len(text) {
			break
		}
		if text[pos] != '{' {
			return nil, &ParseError{Offset: pos, Err: fmt.Errorf("%w: expected '{', got %q", ErrInvalidBlock, text[pos])}
		}
		colon := strings.IndexByte(text[pos:], ':')
		if colon < 0 {
			return nil, &ParseError{Offset: pos, Err: fmt.Errorf("%w: block without identifier", ErrInvalidBlock)}
		}
		id := text[pos+1 : pos+colon]
		start := pos + colon + 1

		if id == "4" && !strings.HasPrefix(text[start:], "{") {
			end := strings.Index(text[start:], "\n-}")
			if end < 0 {
				if strings.HasPrefix(text[start:], "-}") {
					blocks[id] = ""
					pos = start + 2
					continue
				}
				return nil, &ParseError{Block: 4, Offset: start, Err: fmt.Errorf("%w: unterminated text block", ErrInvalidBlock)}
			}
			blocks[id] = text[start : start+end]
			pos = start + end + 3
			continue
		}

		end, depth := -1, 0
		for i := pos; i < len(text); i++ {
			switch text[i] {
			case '{':
				depth++
			case '}':
				depth--
			}
			if depth == 0 {
				end = i
				break
			}
		}
		if end < 0 {
			return nil, &ParseError{Offset: pos, Err: fmt.Errorf("%w: unterminated block %s", ErrInvalidBlock, id)}
		}
		blocks[id] = text[start:end]
		pos = end + 1
	}
	return blocks, nil
}

// parseBlock4 reads ":NN:value" lines. Lines that do not open a tag are
// continuation lines of the previous value. Service messages carry block 4
// as "{177:...}{451:0}" sub-blocks instead.
func parseBlock4(content string) (*Block, error) {
	blk := &Block{}
	if trimmed := strings.TrimSpace(content); strings.HasPrefix(trimmed, "{") {
		tags, err := parseUserHeader(trimmed)
		if err != nil {
			return nil, &ParseError{Block: 4, Err: err}
		}
		blk.tags = tags
		return blk, nil
	}

	offset := 0
	for _, line := range strings.Split(content, "\n") {
		if m := tagLinePattern.FindStringSubmatch(line); m != nil {
			blk.AppendTag(strings.ToUpper(m[1]), m[2])
		} else if n := len(blk.tags); n > 0 {
			blk.tags[n-1].Value += "\n" + line
		} else if strings.TrimSpace(line) != "" {
			return nil, &ParseError{Block: 4, Offset: offset, Err: fmt.Errorf("%w: text before first tag", ErrInvalidTag)}
		}
		offset += len(line) + 1
	}
	return blk, nil
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\n' || c == '\r' || c == '\t'
}

// FIN renders the message as FIN text with CRLF line breaks in block 4.
// Service messages keep their block 4 in sub-block form.
func (m *Message) FIN() (string, error) {
	if m.block4 == nil {
		return "", ErrUninitialized
	}
	buf := getBuffer()
	defer putBuffer(buf)

	buf.WriteString("{1:")
	buf.WriteString(m.basic.String())
	buf.WriteString("}")
	if m.app.Direction != 0 {
		app := m.app
		if app.MessageType == "" {
			app.MessageType = m.Schema().mt
		}
		buf.WriteString("{2:")
		buf.WriteString(app.String())
		buf.WriteString("}")
	}
	if len(m.user) > 0 {
		buf.WriteString("{3:")
		buf.WriteString(formatUserHeader(m.user))
		buf.WriteString("}")
	}
	if tags := m.block4.raw(); subBlockForm(m, tags) {
		buf.WriteString("{4:")
		buf.WriteString(formatUserHeader(tags))
		buf.WriteString("}")
	} else {
		buf.WriteString("{4:\r\n")
		for _, t := range tags {
			buf.WriteString(":" + t.Name + ":")
			buf.WriteString(strings.ReplaceAll(normalizeNewlines(t.Value), "\n", "\r\n"))
			buf.WriteString("\r\n")
		}
		buf.WriteString("-}")
	}
	if m.trailer != "" {
		buf.WriteString("{5:")
		buf.WriteString(m.trailer)
		buf.WriteString("}")
	}
	return buf.String(), nil
}

// subBlockForm reports whether block 4 must be written as "{177:...}"
// sub-blocks: a non-empty service message, or tags that a ":NN:" line
// cannot carry.
func subBlockForm(m *Message, tags []Tag) bool {
	if len(tags) == 0 {
		return false
	}
	if m.IsServiceMessage() {
		return true
	}
	for _, t := range tags {
		if !ValidTagName(t.Name) {
			return true
		}
	}
	return false
}

// WriteTo writes the FIN text of the message to w.
func (m *Message) WriteTo(w io.Writer) (int64, error) {
	s, err := m.FIN()
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, s)
	return int64(n), err
}
