package swiftmt

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// BasicHeader is block 1: application, service and the logical terminal of
// the local party.
type BasicHeader struct {
	Application     string `json:"application" yaml:"application"`
	Service         string `json:"service" yaml:"service"`
	LogicalTerminal string `json:"logicalTerminal" yaml:"logicalTerminal"`
	Session         string `json:"session" yaml:"session"`
	Sequence        string `json:"sequence" yaml:"sequence"`
}

// String renders the block 1 value, e.g. "F01TESTBEBBAXXX0000000000".
func (h BasicHeader) String() string {
	app := orDefault(h.Application, ApplicationFIN)
	svc := orDefault(h.Service, ServiceFinancial)
	return app + svc + h.LogicalTerminal + pad(h.Session, 4) + pad(h.Sequence, 6)
}

// IsServiceMessage reports whether the header carries a system or service
// message (ACK, NAK, login...) instead of a user-to-user financial message.
func (h BasicHeader) IsServiceMessage() bool {
	return h.Service != "" && h.Service != ServiceFinancial
}

// ParseBasicHeader decodes a block 1 value.
func ParseBasicHeader(v string) (BasicHeader, error) {
	v = strings.TrimSpace(v)
	if len(v) < 3+12 {
		return BasicHeader{}, &ParseError{Block: 1, Err: fmt.Errorf("%w: block 1 too short (%d)", ErrInvalidHeader, len(v))}
	}
	h := BasicHeader{
		Application:     v[0:1],
		Service:         v[1:3],
		LogicalTerminal: v[3:15],
	}
	h.Session = cut(v, 15, 19)
	h.Sequence = cut(v, 19, 25)
	return h, nil
}

// ApplicationHeader is block 2. Input headers carry the receiver; output
// headers carry the message input reference (MIR) whose logical terminal is
// the original sender.
type ApplicationHeader struct {
	Direction   Direction `json:"direction" yaml:"direction"`
	MessageType string    `json:"messageType" yaml:"messageType"`
	Receiver    string    `json:"receiver,omitempty" yaml:"receiver,omitempty"`
	Priority    string    `json:"priority,omitempty" yaml:"priority,omitempty"`
	Monitoring  string    `json:"monitoring,omitempty" yaml:"monitoring,omitempty"`

	InputTime  string `json:"inputTime,omitempty" yaml:"inputTime,omitempty"`
	MIR        string `json:"mir,omitempty" yaml:"mir,omitempty"`
	OutputDate string `json:"outputDate,omitempty" yaml:"outputDate,omitempty"`
	OutputTime string `json:"outputTime,omitempty" yaml:"outputTime,omitempty"`
}

// MIRLength is the size of a message input reference: date, logical
// terminal, session and sequence number.
const MIRLength = 6 + 12 + 4 + 6

// MIRSender returns the logical terminal embedded in the MIR, or "".
func (h ApplicationHeader) MIRSender() string {
	return cut(h.MIR, 6, 18)
}

func (h ApplicationHeader) String() string {
	if h.Direction == DirectionOutput {
		return "O" + h.MessageType + pad(h.InputTime, 4) + h.MIR + pad(h.OutputDate, 6) + pad(h.OutputTime, 4) + h.Priority
	}
	return "I" + h.MessageType + h.Receiver + h.Priority + h.Monitoring
}

// ParseApplicationHeader decodes a block 2 value in input or output form.
func ParseApplicationHeader(v string) (ApplicationHeader, error) {
	v = strings.TrimSpace(v)
	if len(v) < 4 {
		return ApplicationHeader{}, &ParseError{Block: 2, Err: fmt.Errorf("%w: block 2 too short (%d)", ErrInvalidHeader, len(v))}
	}
	h := ApplicationHeader{Direction: Direction(v[0]), MessageType: v[1:4]}
	switch h.Direction {
	case DirectionInput:
		if len(v) < 16 {
			return ApplicationHeader{}, &ParseError{Block: 2, Offset: 4, Err: fmt.Errorf("%w: missing receiver", ErrInvalidHeader)}
		}
		h.Receiver = v[4:16]
		h.Priority = cut(v, 16, 17)
		h.Monitoring = cut(v, 17, len(v))
	case DirectionOutput:
		if len(v) < 4+4+MIRLength+6+4 {
			return ApplicationHeader{}, &ParseError{Block: 2, Offset: 4, Err: fmt.Errorf("%w: output header too short (%d)", ErrInvalidHeader, len(v))}
		}
		h.InputTime = v[4:8]
		h.MIR = v[8 : 8+MIRLength]
		rest := v[8+MIRLength:]
		h.OutputDate = rest[0:6]
		h.OutputTime = rest[6:10]
		h.Priority = cut(rest, 10, len(rest))
	default:
		return ApplicationHeader{}, &ParseError{Block: 2, Err: fmt.Errorf("%w: unknown direction %q", ErrInvalidHeader, v[0])}
	}
	return h, nil
}

// parseUserHeader decodes block 3 sub-blocks such as "{108:REF}{121:uuid}".
func parseUserHeader(v string) ([]Tag, error) {
	var out []Tag
	rest := strings.TrimSpace(v)
	for rest != "" {
		if rest[0] != '{' {
			return nil, &ParseError{Block: 3, Err: fmt.Errorf("%w: expected '{'", ErrInvalidBlock)}
		}
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			return nil, &ParseError{Block: 3, Err: fmt.Errorf("%w: unterminated sub-block", ErrInvalidBlock)}
		}
		name, value, ok := strings.Cut(rest[1:end], ":")
		if !ok {
			return nil, &ParseError{Block: 3, Err: fmt.Errorf("%w: sub-block without name", ErrInvalidBlock)}
		}
		out = append(out, Tag{Name: name, Value: value})
		rest = strings.TrimSpace(rest[end+1:])
	}
	return out, nil
}

func formatUserHeader(tags []Tag) string {
	var sb strings.Builder
	for _, t := range tags {
		sb.WriteString("{" + t.Name + ":" + t.Value + "}")
	}
	return sb.String()
}

// ValidateBIC checks the shape of a BIC: 8 or 11 characters, six letters
// followed by upper-case alphanumerics. It does not check the directory.
func ValidateBIC(bic string) error {
	if n := len(bic); n != 8 && n != 11 {
		return fmt.Errorf("%w: BIC %q must have 8 or 11 characters", ErrInvalidAddress, bic)
	}
	if !isUpperAlpha(bic[:6]) {
		return fmt.Errorf("%w: BIC %q must start with six letters", ErrInvalidAddress, bic)
	}
	for i := 6; i < len(bic); i++ {
		if c := bic[i]; !isDigit(c) && (c < 'A' || c > 'Z') {
			return fmt.Errorf("%w: BIC %q has invalid character %q", ErrInvalidAddress, bic, c)
		}
	}
	return nil
}

// LogicalTerminal expands a BIC to a 12 character logical terminal address:
// "TESTBEBB" becomes "TESTBEBBXXXX", "TESTBEBBABC" becomes "TESTBEBBXABC".
// A 12 character address is returned as is once its BIC part is checked.
func LogicalTerminal(bic string) (string, error) {
	switch len(bic) {
	case 8:
		if err := ValidateBIC(bic); err != nil {
			return "", err
		}
		return bic + "XXXX", nil
	case 11:
		if err := ValidateBIC(bic); err != nil {
			return "", err
		}
		return bic[:8] + "X" + bic[8:], nil
	case 12:
		if err := ValidateBIC(bic[:8]); err != nil {
			return "", err
		}
		return bic, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidAddress, bic)
}

// NormalizeUETR checks a unique end-to-end transaction reference (block 3
// field 121) and returns it in canonical lower-case form. The reference
// must be a version 4 UUID. An empty value yields a freshly generated one.
func NormalizeUETR(v string) (string, error) {
	if v == "" {
		return uuid.NewString(), nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return "", fmt.Errorf("%w: UETR %q: %v", ErrInvalidHeader, v, err)
	}
	if id.Version() != 4 || len(v) != 36 {
		return "", fmt.Errorf("%w: UETR %q is not a version 4 UUID", ErrInvalidHeader, v)
	}
	return id.String(), nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// pad right-aligns v in a zero filled field of width n.
func pad(v string, n int) string {
	if len(v) >= n {
		return v
	}
	return strings.Repeat("0", n-len(v)) + v
}
