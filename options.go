package swiftmt

import "go.uber.org/zap"

// MessageOption represents a functional option for message configuration
type MessageOption func(*Message)

// WithSender sets the sender from a BIC or logical terminal address.
// Malformed addresses are stored as given and reported at debug level.
func WithSender(address string) MessageOption {
	return func(m *Message) {
		if err := m.SetSender(address); err != nil {
			L().Debug("keeping unchecked sender address", zap.String("address", address), zap.Error(err))
			m.setSenderLT(address)
		}
	}
}

// WithReceiver sets the receiver from a BIC or logical terminal address.
func WithReceiver(address string) MessageOption {
	return func(m *Message) {
		if err := m.SetReceiver(address); err != nil {
			L().Debug("keeping unchecked receiver address", zap.String("address", address), zap.Error(err))
			m.setReceiverLT(address)
		}
	}
}

// WithPriority sets the block 2 priority ("N", "U" or "S").
func WithPriority(priority string) MessageOption {
	return func(m *Message) {
		m.app.Priority = priority
	}
}

// WithMUR sets the message user reference, block 3 field 108.
func WithMUR(ref string) MessageOption {
	return func(m *Message) {
		m.SetUserHeaderTag("108", ref)
	}
}

// WithUETR sets block 3 field 121. An empty uetr generates a new one; a
// malformed one is stored as given and reported at debug level.
func WithUETR(uetr string) MessageOption {
	return func(m *Message) {
		v, err := NormalizeUETR(uetr)
		if err != nil {
			L().Debug("keeping unchecked UETR", zap.String("uetr", uetr), zap.Error(err))
			v = uetr
		}
		m.SetUserHeaderTag("121", v)
	}
}

// WithUserHeaderTag sets an arbitrary block 3 field such as 121 (UETR).
func WithUserHeaderTag(name, value string) MessageOption {
	return func(m *Message) {
		m.SetUserHeaderTag(name, value)
	}
}

// WithTags appends initial block 4 content.
func WithTags(sources ...TagSource) MessageOption {
	return func(m *Message) {
		m.block4.Append(sources...)
	}
}

// ParseOption configures Parse and the related constructors.
type ParseOption func(*parseOptions)

type parseOptions struct {
	logger *zap.Logger
}

func newParseOptions(opts []ParseOption) *parseOptions {
	po := &parseOptions{logger: L()}
	for _, opt := range opts {
		opt(po)
	}
	return po
}

// WithLogger routes the soft warnings of one parse call to l instead of
// the package logger.
func WithLogger(l *zap.Logger) ParseOption {
	return func(po *parseOptions) {
		if l != nil {
			po.logger = l
		}
	}
}
