package swiftmt

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Processor parses raw FIN messages concurrently. Every message is parsed
// and handed out by exactly one goroutine, so no message is shared while
// it is being built.
type Processor struct {
	schema       *Schema // nil selects the registered schema per message
	concurrency  int     // Max number of goroutines for processing
	errorHandler func(error)
	logger       *zap.Logger
}

// ProcessorOption defines a function signature for configuring a Processor.
type ProcessorOption func(*Processor)

// WithSchema binds every processed message to s instead of looking the
// schema up by message type.
func WithSchema(s *Schema) ProcessorOption {
	return func(p *Processor) {
		p.schema = s
	}
}

// WithConcurrency sets the maximum number of concurrent goroutines for the processor.
func WithConcurrency(n int) ProcessorOption {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithErrorHandler sets a custom error handler for errors encountered during
// batch or stream processing.
func WithErrorHandler(handler func(error)) ProcessorOption {
	return func(p *Processor) {
		p.errorHandler = handler
	}
}

// WithProcessorLogger sets the logger for parse warnings and the default
// error handler.
func WithProcessorLogger(l *zap.Logger) ProcessorOption {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

func NewProcessor(opts ...ProcessorOption) *Processor {
	p := &Processor{
		concurrency: 4,
		logger:      L(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.errorHandler == nil {
		log := p.logger
		p.errorHandler = func(err error) {
			log.Warn("processor error", zap.Error(err))
		}
	}
	return p
}

// Process parses a single raw message. Unlike Parse, malformed text is
// returned as an error.
func (p *Processor) Process(raw string) (*Message, error) {
	return parseWith(p.schema, raw, &parseOptions{logger: p.logger})
}

// ProcessBatch parses raws concurrently. results[i] belongs to raws[i] and
// is nil when that message failed. The first failure by position is
// returned with the partial results.
func (p *Processor) ProcessBatch(ctx context.Context, raws []string) ([]*Message, error) {
	results := make([]*Message, len(raws))
	errs := make([]error, len(raws))

	g := new(errgroup.Group)
	g.SetLimit(p.concurrency)
	for i, raw := range raws {
		if ctx.Err() != nil {
			break
		}
		i, raw := i, raw
		g.Go(func() error {
			msg, err := p.Process(raw)
			if err != nil {
				errs[i] = err
				p.errorHandler(err)
				return nil
			}
			results[i] = msg
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}
	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// ProcessStream parses messages from input and sends them to output until
// input is closed or ctx is done. Messages that fail to parse go to the
// error handler. output is never closed by ProcessStream.
func (p *Processor) ProcessStream(ctx context.Context, input <-chan string, output chan<- *Message) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for {
		select {
		case <-gctx.Done():
			_ = g.Wait()
			return ctx.Err()

		case raw, ok := <-input:
			if !ok {
				return g.Wait()
			}
			g.Go(func() error {
				msg, err := p.Process(raw)
				if err != nil {
					p.errorHandler(err)
					return nil
				}
				select {
				case output <- msg:
				case <-gctx.Done():
				}
				return nil
			})
		}
	}
}
