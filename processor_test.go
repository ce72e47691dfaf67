package swiftmt

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestProcessor_Process(t *testing.T) {
	p := NewProcessor()
	m, err := p.Process(mt103FIN)
	require.NoError(t, err)
	assert.Same(t, MT103, m.Schema())

	_, err = p.Process("garbage")
	assert.ErrorIs(t, err, ErrInvalidBlock)
}

func TestProcessor_ProcessBatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex
	var handled []error
	p := NewProcessor(
		WithConcurrency(2),
		WithErrorHandler(func(err error) {
			mu.Lock()
			handled = append(handled, err)
			mu.Unlock()
		}),
	)

	raws := []string{mt103FIN, "garbage", mt537FIN, mt103FIN}
	results, err := p.ProcessBatch(context.Background(), raws)
	assert.ErrorIs(t, err, ErrInvalidBlock)
	require.Len(t, results, len(raws))

	assert.Equal(t, "103", results[0].Type())
	assert.Nil(t, results[1])
	assert.Equal(t, "537", results[2].Type())
	assert.Equal(t, "103", results[3].Type())
	assert.Len(t, handled, 1)
}

func TestProcessor_ProcessBatchAllGood(t *testing.T) {
	defer goleak.VerifyNone(t)

	raws := make([]string, 20)
	for i := range raws {
		raws[i] = mt537FIN
	}
	results, err := NewProcessor(WithConcurrency(3)).ProcessBatch(context.Background(), raws)
	require.NoError(t, err)
	for i, m := range results {
		require.NotNil(t, m, i)
		assert.Same(t, MT537, m.Schema())
	}
}

func TestProcessor_ProcessBatchCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := NewProcessor().ProcessBatch(ctx, []string{mt103FIN, mt103FIN})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, results, 2)
}

func TestProcessor_WithSchemaWarnsOnMismatch(t *testing.T) {
	logger, logs := observedLogger()
	p := NewProcessor(WithSchema(MT537), WithProcessorLogger(logger))

	m, err := p.Process(mt103FIN)
	require.NoError(t, err)
	assert.Same(t, MT537, m.Schema())
	assert.Equal(t, 1, logs.FilterMessage("message type mismatch").Len())
}

func TestProcessor_DefaultErrorHandlerLogs(t *testing.T) {
	defer goleak.VerifyNone(t)

	logger, logs := observedLogger()
	p := NewProcessor(WithProcessorLogger(logger))
	_, err := p.ProcessBatch(context.Background(), []string{"garbage"})
	require.Error(t, err)
	assert.Equal(t, 1, logs.FilterMessage("processor error").Len())
}

func TestProcessor_ProcessStream(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewProcessor(WithConcurrency(2), WithErrorHandler(func(error) {}))
	input := make(chan string)
	output := make(chan *Message, 4)

	go func() {
		defer close(input)
		for _, raw := range []string{mt103FIN, "garbage", mt537FIN} {
			input <- raw
		}
	}()

	require.NoError(t, p.ProcessStream(context.Background(), input, output))
	close(output)

	var types []string
	for m := range output {
		types = append(types, m.Type())
	}
	assert.ElementsMatch(t, []string{"103", "537"}, types)
}

func TestProcessor_ProcessStreamCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	input := make(chan string)
	output := make(chan *Message) // never read

	done := make(chan error, 1)
	go func() {
		done <- NewProcessor().ProcessStream(ctx, input, output)
	}()

	input <- mt103FIN
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("ProcessStream did not return after cancel")
	}
}

func TestWithConcurrency_IgnoresNonPositive(t *testing.T) {
	p := NewProcessor(WithConcurrency(0), WithConcurrency(-3))
	assert.Equal(t, 4, p.concurrency)
}
