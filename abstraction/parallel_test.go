package abstraction

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForEachChunkCoversRange(t *testing.T) {
	t.Parallel()
	b := newTestBuilder(t, 5, nil)

	const n = 1000
	var mu sync.Mutex
	hits := make([]int, n)
	err := b.forEachChunk(context.Background(), "test", n, func(_ int, lo, hi uint64) error {
		mu.Lock()
		defer mu.Unlock()
		for i := lo; i < hi; i++ {
			hits[i]++
		}
		return nil
	})
	require.NoError(t, err)
	for i, h := range hits {
		require.Equal(t, 1, h, "index %d", i)
	}
}

func TestForEachChunkStopsOnError(t *testing.T) {
	t.Parallel()
	b := newTestBuilder(t, 5, nil)

	boom := errors.New("boom")
	err := b.forEachChunk(context.Background(), "test", 10_000, func(_ int, lo, _ uint64) error {
		if lo >= 160 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestProgressReportsOnTick(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	mockClock := quartz.NewMock(t)

	p := newProgress(logger, mockClock, "flop", 200)
	stop := p.start(ctx, 10*time.Second)
	p.add(50)

	mockClock.Advance(10 * time.Second).MustWait(ctx)
	stop()

	out := buf.String()
	assert.Contains(t, out, `"table":"flop"`)
	assert.Contains(t, out, `"done":50`)
	assert.Contains(t, out, `"total":200`)
	assert.Contains(t, out, `"percent":25`)
	assert.Contains(t, out, `"message":"progress"`)
}

func TestProgressDisabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := newProgress(zerolog.New(&buf), quartz.NewMock(t), "turn", 10)
	stop := p.start(context.Background(), 0)
	p.add(10)
	stop()
	assert.Empty(t, buf.String())
}

func TestBuilderLogsCompletion(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	b := newTestBuilder(t, 5, nil, WithLogger(zerolog.New(&buf)), WithClock(quartz.NewMock(t)))
	buildStrengths(t, b)

	assert.Contains(t, buf.String(), `"message":"table built"`)
	assert.Contains(t, buf.String(), `"table":"strength"`)
}
