package latest_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/tactical-scout-service/internal/latest"
)

func TestTracker_NewerGenerationCancelsOlder(t *testing.T) {
	tr := latest.NewTracker()

	ctx1, tk1 := tr.Begin(context.Background(), "board-1")
	ctx2, tk2 := tr.Begin(context.Background(), "board-1")

	require.ErrorIs(t, ctx1.Err(), context.Canceled)
	assert.NoError(t, ctx2.Err())
	assert.False(t, tr.IsCurrent(tk1))
	assert.True(t, tr.IsCurrent(tk2))

	assert.False(t, tr.Finish(tk1), "stale ticket must not win")
	assert.True(t, tr.IsCurrent(tk2))
	assert.True(t, tr.Finish(tk2))
	assert.ErrorIs(t, ctx2.Err(), context.Canceled)
	assert.Zero(t, tr.Len())
}

func TestTracker_KeysAreIndependent(t *testing.T) {
	tr := latest.NewTracker()
	ctxA, tkA := tr.Begin(context.Background(), "a")
	_, tkB := tr.Begin(context.Background(), "b")

	assert.NoError(t, ctxA.Err())
	assert.True(t, tr.IsCurrent(tkA))
	assert.True(t, tr.IsCurrent(tkB))
	assert.Equal(t, 2, tr.Len())
}

func TestTracker_StaleTicketAfterSlotReuse(t *testing.T) {
	tr := latest.NewTracker()
	_, old := tr.Begin(context.Background(), "k")
	_, cur := tr.Begin(context.Background(), "k")
	require.True(t, tr.Finish(cur))

	_, fresh := tr.Begin(context.Background(), "k")
	assert.False(t, tr.IsCurrent(old))
	assert.True(t, tr.IsCurrent(fresh))
}

func TestTracker_ParentCancellationPropagates(t *testing.T) {
	tr := latest.NewTracker()
	parent, cancel := context.WithCancel(context.Background())
	ctx, tk := tr.Begin(parent, "k")
	cancel()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.True(t, tr.IsCurrent(tk), "parent cancellation does not retire the ticket")
}

func TestTracker_ConcurrentBeginHasSingleWinner(t *testing.T) {
	tr := latest.NewTracker()
	const n = 64
	tickets := make([]latest.Ticket, n)

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, tickets[i] = tr.Begin(context.Background(), "board")
		}()
	}
	wg.Wait()

	current := 0
	for _, tk := range tickets {
		if tr.IsCurrent(tk) {
			current++
		}
	}
	assert.Equal(t, 1, current)
}
