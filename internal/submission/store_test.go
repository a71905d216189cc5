package submission

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uvaexpress/pkg/models"
)

func confirmResult(msg string) models.ConfirmResponse {
	return models.ConfirmResponse{
		Success:   true,
		NewStatus: models.StatusBestaetigt,
		Message:   msg,
	}
}

func TestMemoryStorePutIfAbsent(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(10)

	first, inserted := store.PutIfAbsent("key-1", "2026-01", confirmResult("first"))
	require.True(t, inserted)
	assert.Equal(t, "first", first.Message)

	// Second write with the same key loses; the stored result wins.
	second, inserted := store.PutIfAbsent("key-1", "2026-01", confirmResult("second"))
	assert.False(t, inserted)
	assert.Equal(t, "first", second.Message)

	got, ok := store.Get("key-1")
	require.True(t, ok)
	assert.Equal(t, "first", got.Message)

	_, ok = store.Get("unseen")
	assert.False(t, ok)
}

func TestMemoryStoreHasPeriod(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(10)
	assert.False(t, store.HasPeriod("2026-01"))

	store.PutIfAbsent("key-1", "2026-01", confirmResult("x"))
	assert.True(t, store.HasPeriod("2026-01"))
	assert.False(t, store.HasPeriod("2026-02"))
}

func TestMemoryStoreEvictsOldestHalf(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore(4)
	for i := 1; i <= 4; i++ {
		store.PutIfAbsent(fmt.Sprintf("key-%d", i), fmt.Sprintf("2026-%02d", i), confirmResult("x"))
	}

	// The fifth insert evicts keys 1 and 2.
	_, inserted := store.PutIfAbsent("key-5", "2026-05", confirmResult("x"))
	require.True(t, inserted)

	_, ok := store.Get("key-1")
	assert.False(t, ok)
	_, ok = store.Get("key-2")
	assert.False(t, ok)
	_, ok = store.Get("key-3")
	assert.True(t, ok)
	_, ok = store.Get("key-5")
	assert.True(t, ok)

	// The period index survives eviction.
	assert.True(t, store.HasPeriod("2026-01"))
}
