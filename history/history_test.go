package history

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, limit int) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewWithClient(client, limit), mr
}

func TestRecordAndRecent(t *testing.T) {
	store, _ := newTestStore(t, 5)

	store.Record("sess-1", "cabana")
	store.Record("sess-1", "vila mare")
	store.Record("sess-1", "pensiune sibiu")

	got := store.Recent("sess-1")
	assert.Equal(t, []string{"pensiune sibiu", "vila mare", "cabana"}, got)
}

func TestRecordDeduplicates(t *testing.T) {
	store, _ := newTestStore(t, 5)

	store.Record("sess-1", "cabana")
	store.Record("sess-1", "vila")
	store.Record("sess-1", "cabana")

	assert.Equal(t, []string{"cabana", "vila"}, store.Recent("sess-1"))
}

func TestRecordTrimsToLimit(t *testing.T) {
	store, _ := newTestStore(t, 3)

	for _, q := range []string{"a", "b", "c", "d", "e"} {
		store.Record("sess-1", q)
	}

	assert.Equal(t, []string{"e", "d", "c"}, store.Recent("sess-1"))
}

func TestRecordIgnoresEmpty(t *testing.T) {
	store, _ := newTestStore(t, 5)

	store.Record("", "cabana")
	store.Record("sess-1", "")

	assert.Empty(t, store.Recent("sess-1"))
}

func TestRecentIsolatedPerSession(t *testing.T) {
	store, _ := newTestStore(t, 5)

	store.Record("sess-1", "munte")
	store.Record("sess-2", "mare")

	assert.Equal(t, []string{"munte"}, store.Recent("sess-1"))
	assert.Equal(t, []string{"mare"}, store.Recent("sess-2"))
}

func TestRecordSetsExpiry(t *testing.T) {
	store, mr := newTestStore(t, 5)

	store.Record("sess-1", "cabana")
	require.NotEmpty(t, store.Recent("sess-1"))

	mr.FastForward(25 * time.Hour)
	assert.Empty(t, store.Recent("sess-1"))
}

func TestPing(t *testing.T) {
	store, mr := newTestStore(t, 5)
	assert.NoError(t, store.Ping())

	mr.Close()
	assert.Error(t, store.Ping())
}
