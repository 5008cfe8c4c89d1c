package docstore

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

func (n note) DocumentID() string { return n.ID }

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	ctx := context.Background()
	err = client.Ping(ctx).Err()
	require.NoError(t, err)

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func TestRedisCollection_CRUD(t *testing.T) {
	client, _ := setupTestRedis(t)
	col := NewRedisCollection[note](client, "test", "notes")
	ctx := context.Background()

	t.Run("list on empty collection", func(t *testing.T) {
		docs, err := col.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, docs)
	})

	t.Run("set keeps insertion order", func(t *testing.T) {
		require.NoError(t, col.Set(ctx, note{ID: "b", Title: "second letter"}))
		require.NoError(t, col.Set(ctx, note{ID: "a", Title: "first letter"}))

		docs, err := col.List(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, "b", docs[0].ID)
		assert.Equal(t, "a", docs[1].ID)
	})

	t.Run("overwrite keeps original position", func(t *testing.T) {
		require.NoError(t, col.Set(ctx, note{ID: "b", Title: "rewritten"}))

		docs, err := col.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, "b", docs[0].ID)
		assert.Equal(t, "rewritten", docs[0].Title)
	})

	t.Run("merge overwrites named fields only", func(t *testing.T) {
		require.NoError(t, col.Merge(ctx, "a", map[string]any{"count": 4}))

		got, err := col.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "first letter", got.Title)
		assert.Equal(t, 4, got.Count)
	})

	t.Run("merge on missing document", func(t *testing.T) {
		err := col.Merge(ctx, "zzz", map[string]any{"count": 1})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("get missing document", func(t *testing.T) {
		_, err := col.Get(ctx, "zzz")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete removes document and order entry", func(t *testing.T) {
		require.NoError(t, col.Delete(ctx, "b"))

		docs, err := col.List(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 1)
		assert.Equal(t, "a", docs[0].ID)
	})

	t.Run("set all replaces the collection", func(t *testing.T) {
		require.NoError(t, col.SetAll(ctx, []note{{ID: "x"}, {ID: "y"}, {ID: "z"}}))

		docs, err := col.List(ctx)
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, []string{"x", "y", "z"}, []string{docs[0].ID, docs[1].ID, docs[2].ID})

		_, err = col.Get(ctx, "a")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRedisCollection_Watch(t *testing.T) {
	client, _ := setupTestRedis(t)
	col := NewRedisCollection[note](client, "test", "watched")
	require.NoError(t, col.Set(context.Background(), note{ID: "first"}))

	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan []note, 8)
	done := make(chan error, 1)
	go func() {
		done <- col.Watch(ctx, func(docs []note) { updates <- docs }, func(err error) { t.Errorf("watch error: %v", err) })
	}()

	next := func() []note {
		select {
		case docs := <-updates:
			return docs
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for snapshot")
			return nil
		}
	}

	initial := next()
	require.Len(t, initial, 1)
	assert.Equal(t, "first", initial[0].ID)

	require.NoError(t, col.Set(context.Background(), note{ID: "second"}))
	afterSet := next()
	assert.Len(t, afterSet, 2)

	require.NoError(t, col.Delete(context.Background(), "first"))
	afterDelete := next()
	require.Len(t, afterDelete, 1)
	assert.Equal(t, "second", afterDelete[0].ID)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestRedisCollection_ConcurrentMerges(t *testing.T) {
	client, _ := setupTestRedis(t)
	col := NewRedisCollection[note](client, "test", "contended")
	ctx := context.Background()

	for round := 0; round < 50; round++ {
		id := fmt.Sprintf("n%d", round)
		require.NoError(t, col.Set(ctx, note{ID: id, Title: "old"}))

		var wg sync.WaitGroup
		errs := make(chan error, 2)
		for _, fields := range []map[string]any{{"title": "new"}, {"count": 7}} {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- col.Merge(ctx, id, fields)
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}

		got, err := col.Get(ctx, id)
		require.NoError(t, err)
		require.Equal(t, "new", got.Title, "round %d", round)
		require.Equal(t, 7, got.Count, "round %d", round)
	}
}
