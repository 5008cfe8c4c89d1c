package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

const (
	docsKeySuffix   = ":docs"   // hash of id -> JSON document
	orderKeySuffix  = ":order"  // sorted set of id scored by insertion sequence
	seqKeySuffix    = ":seq"    // insertion sequence counter
	eventsKeySuffix = ":events" // Pub/Sub channel announcing changes

	maxMergeAttempts = 100
)

// changeEvent is published after every successful write.
type changeEvent struct {
	Op string `json:"op"`
	ID string `json:"id,omitempty"`
}

// RedisCollection keeps documents as JSON in a Redis hash, remembers
// insertion order in a sorted set and announces changes over Pub/Sub.
type RedisCollection[T Document] struct {
	client *redis.Client
	prefix string
}

// NewRedisCollection stores the collection under keys "<namespace>:<name>:*".
func NewRedisCollection[T Document](client *redis.Client, namespace, name string) *RedisCollection[T] {
	return &RedisCollection[T]{
		client: client,
		prefix: fmt.Sprintf("%s:%s", namespace, name),
	}
}

func (c *RedisCollection[T]) List(ctx context.Context) ([]T, error) {
	ids, err := c.client.ZRange(ctx, c.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s order: %w", c.prefix, err)
	}
	if len(ids) == 0 {
		return []T{}, nil
	}

	raw, err := c.client.HMGet(ctx, c.docsKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.prefix, err)
	}

	out := make([]T, 0, len(raw))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			// order entry without a document, skip it
			continue
		}
		var doc T
		if err := json.Unmarshal([]byte(s), &doc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s/%s: %w", c.prefix, ids[i], err)
		}
		out = append(out, doc)
	}
	return out, nil
}

func (c *RedisCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var doc T
	data, err := c.client.HGet(ctx, c.docsKey(), id).Result()
	if err == redis.Nil {
		return doc, ErrNotFound
	}
	if err != nil {
		return doc, fmt.Errorf("failed to get %s/%s: %w", c.prefix, id, err)
	}
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return doc, fmt.Errorf("failed to unmarshal %s/%s: %w", c.prefix, id, err)
	}
	return doc, nil
}

func (c *RedisCollection[T]) Set(ctx context.Context, doc T) error {
	id := doc.DocumentID()
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal %s/%s: %w", c.prefix, id, err)
	}

	seq, err := c.client.Incr(ctx, c.seqKey()).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate sequence: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, c.docsKey(), id, data)
	// NX keeps the original position when a document is overwritten
	pipe.ZAddNX(ctx, c.orderKey(), redis.Z{Score: float64(seq), Member: id})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set %s/%s: %w", c.prefix, id, err)
	}

	c.publish(ctx, changeEvent{Op: "set", ID: id})
	return nil
}

// Merge rewrites only the named fields. The read-modify-write runs under
// WATCH on the documents hash and is retried when another write lands in
// between, so concurrent merges of different fields all survive.
func (c *RedisCollection[T]) Merge(ctx context.Context, id string, fields map[string]any) error {
	key := c.docsKey()
	apply := func(tx *redis.Tx) error {
		data, err := tx.HGet(ctx, key, id).Result()
		if err == redis.Nil {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get %s/%s: %w", c.prefix, id, err)
		}

		var current map[string]any
		if err := json.Unmarshal([]byte(data), &current); err != nil {
			return fmt.Errorf("failed to unmarshal %s/%s: %w", c.prefix, id, err)
		}
		for k, v := range fields {
			current[k] = v
		}

		merged, err := json.Marshal(current)
		if err != nil {
			return fmt.Errorf("failed to marshal %s/%s: %w", c.prefix, id, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, id, merged)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxMergeAttempts; attempt++ {
		err := c.client.Watch(ctx, apply, key)
		switch {
		case err == nil:
			c.publish(ctx, changeEvent{Op: "merge", ID: id})
			return nil
		case errors.Is(err, redis.TxFailedErr):
			continue
		case errors.Is(err, ErrNotFound):
			return ErrNotFound
		default:
			return fmt.Errorf("failed to merge %s/%s: %w", c.prefix, id, err)
		}
	}
	return fmt.Errorf("failed to merge %s/%s: gave up after %d conflicting writes", c.prefix, id, maxMergeAttempts)
}

func (c *RedisCollection[T]) Delete(ctx context.Context, id string) error {
	pipe := c.client.TxPipeline()
	pipe.HDel(ctx, c.docsKey(), id)
	pipe.ZRem(ctx, c.orderKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", c.prefix, id, err)
	}

	c.publish(ctx, changeEvent{Op: "delete", ID: id})
	return nil
}

func (c *RedisCollection[T]) SetAll(ctx context.Context, docs []T) error {
	encoded := make([][]byte, len(docs))
	for i, d := range docs {
		data, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("failed to marshal %s/%s: %w", c.prefix, d.DocumentID(), err)
		}
		encoded[i] = data
	}

	last, err := c.client.IncrBy(ctx, c.seqKey(), int64(len(docs))).Result()
	if err != nil {
		return fmt.Errorf("failed to allocate sequence: %w", err)
	}
	first := last - int64(len(docs)) + 1

	pipe := c.client.TxPipeline()
	pipe.Del(ctx, c.docsKey(), c.orderKey())
	for i, d := range docs {
		pipe.HSet(ctx, c.docsKey(), d.DocumentID(), encoded[i])
		pipe.ZAdd(ctx, c.orderKey(), redis.Z{Score: float64(first + int64(i)), Member: d.DocumentID()})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to replace %s: %w", c.prefix, err)
	}

	c.publish(ctx, changeEvent{Op: "reset"})
	return nil
}

func (c *RedisCollection[T]) Watch(ctx context.Context, onChange func([]T), onError func(error)) error {
	sub := c.client.Subscribe(ctx, c.eventsChannel())
	defer sub.Close()

	// wait for the subscription to be confirmed so no change is missed
	// between the initial load and the first event
	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		err = fmt.Errorf("failed to subscribe to %s: %w", c.prefix, err)
		onError(err)
		return err
	}

	reload := func() {
		docs, err := c.List(ctx)
		if err != nil {
			if ctx.Err() == nil {
				onError(err)
			}
			return
		}
		onChange(docs)
	}

	reload()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				err := fmt.Errorf("subscription to %s closed", c.prefix)
				onError(err)
				return err
			}
			reload()
		}
	}
}

func (c *RedisCollection[T]) publish(ctx context.Context, ev changeEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := c.client.Publish(ctx, c.eventsChannel(), data).Err(); err != nil {
		log.Printf("[warn] docstore publish %s: %v", c.prefix, err)
	}
}

func (c *RedisCollection[T]) docsKey() string       { return c.prefix + docsKeySuffix }
func (c *RedisCollection[T]) orderKey() string      { return c.prefix + orderKeySuffix }
func (c *RedisCollection[T]) seqKey() string        { return c.prefix + seqKeySuffix }
func (c *RedisCollection[T]) eventsChannel() string { return c.prefix + eventsKeySuffix }
