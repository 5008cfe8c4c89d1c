package docstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreCollection stores documents in a Firestore collection keyed by id.
type FirestoreCollection[T Document] struct {
	client *firestore.Client
	name   string
	less   func(a, b T) bool
}

// NewFirestoreCollection returns a collection ordered by less, or by id when
// less is nil. Ordering happens client side so no composite index is needed.
func NewFirestoreCollection[T Document](client *firestore.Client, name string, less func(a, b T) bool) *FirestoreCollection[T] {
	if less == nil {
		less = func(a, b T) bool { return a.DocumentID() < b.DocumentID() }
	}
	return &FirestoreCollection[T]{client: client, name: name, less: less}
}

func (c *FirestoreCollection[T]) col() *firestore.CollectionRef {
	return c.client.Collection(c.name)
}

func (c *FirestoreCollection[T]) List(ctx context.Context) ([]T, error) {
	snaps, err := c.col().Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, mapFirestoreErr(err))
	}
	return c.decode(snaps)
}

func (c *FirestoreCollection[T]) Get(ctx context.Context, id string) (T, error) {
	var doc T
	snap, err := c.col().Doc(id).Get(ctx)
	if err != nil {
		return doc, fmt.Errorf("get %s/%s: %w", c.name, id, mapFirestoreErr(err))
	}
	if err := snap.DataTo(&doc); err != nil {
		return doc, fmt.Errorf("decode %s/%s: %w", c.name, id, err)
	}
	return doc, nil
}

func (c *FirestoreCollection[T]) Set(ctx context.Context, doc T) error {
	if _, err := c.col().Doc(doc.DocumentID()).Set(ctx, doc); err != nil {
		return fmt.Errorf("set %s/%s: %w", c.name, doc.DocumentID(), mapFirestoreErr(err))
	}
	return nil
}

func (c *FirestoreCollection[T]) Merge(ctx context.Context, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for path, value := range fields {
		updates = append(updates, firestore.Update{Path: path, Value: value})
	}
	if len(updates) == 0 {
		return nil
	}
	if _, err := c.col().Doc(id).Update(ctx, updates); err != nil {
		return fmt.Errorf("merge %s/%s: %w", c.name, id, mapFirestoreErr(err))
	}
	return nil
}

func (c *FirestoreCollection[T]) Delete(ctx context.Context, id string) error {
	if _, err := c.col().Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s/%s: %w", c.name, id, mapFirestoreErr(err))
	}
	return nil
}

func (c *FirestoreCollection[T]) SetAll(ctx context.Context, docs []T) error {
	existing, err := c.col().DocumentRefs(ctx).GetAll()
	if err != nil {
		return fmt.Errorf("list %s refs: %w", c.name, mapFirestoreErr(err))
	}

	keep := make(map[string]bool, len(docs))
	for _, d := range docs {
		keep[d.DocumentID()] = true
	}

	bw := c.client.BulkWriter(ctx)
	var jobs []*firestore.BulkWriterJob
	for _, ref := range existing {
		if keep[ref.ID] {
			continue
		}
		job, err := bw.Delete(ref)
		if err != nil {
			bw.End()
			return fmt.Errorf("queue delete %s/%s: %w", c.name, ref.ID, err)
		}
		jobs = append(jobs, job)
	}
	for _, d := range docs {
		job, err := bw.Set(c.col().Doc(d.DocumentID()), d)
		if err != nil {
			bw.End()
			return fmt.Errorf("queue set %s/%s: %w", c.name, d.DocumentID(), err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("bulk write %s: %w", c.name, mapFirestoreErr(err))
		}
	}
	return nil
}

func (c *FirestoreCollection[T]) Watch(ctx context.Context, onChange func([]T), onError func(error)) error {
	it := c.col().Snapshots(ctx)
	defer it.Stop()

	for {
		qs, err := it.Next()
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled {
				return nil
			}
			err = fmt.Errorf("watch %s: %w", c.name, mapFirestoreErr(err))
			onError(err)
			return err
		}

		snaps, err := qs.Documents.GetAll()
		if err != nil {
			onError(fmt.Errorf("read %s snapshot: %w", c.name, mapFirestoreErr(err)))
			continue
		}
		docs, err := c.decode(snaps)
		if err != nil {
			onError(err)
			continue
		}
		onChange(docs)
	}
}

func (c *FirestoreCollection[T]) decode(snaps []*firestore.DocumentSnapshot) ([]T, error) {
	out := make([]T, 0, len(snaps))
	for _, s := range snaps {
		var doc T
		if err := s.DataTo(&doc); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", c.name, s.Ref.ID, err)
		}
		out = append(out, doc)
	}
	sort.SliceStable(out, func(i, j int) bool { return c.less(out[i], out[j]) })
	return out, nil
}

func mapFirestoreErr(err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return errors.Join(ErrNotFound, err)
	case codes.PermissionDenied:
		return errors.Join(ErrPermissionDenied, err)
	default:
		return err
	}
}
