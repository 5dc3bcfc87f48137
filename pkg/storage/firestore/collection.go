package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
)

type ToFirestoreFunc[T any] func(*T) map[string]interface{}
type FromFirestoreFunc[T any] func(string, map[string]interface{}) *T

type Collection[T any] struct {
	Ref           *firestore.CollectionRef
	ToFirestore   ToFirestoreFunc[T]
	FromFirestore FromFirestoreFunc[T]
}

func (c *Collection[T]) Doc(id string) *DocumentRef[T] {
	return &DocumentRef[T]{
		Ref:           c.Ref.Doc(id),
		ToFirestore:   c.ToFirestore,
		FromFirestore: c.FromFirestore,
	}
}

func (c *Collection[T]) NewDoc() *DocumentRef[T] {
	return &DocumentRef[T]{
		Ref:           c.Ref.NewDoc(),
		ToFirestore:   c.ToFirestore,
		FromFirestore: c.FromFirestore,
	}
}

func (c *Collection[T]) Where(path, op string, value interface{}) *Query[T] {
	return &Query[T]{
		q:             c.Ref.Where(path, op, value),
		FromFirestore: c.FromFirestore,
	}
}

func (c *Collection[T]) All(ctx context.Context) ([]*T, error) {
	q := &Query[T]{q: c.Ref.Query, FromFirestore: c.FromFirestore}
	return q.GetAll(ctx)
}

type DocumentRef[T any] struct {
	Ref           *firestore.DocumentRef
	ToFirestore   ToFirestoreFunc[T]
	FromFirestore FromFirestoreFunc[T]
}

func (d *DocumentRef[T]) ID() string {
	return d.Ref.ID
}

func (d *DocumentRef[T]) Get(ctx context.Context) (*T, error) {
	snap, err := d.Ref.Get(ctx)
	if err != nil {
		return nil, err
	}
	return d.FromFirestore(snap.Ref.ID, snap.Data()), nil
}

func (d *DocumentRef[T]) Set(ctx context.Context, data *T) error {
	m := d.ToFirestore(data)
	_, err := d.Ref.Set(ctx, m, firestore.MergeAll)
	return err
}

// Create writes the document only if it does not already exist.
func (d *DocumentRef[T]) Create(ctx context.Context, data *T) error {
	m := d.ToFirestore(data)
	_, err := d.Ref.Create(ctx, m)
	return err
}

func (d *DocumentRef[T]) Update(ctx context.Context, updates map[string]interface{}) error {
	// We do not run converter here because updates are often partials/dots
	_, err := d.Ref.Set(ctx, updates, firestore.MergeAll)
	return err
}

func (d *DocumentRef[T]) Delete(ctx context.Context) error {
	_, err := d.Ref.Delete(ctx)
	return err
}

// Query is a typed wrapper over a Firestore query. Filters compose the
// same way as the underlying client.
type Query[T any] struct {
	q             firestore.Query
	FromFirestore FromFirestoreFunc[T]
}

func (q *Query[T]) Where(path, op string, value interface{}) *Query[T] {
	return &Query[T]{q: q.q.Where(path, op, value), FromFirestore: q.FromFirestore}
}

func (q *Query[T]) OrderBy(path string, dir firestore.Direction) *Query[T] {
	return &Query[T]{q: q.q.OrderBy(path, dir), FromFirestore: q.FromFirestore}
}

func (q *Query[T]) Limit(n int) *Query[T] {
	return &Query[T]{q: q.q.Limit(n), FromFirestore: q.FromFirestore}
}

func (q *Query[T]) GetAll(ctx context.Context) ([]*T, error) {
	iter := q.q.Documents(ctx)
	defer iter.Stop()

	var out []*T
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		out = append(out, q.FromFirestore(snap.Ref.ID, snap.Data()))
	}
	return out, nil
}

// DeleteAll removes every document matched by the query and returns how
// many were deleted.
func (q *Query[T]) DeleteAll(ctx context.Context) (int, error) {
	iter := q.q.Documents(ctx)
	defer iter.Stop()

	deleted := 0
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return deleted, err
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}
