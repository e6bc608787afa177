package store

import (
	"context"
	"errors"
)

type readID struct {
	kind ReadKind
	key  string
}

// Overlay buffers the writes of a single operation on top of a Backend.
// Reads observe buffered writes. Nothing reaches the backend until Commit,
// so an operation that fails part way leaves no trace. Every backend read is
// remembered so Commit can refuse to apply over a concurrent change.
type Overlay struct {
	backend Backend
	values  map[string][]byte
	appends map[string][][]byte
	log     []Mutation
	reads   []Read
	seen    map[readID]struct{}
}

func NewOverlay(backend Backend) *Overlay {
	return &Overlay{
		backend: backend,
		values:  make(map[string][]byte),
		appends: make(map[string][][]byte),
		seen:    make(map[readID]struct{}),
	}
}

func (o *Overlay) observe(r Read) {
	id := readID{kind: r.Kind, key: r.Key}
	if _, ok := o.seen[id]; ok {
		return
	}
	o.seen[id] = struct{}{}
	o.reads = append(o.reads, r)
}

func (o *Overlay) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := o.values[key]; ok {
		return clone(v), nil
	}
	v, err := o.backend.Get(ctx, key)
	switch {
	case err == nil:
		o.observe(Read{Kind: ReadValue, Key: key, Value: clone(v), Found: true})
	case errors.Is(err, ErrNotFound):
		o.observe(Read{Kind: ReadValue, Key: key})
	}
	return v, err
}

func (o *Overlay) Exists(ctx context.Context, key string) (bool, error) {
	if _, ok := o.values[key]; ok {
		return true, nil
	}
	if len(o.appends[key]) > 0 {
		return true, nil
	}
	ok, err := o.backend.Exists(ctx, key)
	if err == nil {
		o.observe(Read{Kind: ReadExists, Key: key, Found: ok})
	}
	return ok, err
}

func (o *Overlay) Range(ctx context.Context, key string) ([][]byte, error) {
	items, err := o.backend.Range(ctx, key)
	if err != nil {
		return nil, err
	}
	o.observe(Read{Kind: ReadList, Key: key, Len: len(items)})
	for _, v := range o.appends[key] {
		items = append(items, clone(v))
	}
	return items, nil
}

func (o *Overlay) Set(_ context.Context, key string, value []byte) error {
	v := clone(value)
	o.values[key] = v
	o.log = append(o.log, Mutation{Op: OpSet, Key: key, Value: v})
	return nil
}

func (o *Overlay) Append(_ context.Context, key string, value []byte) error {
	v := clone(value)
	o.appends[key] = append(o.appends[key], v)
	o.log = append(o.log, Mutation{Op: OpAppend, Key: key, Value: v})
	return nil
}

// Pending is the number of buffered mutations.
func (o *Overlay) Pending() int {
	return len(o.log)
}

// Reads are the backend observations Commit will check.
func (o *Overlay) Reads() []Read {
	return o.reads
}

// Commit applies the buffered writes if nothing the overlay read has changed.
// On ErrConflict the overlay is left as is and must be discarded.
func (o *Overlay) Commit(ctx context.Context) error {
	if len(o.log) == 0 {
		return nil
	}
	if err := o.backend.Apply(ctx, o.reads, o.log); err != nil {
		return err
	}
	o.values = make(map[string][]byte)
	o.appends = make(map[string][][]byte)
	o.log = nil
	o.reads = nil
	o.seen = make(map[readID]struct{})
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
