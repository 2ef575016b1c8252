// Package kvtest provides an in-process stand-in for a JetStream key-value bucket.
package kvtest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

// KeyValue implements the subset of jetstream.KeyValue used by the NATS repositories.
// Calling any other method panics through the nil embedded interface.
type KeyValue struct {
	jetstream.KeyValue

	bucket string
	mu     sync.Mutex
	rev    uint64
	data   map[string]*entry
}

// New returns an empty bucket.
func New(bucket string) *KeyValue {
	return &KeyValue{bucket: bucket, data: make(map[string]*entry)}
}

func (kv *KeyValue) Bucket() string { return kv.bucket }

func (kv *KeyValue) Get(ctx context.Context, key string) (jetstream.KeyValueEntry, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	e, ok := kv.data[key]
	if !ok {
		return nil, jetstream.ErrKeyNotFound
	}
	cp := *e
	cp.value = append([]byte(nil), e.value...)
	return &cp, nil
}

func (kv *KeyValue) Put(ctx context.Context, key string, value []byte) (uint64, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	return kv.set(key, value), nil
}

func (kv *KeyValue) Create(ctx context.Context, key string, value []byte, opts ...jetstream.KVCreateOpt) (uint64, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	if _, ok := kv.data[key]; ok {
		return 0, jetstream.ErrKeyExists
	}
	return kv.set(key, value), nil
}

func (kv *KeyValue) Update(ctx context.Context, key string, value []byte, revision uint64) (uint64, error) {
	kv.mu.Lock()
	defer kv.mu.Unlock()

	e, ok := kv.data[key]
	if !ok || e.revision != revision {
		return 0, jetstream.ErrKeyExists
	}
	return kv.set(key, value), nil
}

func (kv *KeyValue) Delete(ctx context.Context, key string, opts ...jetstream.KVDeleteOpt) error {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	delete(kv.data, key)
	return nil
}

func (kv *KeyValue) ListKeys(ctx context.Context, opts ...jetstream.WatchOpt) (jetstream.KeyLister, error) {
	kv.mu.Lock()
	keys := make([]string, 0, len(kv.data))
	for k := range kv.data {
		keys = append(keys, k)
	}
	kv.mu.Unlock()
	sort.Strings(keys)

	ch := make(chan string, len(keys))
	for _, k := range keys {
		ch <- k
	}
	close(ch)
	return &lister{keys: ch}, nil
}

// Len reports how many keys are stored.
func (kv *KeyValue) Len() int {
	kv.mu.Lock()
	defer kv.mu.Unlock()
	return len(kv.data)
}

func (kv *KeyValue) set(key string, value []byte) uint64 {
	kv.rev++
	kv.data[key] = &entry{
		bucket:   kv.bucket,
		key:      key,
		value:    append([]byte(nil), value...),
		revision: kv.rev,
		created:  time.Now(),
	}
	return kv.rev
}

type entry struct {
	bucket   string
	key      string
	value    []byte
	revision uint64
	created  time.Time
}

func (e *entry) Bucket() string                  { return e.bucket }
func (e *entry) Key() string                     { return e.key }
func (e *entry) Value() []byte                   { return e.value }
func (e *entry) Revision() uint64                { return e.revision }
func (e *entry) Created() time.Time              { return e.created }
func (e *entry) Delta() uint64                   { return 0 }
func (e *entry) Operation() jetstream.KeyValueOp { return jetstream.KeyValuePut }

type lister struct {
	keys chan string
}

func (l *lister) Keys() <-chan string { return l.keys }
func (l *lister) Stop() error         { return nil }
