package orderedmap

import (
	"cmp"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strings"

	"github.com/UTD-JLA/hashdict/internal/keyhash"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Dict is a hash table with a fixed number of buckets. Each bucket keeps its
// entries sorted by key, and every entry remembers when its key was first
// inserted so that traversal can return keys in insertion order.
//
// Dict is not safe for concurrent use. The zero value is not usable; create
// one with New.
type Dict[K comparable, V any] struct {
	buckets [][]Entry[K, V]
	active  map[int]struct{}
	keys    map[K]struct{}
	next    uint64

	memo    *lru.Cache[K, int]
	checker *keyhash.Checker
	compare Comparator[K]
	logger  *slog.Logger
}

func New[K comparable, V any](opts ...Option[K]) *Dict[K, V] {
	o := defaultOptions[K]()
	for _, opt := range opts {
		opt(&o)
	}

	d := &Dict[K, V]{
		buckets: make([][]Entry[K, V], o.bucketCount),
		active:  make(map[int]struct{}),
		keys:    make(map[K]struct{}),
		checker: keyhash.NewChecker(),
		compare: o.compare,
		logger:  o.logger,
	}

	if o.hashCacheSize > 0 {
		// only fails for a non-positive size
		d.memo, _ = lru.New[K, int](o.hashCacheSize)
	}

	return d
}

// bucketIndex returns the bucket for key. The key must already have passed
// the kind check.
func (d *Dict[K, V]) bucketIndex(key K) (int, error) {
	if d.memo != nil {
		if i, ok := d.memo.Get(key); ok {
			return i, nil
		}
	}

	sum, err := keyhash.Sum(key)
	if err != nil {
		return 0, err
	}

	i := int(sum % uint64(len(d.buckets)))

	if d.memo != nil {
		d.memo.Add(key, i)
	}

	return i, nil
}

// locate validates key and returns its bucket index.
func (d *Dict[K, V]) locate(key K) (int, error) {
	if err := d.checker.Check(key); err != nil {
		return 0, unsupported(key, err)
	}

	i, err := d.bucketIndex(key)
	if err != nil {
		return 0, unsupported(key, err)
	}

	return i, nil
}

// search returns the leftmost position at which key could be inserted into
// bucket and whether the entry at that position holds an equal key.
func (d *Dict[K, V]) search(bucket []Entry[K, V], key K) (int, bool, error) {
	lo, hi := 0, len(bucket)

	for lo < hi {
		mid := int(uint(lo+hi) >> 1)

		c, err := d.compare(bucket[mid].Key, key)
		if err != nil {
			return 0, false, unsupported(key, err)
		}

		if c < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	if lo == len(bucket) {
		return lo, false, nil
	}

	c, err := d.compare(bucket[lo].Key, key)
	if err != nil {
		return 0, false, unsupported(key, err)
	}

	return lo, c == 0, nil
}

func (d *Dict[K, V]) Get(key K) (value V, ok bool) {
	if d.checker.Check(key) != nil {
		return
	}

	if _, ok = d.keys[key]; !ok {
		return
	}

	i, err := d.bucketIndex(key)
	if err != nil {
		return value, false
	}

	bucket := d.buckets[i]

	pos, found, err := d.search(bucket, key)
	if err != nil || !found {
		return value, false
	}

	return bucket[pos].Value, true
}

// Set assigns value to key. A key that is already present keeps its
// insertion order. Nothing is modified when an error is returned.
func (d *Dict[K, V]) Set(key K, value V) error {
	i, err := d.locate(key)
	if err != nil {
		return err
	}

	bucket := d.buckets[i]
	if bucket == nil {
		bucket = make([]Entry[K, V], 0, 1)
	}

	pos, found, err := d.search(bucket, key)
	if err != nil {
		return err
	}

	if found {
		old := bucket[pos]
		if old.Key != key {
			// ordering-equal but not identical: the new key takes its place
			delete(d.keys, old.Key)
		}
		bucket[pos] = Entry[K, V]{Key: key, Value: value, Order: old.Order}
	} else {
		bucket = slices.Insert(bucket, pos, Entry[K, V]{Key: key, Value: value, Order: d.next})
		d.next++
	}

	d.buckets[i] = bucket
	d.keys[key] = struct{}{}

	if _, ok := d.active[i]; !ok {
		d.active[i] = struct{}{}
		d.logger.Debug("bucket activated", slog.Int("bucket", i))
	}

	return nil
}

// Delete removes key. Deleting a key that is not present is a no-op.
func (d *Dict[K, V]) Delete(key K) error {
	i, err := d.locate(key)
	if err != nil {
		return err
	}

	if _, ok := d.keys[key]; !ok {
		return nil
	}

	bucket := d.buckets[i]

	pos, found, err := d.search(bucket, key)
	if err != nil {
		return err
	}

	if found {
		bucket = slices.Delete(bucket, pos, pos+1)
		d.buckets[i] = bucket
	}

	if len(bucket) == 0 {
		delete(d.active, i)
		d.logger.Debug("bucket deactivated", slog.Int("bucket", i))
	}

	delete(d.keys, key)

	return nil
}

func (d *Dict[K, V]) Contains(key K) bool {
	if d.checker.Check(key) != nil {
		return false
	}

	_, ok := d.keys[key]

	return ok
}

func (d *Dict[K, V]) Len() int {
	return len(d.keys)
}

// Clear removes every entry. Orders handed out afterwards continue from
// where the counter stopped.
func (d *Dict[K, V]) Clear() {
	d.buckets = make([][]Entry[K, V], len(d.buckets))
	d.active = make(map[int]struct{})
	d.keys = make(map[K]struct{})
}

// Entries returns a copy of all entries sorted by insertion order.
func (d *Dict[K, V]) Entries() []Entry[K, V] {
	entries := make([]Entry[K, V], 0, len(d.keys))

	for i := range d.active {
		entries = append(entries, d.buckets[i]...)
	}

	slices.SortFunc(entries, func(a, b Entry[K, V]) int {
		return cmp.Compare(a.Order, b.Order)
	})

	return entries
}

func (d *Dict[K, V]) Keys() []K {
	entries := d.Entries()
	keys := make([]K, len(entries))

	for i, e := range entries {
		keys[i] = e.Key
	}

	return keys
}

func (d *Dict[K, V]) Values() []V {
	entries := d.Entries()
	values := make([]V, len(entries))

	for i, e := range entries {
		values[i] = e.Value
	}

	return values
}

func (d *Dict[K, V]) Items() []Item[K, V] {
	entries := d.Entries()
	items := make([]Item[K, V], len(entries))

	for i, e := range entries {
		items[i] = Item[K, V]{Key: e.Key, Value: e.Value}
	}

	return items
}

// All iterates over a snapshot taken when iteration starts.
func (d *Dict[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, e := range d.Entries() {
			if !yield(e.Key, e.Value) {
				return
			}
		}
	}
}

// Iterator returns a pull iterator over a snapshot of the items.
func (d *Dict[K, V]) Iterator() Iterator[Item[K, V]] {
	return &sliceIterator[Item[K, V]]{items: d.Items()}
}

func (d *Dict[K, V]) Stats() Stats {
	s := Stats{
		BucketCount:   len(d.buckets),
		ActiveBuckets: len(d.active),
		Len:           len(d.keys),
		NextOrder:     d.next,
	}

	for i := range d.active {
		s.LargestBucket = max(s.LargestBucket, len(d.buckets[i]))
	}

	return s
}

func (d *Dict[K, V]) String() string {
	var sb strings.Builder

	sb.WriteString("dict[")

	for i, item := range d.Items() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%v:%v", item.Key, item.Value)
	}

	sb.WriteByte(']')

	return sb.String()
}
