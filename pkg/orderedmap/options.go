package orderedmap

import (
	"io"
	"log/slog"

	"github.com/UTD-JLA/hashdict/internal/keyorder"
)

const (
	DefaultBucketCount   = 1028
	DefaultHashCacheSize = 128
)

// Comparator orders two keys. It returns an error when the keys cannot be
// ordered against each other.
type Comparator[K any] func(a, b K) (int, error)

type options[K any] struct {
	bucketCount   int
	hashCacheSize int
	compare       Comparator[K]
	logger        *slog.Logger
}

type Option[K any] func(*options[K])

// WithBucketCount fixes the number of buckets. Values below 1 are ignored.
func WithBucketCount[K any](n int) Option[K] {
	return func(o *options[K]) {
		if n > 0 {
			o.bucketCount = n
		}
	}
}

// WithHashCacheSize sets how many bucket indices are memoized. Zero disables
// the memo.
func WithHashCacheSize[K any](n int) Option[K] {
	return func(o *options[K]) {
		if n >= 0 {
			o.hashCacheSize = n
		}
	}
}

func WithComparator[K any](c Comparator[K]) Option[K] {
	return func(o *options[K]) {
		if c != nil {
			o.compare = c
		}
	}
}

func WithLogger[K any](l *slog.Logger) Option[K] {
	return func(o *options[K]) {
		if l != nil {
			o.logger = l
		}
	}
}

func defaultOptions[K any]() options[K] {
	return options[K]{
		bucketCount:   DefaultBucketCount,
		hashCacheSize: DefaultHashCacheSize,
		compare: func(a, b K) (int, error) {
			return keyorder.Compare(a, b)
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
