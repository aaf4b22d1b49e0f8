package orderedmap

// Entry is a stored key/value pair together with the sequence number the
// key received when it was first inserted.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
	Order uint64
}

type Item[K comparable, V any] struct {
	Key   K
	Value V
}

type Stats struct {
	BucketCount   int
	ActiveBuckets int
	LargestBucket int
	Len           int
	NextOrder     uint64
}
