package orderedmap

type Map[K comparable, V any] interface {
	Set(key K, value V) error
	Get(key K) (V, bool)
	Delete(key K) error
	Contains(key K) bool
	Keys() []K
	Values() []V
	Items() []Item[K, V]
	Len() int
}

var _ Map[string, int] = (*Dict[string, int])(nil)
