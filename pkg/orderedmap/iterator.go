package orderedmap

import (
	"io"
)

var ErrFinished = io.EOF

type Iterator[T any] interface {
	Next() (T, error)
}

type sliceIterator[T any] struct {
	items []T
	pos   int
}

func (it *sliceIterator[T]) Next() (item T, err error) {
	if it.pos >= len(it.items) {
		err = ErrFinished
		return
	}

	item = it.items[it.pos]
	it.pos++

	return
}
