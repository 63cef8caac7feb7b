// Package container provides the module-paired structure-of-arrays
// collection shared by the cell and cluster data models.
//
// A Paired container keeps one header per module next to that module's
// item collection. The two backing arrays always have the same length;
// every exported mutator preserves that, and the raw arrays are never
// handed out for writing.
package container

import (
	"errors"
	"fmt"
	"iter"
	"slices"
)

var (
	// ErrLengthMismatch is returned when headers and items differ in length.
	ErrLengthMismatch = errors.New("header and item counts differ")
	// ErrOutOfRange is returned by At for an index outside [0, Len()).
	ErrOutOfRange = errors.New("index out of range")
	// ErrNegativeSize is returned by Resize for n < 0.
	ErrNegativeSize = errors.New("negative size")
)

// Element is a read-only view of one module's header and items.
type Element[H, I any] struct {
	Header H
	Items  I
}

// Paired holds parallel header and item arrays indexed by module.
// The zero value is an empty, usable container.
type Paired[H, I any] struct {
	headers []H
	items   []I
}

// New returns an empty container with capacity for n modules.
func New[H, I any](n int) *Paired[H, I] {
	n = max(n, 0)
	return &Paired[H, I]{
		headers: make([]H, 0, n),
		items:   make([]I, 0, n),
	}
}

// FromSlices builds a container from existing parallel slices. The slices
// are copied.
func FromSlices[H, I any](headers []H, items []I) (*Paired[H, I], error) {
	if len(headers) != len(items) {
		return nil, fmt.Errorf("%w: %d headers, %d items", ErrLengthMismatch, len(headers), len(items))
	}
	return &Paired[H, I]{
		headers: slices.Clone(headers),
		items:   slices.Clone(items),
	}, nil
}

// Len returns the number of modules.
func (p *Paired[H, I]) Len() int {
	return len(p.headers)
}

// Push appends one module's header and items together.
func (p *Paired[H, I]) Push(header H, items I) {
	p.headers = append(p.headers, header)
	p.items = append(p.items, items)
}

// Resize grows the container with zero-valued entries or truncates it.
func (p *Paired[H, I]) Resize(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeSize, n)
	}
	if n <= len(p.headers) {
		clear(p.headers[n:])
		clear(p.items[n:])
		p.headers = p.headers[:n]
		p.items = p.items[:n]
		return nil
	}
	p.headers = append(p.headers, make([]H, n-len(p.headers))...)
	p.items = append(p.items, make([]I, n-len(p.items))...)
	return nil
}

// At returns module i. Out-of-range indices yield an error wrapping
// ErrOutOfRange.
func (p *Paired[H, I]) At(i int) (Element[H, I], error) {
	if i < 0 || i >= len(p.headers) {
		return Element[H, I]{}, fmt.Errorf("%w: %d (len %d)", ErrOutOfRange, i, len(p.headers))
	}
	return Element[H, I]{Header: p.headers[i], Items: p.items[i]}, nil
}

// Headers returns a copy of the header array.
func (p *Paired[H, I]) Headers() []H {
	return slices.Clone(p.headers)
}

// Items returns a copy of the item array. Item collections that are
// themselves slices still share storage with the container and must be
// treated as read-only.
func (p *Paired[H, I]) Items() []I {
	return slices.Clone(p.items)
}

// All iterates modules in index order.
func (p *Paired[H, I]) All() iter.Seq2[int, Element[H, I]] {
	return func(yield func(int, Element[H, I]) bool) {
		for i := range p.headers {
			if !yield(i, Element[H, I]{Header: p.headers[i], Items: p.items[i]}) {
				return
			}
		}
	}
}
