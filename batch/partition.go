package batch

import (
	"errors"

	"github.com/akerlund/optbatch/options"
)

// ErrChunkSize rejects non-positive partition sizes.
var ErrChunkSize = errors.New("chunk size must be positive")

// Split partitions the batch into chunks of at most size rows, preserving
// row order. Each part gets its own copy of the rows and shares the parent's
// model value; computed outputs, when present, are sliced along with the
// inputs so a valued batch splits into valued parts. An empty batch yields
// zero parts.
func Split(b *OptionBatch, size int) ([]*OptionBatch, error) {
	if size <= 0 {
		return nil, ErrChunkSize
	}

	n := b.Len()
	parts := make([]*OptionBatch, 0, (n+size-1)/size)
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		part := New(b.Set.Slice(lo, hi), b.Model)
		if b.Prices != nil {
			part.Prices = append([]float64(nil), b.Prices[lo:hi]...)
		}
		if b.Greeks != nil {
			part.Greeks = append([]options.Greeks(nil), b.Greeks[lo:hi]...)
		}
		parts = append(parts, part)
	}
	return parts, nil
}

// Merge concatenates parts back into one batch in slice order, adopting the
// first part's model. Computed outputs are stitched together alongside the
// inputs, so merging the parts of a split-then-priced batch yields the same
// result as pricing the whole batch serially. Parts must agree on whether
// they have been valued; a mix would silently misalign rows and outputs.
// Merging nothing returns the default empty batch.
func Merge(parts []*OptionBatch) (*OptionBatch, error) {
	if len(parts) == 0 {
		return Default(), nil
	}

	priced := parts[0].Prices != nil
	withGreeks := parts[0].Greeks != nil
	for _, p := range parts[1:] {
		if (p.Prices != nil) != priced || (p.Greeks != nil) != withGreeks {
			return nil, errors.New("cannot merge a mix of valued and unvalued parts")
		}
	}

	out := New(&options.ContractSet{}, parts[0].Model)
	for _, p := range parts {
		out.Set.Append(p.Set)
		if priced {
			out.Prices = append(out.Prices, p.Prices...)
		}
		if withGreeks {
			out.Greeks = append(out.Greeks, p.Greeks...)
		}
	}
	return out, nil
}
