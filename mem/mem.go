// Package mem provides allocation-avoiding helpers.
package mem

// DoubleBufferedSlice holds two slices that trade places on Swap. Producers
// append to Front; a consumer captures Front, swaps so new work lands in a
// fresh Front, and drains the captured slice. Both backing arrays are reused.
type DoubleBufferedSlice[T any] struct {
	Front, Back []T
}

func (db *DoubleBufferedSlice[T]) Swap() {
	db.Front, db.Back = db.Back[:0], db.Front[:0]
}
