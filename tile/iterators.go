package tile

import (
	"errors"
	"iter"
)

var errStopIteration = errors.New("stop iteration")

// IterTiles adapts a Visitor to a range-over-func iterator yielding each
// tile's address and data. A visit error that is not an early break has no
// way out of the loop and panics; callers that need to handle store errors
// use the Visitor directly.
func IterTiles(v Visitor) iter.Seq2[ID, []byte] {
	return func(yield func(ID, []byte) bool) {
		err := v.VisitTiles(func(tileID ID, tileData []byte) error {
			if yield(tileID, tileData) {
				return nil
			}
			return errStopIteration
		})
		if err != nil && !errors.Is(err, errStopIteration) {
			panic(err)
		}
	}
}
