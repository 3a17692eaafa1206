// AngelaMos | 2026
// allocator.go

package sample

// NextSampleID returns the identifier following currentMax, or 1 when no
// sample has been stored yet. Callers must read currentMax under the
// repository's sequence lock for the result to be unique.
func NextSampleID(currentMax *int64) int64 {
	if currentMax == nil {
		return 1
	}
	return *currentMax + 1
}
