// Package batch splits an ordered identifier slice into fixed-size
// contiguous chunks.
package batch

// Split splits ids into contiguous chunks of length size; the last chunk
// is shorter if len(ids) is not a multiple of size. For empty input it
// returns an empty (nil) slice. size <= 0 returns nil.
func Split[T any](ids []T, size int) [][]T {
	if size <= 0 || len(ids) == 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
