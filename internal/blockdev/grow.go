package blockdev

import "os"

// GrowFile resizes f to exactly blockSize*blockCount bytes, creating a
// sparse file if it is shorter than that. This is the usual way to turn
// a fresh *os.File into the backing store for a FileDevice before the
// first Format.
func GrowFile(f *os.File, blockSize, blockCount int) error {
	size := int64(blockSize) * int64(blockCount)
	return f.Truncate(size)
}
