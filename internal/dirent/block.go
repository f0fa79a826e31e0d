package dirent

// EntriesPerBlock returns how many directory entries fit in one block of
// the given size.
func EntriesPerBlock(blockSize int) int {
	return blockSize / Size
}

// RawAt returns the Raw entry occupying slot within a raw directory
// block's bytes.
func RawAt(block []byte, slot int) *Raw {
	return (*Raw)(block[slot*Size : slot*Size+Size])
}
