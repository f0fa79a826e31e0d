package blockfs

// writeChain allocates enough blocks to hold len(data) bytes (at least
// one block, even for an empty payload), writes data across them
// zero-padding the tail of the final block, links them in the FAT, and
// returns the first block number.
//
// Allocation happens in two phases — gather every block index first,
// only then write and link — so a NoSpace failure partway through frees
// everything already taken rather than leaking FAT_EOF slots (spec.md
// §9's two-phase allocate-then-commit recommendation).
func (fs *FS) writeChain(data []byte) (firstBlock int, err error) {
	blockSize := fs.dev.BlockSize()
	total := (len(data) + blockSize - 1) / blockSize
	if total == 0 {
		total = 1
	}

	blocks := make([]int, 0, total)
	defer func() {
		if err != nil {
			fs.fat.FreeBlocks(blocks)
		}
	}()

	for i := 0; i < total; i++ {
		b, aerr := fs.fat.AllocateOne()
		if aerr != nil {
			err = NoSpace
			return 0, err
		}
		blocks = append(blocks, b)
	}

	buf := make([]byte, blockSize)
	for i, b := range blocks {
		clear(buf)
		start := i * blockSize
		end := start + blockSize
		if end > len(data) {
			end = len(data)
		}
		copy(buf, data[start:end])
		if werr := fs.dev.WriteBlock(b, buf); werr != nil {
			err = IOError
			return 0, err
		}
		if i+1 < len(blocks) {
			fs.fat.Link(b, blocks[i+1])
		}
	}

	if err := fs.fat.Persist(fs.dev); err != nil {
		return 0, IOError
	}
	return blocks[0], nil
}

// readChain reads exactly n bytes starting at the chain rooted at
// firstBlock, concatenating blocks in chain order.
func (fs *FS) readChain(firstBlock int, n uint32) ([]byte, error) {
	blockSize := fs.dev.BlockSize()
	out := make([]byte, 0, n)
	buf := make([]byte, blockSize)
	block := firstBlock
	remaining := int(n)
	for remaining > 0 {
		if err := fs.dev.ReadBlock(block, buf); err != nil {
			return nil, IOError
		}
		take := blockSize
		if take > remaining {
			take = remaining
		}
		out = append(out, buf[:take]...)
		remaining -= take
		if remaining == 0 {
			break
		}
		next, ok := fs.fat.ChainNext(block)
		if !ok {
			break // chain ended before n bytes were read; shouldn't happen under the invariants
		}
		block = next
	}
	return out, nil
}
