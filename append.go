package blockfs

// Append resolves both src and dst to file entries: src must have READ,
// dst must have WRITE. src's entire payload is read and appended to
// dst's content — the tail of dst's last block is filled first, then
// new blocks are allocated and linked as needed. dst's directory entry
// is rewritten with the new size; src is never modified (spec.md §4.4).
//
// New blocks are allocated and written before dst's entry is updated, so
// a NoSpace failure partway through leaves dst untouched (spec.md §9's
// two-phase allocate-then-commit recommendation).
func (fs *FS) Append(src, dst string) (int, error) {
	label := src + " -> " + dst

	_, _, srcEntry, err := fs.lookup(src)
	if err != nil {
		return -1, wrapf(err, label)
	}
	if srcEntry.IsDir() {
		return -1, wrapf(IsDirectory, label)
	}
	if !srcEntry.CanRead() {
		return -1, wrapf(PermissionDenied, label)
	}

	dstDir, dstSlot, dstEntry, err := fs.lookup(dst)
	if err != nil {
		return -1, wrapf(err, label)
	}
	if dstSlot == -1 {
		return -1, wrapf(PathNotFound, label)
	}
	if dstEntry.IsDir() {
		return -1, wrapf(IsDirectory, label)
	}
	if !dstEntry.CanWrite() {
		return -1, wrapf(PermissionDenied, label)
	}

	addition, err := fs.readChain(int(srcEntry.FirstBlock), srcEntry.Size)
	if err != nil {
		return -1, wrapf(err, label)
	}

	blockSize := fs.dev.BlockSize()
	// The last block is full when size is a non-zero multiple of the block
	// size; an empty file's single block has room from offset 0.
	tailOffset := int(dstEntry.Size) % blockSize
	if tailOffset == 0 && dstEntry.Size > 0 {
		tailOffset = blockSize
	}
	chain := fs.fat.Walk(int(dstEntry.FirstBlock))
	lastBlock := chain[len(chain)-1]

	appended, err := fs.appendToChain(lastBlock, tailOffset, addition)
	if err != nil {
		return -1, wrapf(err, label)
	}

	dstEntry.Size += uint32(len(addition))
	if err := fs.dir.WriteSlot(dstDir, dstSlot, dstEntry); err != nil {
		fs.fat.FreeBlocks(appended)
		fs.fat.Persist(fs.dev)
		return -1, wrapf(IOError, label)
	}

	fs.log.Debug("blockfs: appended file", "src", src, "dst", dst, "added", len(addition), "size", dstEntry.Size)
	return 0, nil
}

// appendToChain fills the remaining space of lastBlock starting at
// tailOffset, then allocates and writes further blocks as needed,
// linking them onto lastBlock via the FAT. It returns the newly
// allocated blocks (empty if everything fit in the existing tail), and
// rolls them back itself on failure.
func (fs *FS) appendToChain(lastBlock, tailOffset int, data []byte) (newBlocks []int, err error) {
	blockSize := fs.dev.BlockSize()

	if tailOffset < blockSize && len(data) > 0 {
		buf := make([]byte, blockSize)
		if err := fs.dev.ReadBlock(lastBlock, buf); err != nil {
			return nil, IOError
		}
		n := blockSize - tailOffset
		if n > len(data) {
			n = len(data)
		}
		copy(buf[tailOffset:], data[:n])
		if err := fs.dev.WriteBlock(lastBlock, buf); err != nil {
			return nil, IOError
		}
		data = data[n:]
	}

	if len(data) == 0 {
		return nil, nil
	}

	total := (len(data) + blockSize - 1) / blockSize
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
			return nil, err
		}
		blocks = append(blocks, b)
	}

	buf := make([]byte, blockSize)
	prev := lastBlock
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
			return nil, err
		}
		fs.fat.Link(prev, b)
		prev = b
	}

	if perr := fs.fat.Persist(fs.dev); perr != nil {
		err = IOError
		return nil, err
	}
	return blocks, nil
}
