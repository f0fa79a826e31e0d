package blockfs

import "github.com/blockvol/blockfs/internal/fat"

// Format reinitializes the volume: the FAT is reset (blocks 0 and 1 →
// FAT_EOF, every other block → FAT_FREE), the root directory block is
// zeroed, the current working directory is reset to the root, and both
// are persisted. Returns (0, nil) on success.
func (fs *FS) Format() (int, error) {
	if fs.fat == nil {
		fs.fat = fat.New(fs.dev.BlockCount())
	} else {
		fs.fat.Reset()
	}
	if err := fs.dir.ZeroBlock(fat.RootBlock); err != nil {
		return -1, wrapf(IOError, "format")
	}
	if err := fs.fat.Persist(fs.dev); err != nil {
		return -1, wrapf(IOError, "format")
	}
	fs.cwd = fat.RootBlock
	fs.log.Info("blockfs: formatted volume", "blocks", fs.dev.BlockCount(), "blockSize", fs.dev.BlockSize())
	return 0, nil
}
