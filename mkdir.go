package blockfs

import (
	"github.com/blockvol/blockfs/internal/dirent"
	"github.com/blockvol/blockfs/internal/dirstore"
)

// Mkdir resolves path to (dir, name), allocates a single block for the
// new directory, initializes its "." and ".." slots, and inserts a
// TYPE_DIR entry into the parent (spec.md §4.4).
func (fs *FS) Mkdir(path string) (int, error) {
	dirBlock, name, err := fs.resolve(path)
	if err != nil {
		return -1, wrapf(err, path)
	}
	if err := validateName(name); err != nil {
		return -1, wrapf(err, path)
	}

	child, err := fs.fat.AllocateOne()
	if err != nil {
		return -1, wrapf(NoSpace, path)
	}
	if err := fs.fat.Persist(fs.dev); err != nil {
		fs.fat.FreeBlocks([]int{child})
		return -1, wrapf(IOError, path)
	}

	if err := fs.dir.InitDirBlock(child, dirBlock); err != nil {
		fs.fat.FreeBlocks([]int{child})
		fs.fat.Persist(fs.dev)
		return -1, wrapf(IOError, path)
	}

	_, err = fs.dir.Insert(dirBlock, dirent.Entry{
		Name:         name,
		FirstBlock:   uint16(child),
		Type:         dirent.TypeDir,
		AccessRights: dirent.Read | dirent.Write | dirent.Execute,
	})
	if err != nil {
		fs.fat.FreeBlocks([]int{child})
		fs.fat.Persist(fs.dev)
		switch err {
		case dirstore.ErrDuplicate:
			return -1, wrapf(Duplicate, path)
		case dirstore.ErrDirectoryFull:
			return -1, wrapf(DirectoryFull, path)
		default:
			return -1, wrapf(IOError, path)
		}
	}

	fs.log.Debug("blockfs: created directory", "path", path, "block", child)
	return 0, nil
}
