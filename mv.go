package blockfs

import "github.com/blockvol/blockfs/internal/dirstore"

// Mv resolves src. If dst names an existing directory, src's entry is
// removed from its directory block and inserted (unchanged except
// possibly moved slot) into the destination; otherwise it is renamed in
// place by overwriting the name field. No data blocks are ever moved or
// reallocated (spec.md §4.4).
func (fs *FS) Mv(src, dst string) (int, error) {
	label := src + " -> " + dst

	srcParent, srcSlot, srcEntry, err := fs.lookup(src)
	if err != nil {
		return -1, wrapf(err, label)
	}

	destDir, destName, err := fs.destination(dst, srcEntry.Name)
	if err != nil {
		return -1, wrapf(err, label)
	}
	if err := validateName(destName); err != nil {
		return -1, wrapf(err, label)
	}

	if destDir == srcParent {
		if destName != srcEntry.Name {
			if _, _, ferr := fs.dir.Find(srcParent, destName); ferr == nil {
				return -1, wrapf(Duplicate, label)
			}
		}
		renamed := srcEntry
		renamed.Name = destName
		if err := fs.dir.WriteSlot(srcParent, srcSlot, renamed); err != nil {
			return -1, wrapf(IOError, label)
		}
		fs.log.Debug("blockfs: renamed entry", "src", src, "dst", dst)
		return 0, nil
	}

	if _, _, ferr := fs.dir.Find(destDir, destName); ferr == nil {
		return -1, wrapf(Duplicate, label)
	}

	moved := srcEntry
	moved.Name = destName
	if _, err := fs.dir.Insert(destDir, moved); err != nil {
		switch err {
		case dirstore.ErrDuplicate:
			return -1, wrapf(Duplicate, label)
		case dirstore.ErrDirectoryFull:
			return -1, wrapf(DirectoryFull, label)
		default:
			return -1, wrapf(IOError, label)
		}
	}
	if err := fs.dir.Remove(srcParent, srcEntry.Name); err != nil {
		return -1, wrapf(IOError, label)
	}

	fs.log.Debug("blockfs: moved entry", "src", src, "dst", dst)
	return 0, nil
}
