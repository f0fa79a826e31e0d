package blockfs

// Rm resolves path to an existing entry and removes it. A directory must
// be empty (no entries beyond "." and "..") before it can be removed; a
// file's entire chain is freed (spec.md §4.4, §8).
func (fs *FS) Rm(path string) (int, error) {
	dirBlock, slot, e, err := fs.lookup(path)
	if err != nil {
		return -1, wrapf(err, path)
	}
	if slot == -1 {
		// path resolved to a directory with no backing parent slot (the
		// root, or a path ending in "/" with no remaining component):
		// nothing names a removable entry.
		return -1, wrapf(PathNotFound, path)
	}

	if e.IsDir() {
		empty, err := fs.dir.IsEmpty(int(e.FirstBlock))
		if err != nil {
			return -1, wrapf(IOError, path)
		}
		if !empty {
			return -1, wrapf(DirectoryNotEmpty, path)
		}
		fs.fat.FreeBlocks([]int{int(e.FirstBlock)})
	} else {
		fs.fat.FreeChain(int(e.FirstBlock))
	}
	if err := fs.fat.Persist(fs.dev); err != nil {
		return -1, wrapf(IOError, path)
	}

	if err := fs.dir.Remove(dirBlock, e.Name); err != nil {
		return -1, wrapf(IOError, path)
	}

	fs.log.Debug("blockfs: removed entry", "path", path)
	return 0, nil
}
