package blockfs

import "github.com/blockvol/blockfs/internal/dirent"

// Chmod resolves path to an existing entry and overwrites its access
// rights with mode, a combination of the READ/WRITE/EXECUTE bits
// (spec.md §3, §4.4). Any bit outside that set is InvalidMode.
func (fs *FS) Chmod(path string, mode uint8) (int, error) {
	if mode&^(dirent.Read|dirent.Write|dirent.Execute) != 0 {
		return -1, wrapf(InvalidMode, path)
	}

	dirBlock, slot, e, err := fs.lookup(path)
	if err != nil {
		return -1, wrapf(err, path)
	}
	if slot == -1 {
		return -1, wrapf(PathNotFound, path)
	}

	e.AccessRights = mode
	if err := fs.dir.WriteSlot(dirBlock, slot, e); err != nil {
		return -1, wrapf(IOError, path)
	}

	fs.log.Debug("blockfs: changed access rights", "path", path, "mode", mode)
	return 0, nil
}
