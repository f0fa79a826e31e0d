package blockfs

import (
	"github.com/blockvol/blockfs/internal/dirent"
	"github.com/blockvol/blockfs/internal/dirstore"
)

// Cp resolves src to a file entry. If dst names an existing directory
// the copy is placed inside it under src's final name; otherwise it
// becomes a new entry under dst's resolved parent with dst's final
// name. Content and access rights are copied; the two chains are
// disjoint (spec.md §4.4, §8).
func (fs *FS) Cp(src, dst string) (int, error) {
	label := src + " -> " + dst

	_, _, srcEntry, err := fs.lookup(src)
	if err != nil {
		return -1, wrapf(err, label)
	}
	if srcEntry.IsDir() {
		return -1, wrapf(IsDirectory, label)
	}

	destDir, destName, err := fs.destination(dst, srcEntry.Name)
	if err != nil {
		return -1, wrapf(err, label)
	}
	if err := validateName(destName); err != nil {
		return -1, wrapf(err, label)
	}

	data, err := fs.readChain(int(srcEntry.FirstBlock), srcEntry.Size)
	if err != nil {
		return -1, wrapf(err, label)
	}

	first, err := fs.writeChain(data)
	if err != nil {
		return -1, wrapf(err, label)
	}

	_, err = fs.dir.Insert(destDir, dirent.Entry{
		Name:         destName,
		Size:         srcEntry.Size,
		FirstBlock:   uint16(first),
		Type:         srcEntry.Type,
		AccessRights: srcEntry.AccessRights,
	})
	if err != nil {
		fs.fat.FreeChain(first)
		fs.fat.Persist(fs.dev)
		switch err {
		case dirstore.ErrDuplicate:
			return -1, wrapf(Duplicate, label)
		case dirstore.ErrDirectoryFull:
			return -1, wrapf(DirectoryFull, label)
		default:
			return -1, wrapf(IOError, label)
		}
	}

	fs.log.Debug("blockfs: copied file", "src", src, "dst", dst, "size", srcEntry.Size)
	return 0, nil
}

// destination resolves dst for cp/mv: if it names an existing directory
// the placement target is that directory with fallbackName; otherwise
// it is dst's own resolved (parent, name).
func (fs *FS) destination(dst, fallbackName string) (dirBlock int, name string, err error) {
	parent, finalName, err := fs.resolve(dst)
	if err != nil {
		return 0, "", err
	}
	if finalName == "" {
		// dst's path already names a directory (e.g. a trailing slash).
		return parent, fallbackName, nil
	}
	_, e, ferr := fs.dir.Find(parent, finalName)
	if ferr == nil && e.IsDir() {
		return int(e.FirstBlock), fallbackName, nil
	}
	if ferr != nil && ferr != dirstore.ErrNotFound {
		return 0, "", IOError
	}
	return parent, finalName, nil
}
