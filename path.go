package blockfs

import (
	"strings"

	"github.com/blockvol/blockfs/internal/dirent"
	"github.com/blockvol/blockfs/internal/dirstore"
	"github.com/blockvol/blockfs/internal/fat"
)

// split breaks path into components, dropping empty components (repeated
// or trailing slashes) and "." (spec.md §4.4).
func split(path string) (components []string, absolute bool) {
	absolute = strings.HasPrefix(path, "/")
	for _, c := range strings.Split(path, "/") {
		if c == "" || c == "." {
			continue
		}
		components = append(components, c)
	}
	return components, absolute
}

// descend moves from block into the named child, which must exist and
// be a directory. "." is a no-op; ".." follows the parent pointer (the
// root's parent is the root itself, since the root block carries no ".."
// entry of its own — spec.md §4.4, §9).
func (fs *FS) descend(block int, name string) (int, error) {
	switch name {
	case "..":
		if block == fat.RootBlock {
			return fat.RootBlock, nil
		}
		_, e, err := fs.dir.Find(block, "..")
		if err != nil {
			return 0, PathNotFound
		}
		return int(e.FirstBlock), nil
	default:
		_, e, err := fs.dir.Find(block, name)
		if err == dirstore.ErrNotFound {
			return 0, PathNotFound
		} else if err != nil {
			return 0, IOError
		}
		if !e.IsDir() {
			return 0, NotADirectory
		}
		return int(e.FirstBlock), nil
	}
}

// resolve implements the resolution contract of spec.md §4.4: it splits
// path into components, descends into every component but the last, and
// returns the block of the deepest resolved directory plus the
// unresolved final component name. A trailing slash marks the path as
// naming a directory: every component, the last one included, is then
// descended and the final name comes back empty ("a/b/" resolves to b's
// own block and ""). A path with no real components left at all ("/",
// ".") also comes back with an empty final name.
func (fs *FS) resolve(path string) (parent int, name string, err error) {
	components, absolute := split(path)

	block := fs.cwd
	if absolute {
		block = fat.RootBlock
	}

	if len(components) == 0 {
		return block, "", nil
	}

	walk, last := components[:len(components)-1], components[len(components)-1]
	if strings.HasSuffix(path, "/") {
		walk, last = components, ""
	}

	for _, c := range walk {
		block, err = fs.descend(block, c)
		if err != nil {
			return 0, "", err
		}
	}

	return block, last, nil
}

// lookup resolves path to an existing entry, returning its containing
// directory block, slot index, and decoded entry. Used by operations
// that need the final component to already exist (cat, rm, cd, chmod,
// append's two file operands, append/cp's source, mv's source).
func (fs *FS) lookup(path string) (dirBlock, slot int, e dirent.Entry, err error) {
	dirBlock, name, err := fs.resolve(path)
	if err != nil {
		return 0, 0, dirent.Entry{}, err
	}
	if name == "" {
		// Path resolved to a directory itself (e.g. "a/b/" or "."):
		// report it directly rather than looking up a name inside it.
		return dirBlock, -1, dirent.Entry{
			Name:       "",
			FirstBlock: uint16(dirBlock),
			Type:       dirent.TypeDir,
		}, nil
	}
	slot, e, err = fs.dir.Find(dirBlock, name)
	if err == dirstore.ErrNotFound {
		return 0, 0, dirent.Entry{}, NotFound
	} else if err != nil {
		return 0, 0, dirent.Entry{}, IOError
	}
	return dirBlock, slot, e, nil
}
