package blockfs

import (
	"io"
	"strings"

	"github.com/blockvol/blockfs/internal/fat"
)

// Pwd writes the absolute path of the current directory to w: starting
// from cwd, it repeatedly ascends via "..", and in each parent finds the
// entry (excluding "." and "..") whose first_blk equals the child block,
// prepending its name. The result always has a leading and trailing "/"
// (spec.md §4.4).
func (fs *FS) Pwd(w io.Writer) (int, error) {
	var parts []string
	child := fs.cwd
	for child != fat.RootBlock {
		_, up, err := fs.dir.Find(child, "..")
		if err != nil {
			return -1, wrapf(IOError, "pwd")
		}
		parentBlock := int(up.FirstBlock)

		entries, err := fs.dir.Enumerate(parentBlock)
		if err != nil {
			return -1, wrapf(IOError, "pwd")
		}
		name := ""
		for _, e := range entries {
			if e.Name == "." || e.Name == ".." {
				continue
			}
			if int(e.FirstBlock) == child {
				name = e.Name
				break
			}
		}
		parts = append([]string{name}, parts...)
		child = parentBlock
	}

	if _, err := io.WriteString(w, "/"+strings.Join(parts, "/")+"/"); err != nil {
		return -1, wrapf(IOError, "pwd")
	}
	return 0, nil
}
