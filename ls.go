package blockfs

import (
	"fmt"
	"io"
	"strconv"

	"github.com/blockvol/blockfs/internal/dirent"
	"golang.org/x/exp/slices"
)

// rightsString renders the fixed-order r/-, w/-, x/- access string.
func rightsString(rights uint8) string {
	r := byte('-')
	w := byte('-')
	x := byte('-')
	if rights&dirent.Read != 0 {
		r = 'r'
	}
	if rights&dirent.Write != 0 {
		w = 'w'
	}
	if rights&dirent.Execute != 0 {
		x = 'x'
	}
	return string([]byte{r, w, x})
}

// Ls lists the current directory to w: one header line followed by one
// row per non-empty entry, sorted by name ascending byte-wise (spec.md
// §4.4).
func (fs *FS) Ls(w io.Writer) (int, error) {
	entries, err := fs.dir.Enumerate(fs.cwd)
	if err != nil {
		return -1, wrapf(IOError, "ls")
	}

	slices.SortFunc(entries, func(a, b dirent.Entry) int {
		if a.Name < b.Name {
			return -1
		} else if a.Name > b.Name {
			return 1
		}
		return 0
	})

	if _, err := fmt.Fprintf(w, "name\t type\t accessrights\t size\n"); err != nil {
		return -1, wrapf(IOError, "ls")
	}
	for _, e := range entries {
		kind := "file"
		sizeStr := strconv.FormatUint(uint64(e.Size), 10)
		if e.IsDir() {
			kind = "dir"
			sizeStr = "-"
		}
		_, err := fmt.Fprintf(w, "%s\t %s\t %s\t %s\n", e.Name, kind, rightsString(e.AccessRights), sizeStr)
		if err != nil {
			return -1, wrapf(IOError, "ls")
		}
	}
	return 0, nil
}
