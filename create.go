package blockfs

import (
	"io"

	"github.com/blockvol/blockfs/internal/dirent"
	"github.com/blockvol/blockfs/internal/dirstore"
)

// readLine reads a single '\n'-terminated line from r one byte at a
// time, returning it without the trailing '\n'. Reading byte-by-byte
// (rather than through a bufio.Scanner) matters here because r is
// usually a shared stream that the REPL keeps reading commands from
// afterward — a buffering reader would swallow bytes past the line it
// returns, losing whatever command follows the payload.
func readLine(r io.Reader) (line []byte, err error) {
	buf := make([]byte, 1)
	for {
		n, rerr := r.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				return line, nil
			}
			line = append(line, buf[0])
		}
		if rerr != nil {
			if rerr == io.EOF {
				return line, io.EOF
			}
			return line, rerr
		}
	}
}

// readPayloadLines implements the standard input contract of spec.md
// §6: lines are read until a blank line, which is consumed but not
// included; each non-blank line contributes its bytes plus a single
// trailing '\n'.
func readPayloadLines(r io.Reader) []byte {
	var payload []byte
	for {
		line, err := readLine(r)
		if len(line) == 0 {
			break
		}
		payload = append(payload, line...)
		payload = append(payload, '\n')
		if err != nil {
			break
		}
	}
	return payload
}

// Create resolves path to (dir, name), reads the file payload from r
// (lines until a blank line, spec.md §6), allocates a chain sized to
// hold it, and inserts a new TYPE_FILE entry with READ|WRITE rights.
func (fs *FS) Create(path string, r io.Reader) (int, error) {
	dirBlock, name, err := fs.resolve(path)
	if err != nil {
		return -1, wrapf(err, path)
	}
	if err := validateName(name); err != nil {
		return -1, wrapf(err, path)
	}

	payload := readPayloadLines(r)

	first, err := fs.writeChain(payload)
	if err != nil {
		return -1, wrapf(err, path)
	}

	_, err = fs.dir.Insert(dirBlock, dirent.Entry{
		Name:         name,
		Size:         uint32(len(payload)),
		FirstBlock:   uint16(first),
		Type:         dirent.TypeFile,
		AccessRights: dirent.Read | dirent.Write,
	})
	if err != nil {
		fs.fat.FreeChain(first)
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

	fs.log.Debug("blockfs: created file", "path", path, "size", len(payload), "firstBlock", first)
	return 0, nil
}
