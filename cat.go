package blockfs

import "io"

// Cat resolves path to an existing TYPE_FILE entry with READ set and
// writes exactly its size bytes (never block-rounded) to w.
func (fs *FS) Cat(path string, w io.Writer) (int, error) {
	_, _, e, err := fs.lookup(path)
	if err != nil {
		return -1, wrapf(err, path)
	}
	if e.IsDir() {
		return -1, wrapf(IsDirectory, path)
	}
	if !e.CanRead() {
		return -1, wrapf(PermissionDenied, path)
	}

	data, err := fs.readChain(int(e.FirstBlock), e.Size)
	if err != nil {
		return -1, wrapf(err, path)
	}
	if _, err := w.Write(data); err != nil {
		return -1, wrapf(IOError, path)
	}
	return 0, nil
}
