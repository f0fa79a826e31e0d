package blockfs

// Cd changes the current working directory. "." is a no-op; ".."
// follows the parent link of the current directory; any other path is
// resolved and must name a directory (spec.md §4.4).
func (fs *FS) Cd(path string) (int, error) {
	switch path {
	case "", ".":
		return 0, nil
	}

	parent, name, err := fs.resolve(path)
	if err != nil {
		return -1, wrapf(err, path)
	}

	target := parent
	if name != "" {
		target, err = fs.descend(parent, name)
		if err != nil {
			return -1, wrapf(err, path)
		}
	}

	fs.cwd = target
	fs.log.Debug("blockfs: changed directory", "path", path, "block", target)
	return 0, nil
}
