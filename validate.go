package blockfs

import "github.com/blockvol/blockfs/internal/dirent"

// validateName enforces the non-empty, <= MAX_NAME_LEN rule shared by
// create, mkdir, cp, and mv's destination name (spec.md §4.4).
func validateName(name string) error {
	if name == "" {
		return NotFound
	}
	if len(name) > dirent.MaxNameLen {
		return NameTooLong
	}
	return nil
}
