package dirent

import "errors"

// ErrNameTooLong is returned by Encode when a name exceeds MaxNameLen.
var ErrNameTooLong = errors.New("dirent: name exceeds maximum length")
