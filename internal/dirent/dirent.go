// Package dirent implements the packed, little-endian, 64-byte directory
// entry record that is the sole on-disk representation of files and
// sub-directories. The layout is fixed and portable across
// implementations: name[56] | size(u32) | first_blk(u16) | type(u8) |
// access_rights(u8).
package dirent

import "encoding/binary"

// Size is the fixed size in bytes of one packed directory entry.
const Size = 64

// MaxNameLen is the maximum entry name length in bytes, leaving room for
// the trailing NUL in the 56-byte name field.
const MaxNameLen = 55

// Entry kinds.
const (
	TypeFile uint8 = 0
	TypeDir  uint8 = 1
)

// Access-right bits.
const (
	Read    uint8 = 0x04
	Write   uint8 = 0x02
	Execute uint8 = 0x01
)

const (
	offName      = 0
	offSize      = 56
	offFirstBlk  = 60
	offType      = 62
	offAccess    = 63
	nameFieldLen = 56
)

// Raw is a packed directory entry viewed directly over its on-disk bytes.
// It never copies: callers that need a stable value should call
// Decode/Encode instead.
type Raw [Size]byte

// Entry is the decoded, convenient-to-use form of a directory entry.
type Entry struct {
	Name         string
	Size         uint32
	FirstBlock   uint16
	Type         uint8
	AccessRights uint8
}

// Empty reports whether raw represents a free slot (first name byte is 0).
func (r *Raw) Empty() bool {
	return r[offName] == 0
}

// Decode parses the packed bytes into an Entry.
func Decode(raw *Raw) Entry {
	nameBytes := raw[offName : offName+nameFieldLen]
	nul := indexNUL(nameBytes)
	return Entry{
		Name:         string(nameBytes[:nul]),
		Size:         binary.LittleEndian.Uint32(raw[offSize:]),
		FirstBlock:   binary.LittleEndian.Uint16(raw[offFirstBlk:]),
		Type:         raw[offType],
		AccessRights: raw[offAccess],
	}
}

// Encode packs e into raw, zeroing any bytes Entry does not use.
func Encode(e Entry, raw *Raw) error {
	if len(e.Name) > MaxNameLen {
		return ErrNameTooLong
	}
	*raw = Raw{}
	copy(raw[offName:offName+nameFieldLen], e.Name)
	binary.LittleEndian.PutUint32(raw[offSize:], e.Size)
	binary.LittleEndian.PutUint16(raw[offFirstBlk:], e.FirstBlock)
	raw[offType] = e.Type
	raw[offAccess] = e.AccessRights
	return nil
}

func indexNUL(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return len(b)
}

// IsDir reports whether e names a directory.
func (e Entry) IsDir() bool { return e.Type == TypeDir }

// CanRead reports whether the Read bit is set.
func (e Entry) CanRead() bool { return e.AccessRights&Read != 0 }

// CanWrite reports whether the Write bit is set.
func (e Entry) CanWrite() bool { return e.AccessRights&Write != 0 }
