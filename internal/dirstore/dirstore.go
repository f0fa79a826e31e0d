// Package dirstore encodes a directory as a single block of fixed-size
// entries and provides slotted insertion, deletion, and lookup by name
// within a given directory block.
package dirstore

import (
	"errors"

	"github.com/blockvol/blockfs/internal/blockdev"
	"github.com/blockvol/blockfs/internal/dirent"
)

// ErrNotFound is returned by Find and Remove when no entry matches name.
var ErrNotFound = errors.New("dirstore: entry not found")

// ErrDuplicate is returned by Insert when name already names a non-empty
// slot in the target directory block.
var ErrDuplicate = errors.New("dirstore: duplicate name")

// ErrDirectoryFull is returned by Insert when the directory block has no
// free slot.
var ErrDirectoryFull = errors.New("dirstore: directory full")

// Store reads and writes directory blocks on a Device.
type Store struct {
	dev blockdev.Device
}

// New returns a Store backed by dev.
func New(dev blockdev.Device) *Store {
	return &Store{dev: dev}
}

func (s *Store) readBlock(block int) ([]byte, error) {
	buf := make([]byte, s.dev.BlockSize())
	if err := s.dev.ReadBlock(block, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func (s *Store) entriesPerBlock() int {
	return dirent.EntriesPerBlock(s.dev.BlockSize())
}

// Find does a linear scan for an exact byte-wise match against name,
// returning the first matching slot.
func (s *Store) Find(block int, name string) (slot int, e dirent.Entry, err error) {
	buf, err := s.readBlock(block)
	if err != nil {
		return 0, dirent.Entry{}, err
	}
	n := s.entriesPerBlock()
	for i := 0; i < n; i++ {
		raw := dirent.RawAt(buf, i)
		if raw.Empty() {
			continue
		}
		got := dirent.Decode(raw)
		if got.Name == name {
			return i, got, nil
		}
	}
	return 0, dirent.Entry{}, ErrNotFound
}

// Insert rejects a duplicate name, otherwise places e in the
// lowest-indexed free slot and writes the block back.
func (s *Store) Insert(block int, e dirent.Entry) (slot int, err error) {
	buf, err := s.readBlock(block)
	if err != nil {
		return 0, err
	}
	n := s.entriesPerBlock()
	free := -1
	for i := 0; i < n; i++ {
		raw := dirent.RawAt(buf, i)
		if raw.Empty() {
			if free == -1 {
				free = i
			}
			continue
		}
		if dirent.Decode(raw).Name == e.Name {
			return 0, ErrDuplicate
		}
	}
	if free == -1 {
		return 0, ErrDirectoryFull
	}
	if err := dirent.Encode(e, dirent.RawAt(buf, free)); err != nil {
		return 0, err
	}
	if err := s.dev.WriteBlock(block, buf); err != nil {
		return 0, err
	}
	return free, nil
}

// WriteSlot overwrites the entry at a known slot and writes the block
// back. Used by operations that already hold the slot index (mv, chmod,
// append's directory-entry update).
func (s *Store) WriteSlot(block, slot int, e dirent.Entry) error {
	buf, err := s.readBlock(block)
	if err != nil {
		return err
	}
	if err := dirent.Encode(e, dirent.RawAt(buf, slot)); err != nil {
		return err
	}
	return s.dev.WriteBlock(block, buf)
}

// Remove zeroes the matching slot and writes the block back.
func (s *Store) Remove(block int, name string) error {
	buf, err := s.readBlock(block)
	if err != nil {
		return err
	}
	n := s.entriesPerBlock()
	for i := 0; i < n; i++ {
		raw := dirent.RawAt(buf, i)
		if raw.Empty() {
			continue
		}
		if dirent.Decode(raw).Name == name {
			*raw = dirent.Raw{}
			return s.dev.WriteBlock(block, buf)
		}
	}
	return ErrNotFound
}

// Enumerate returns all non-empty entries of block, in slot order.
func (s *Store) Enumerate(block int) ([]dirent.Entry, error) {
	buf, err := s.readBlock(block)
	if err != nil {
		return nil, err
	}
	n := s.entriesPerBlock()
	out := make([]dirent.Entry, 0, n)
	for i := 0; i < n; i++ {
		raw := dirent.RawAt(buf, i)
		if raw.Empty() {
			continue
		}
		out = append(out, dirent.Decode(raw))
	}
	return out, nil
}

// InitDirBlock formats block as a fresh non-root directory: slot 0 holds
// "." pointing at block itself, slot 1 holds ".." pointing at parent.
// Both are written before callers insert further entries (spec.md §3
// invariant 6).
func (s *Store) InitDirBlock(block, parent int) error {
	buf := make([]byte, s.dev.BlockSize())
	self := dirent.Entry{
		Name:         ".",
		FirstBlock:   uint16(block),
		Type:         dirent.TypeDir,
		AccessRights: dirent.Read | dirent.Write | dirent.Execute,
	}
	up := dirent.Entry{
		Name:         "..",
		FirstBlock:   uint16(parent),
		Type:         dirent.TypeDir,
		AccessRights: dirent.Read | dirent.Write | dirent.Execute,
	}
	if err := dirent.Encode(self, dirent.RawAt(buf, 0)); err != nil {
		return err
	}
	if err := dirent.Encode(up, dirent.RawAt(buf, 1)); err != nil {
		return err
	}
	return s.dev.WriteBlock(block, buf)
}

// ZeroBlock clears block entirely — used by format for the root
// directory block, which has no "." or ".." slots of its own.
func (s *Store) ZeroBlock(block int) error {
	buf := make([]byte, s.dev.BlockSize())
	return s.dev.WriteBlock(block, buf)
}

// IsEmpty reports whether every slot beyond indices 0 and 1 is free —
// the rm emptiness rule for directories (spec.md §4.4, §8).
func (s *Store) IsEmpty(block int) (bool, error) {
	buf, err := s.readBlock(block)
	if err != nil {
		return false, err
	}
	n := s.entriesPerBlock()
	for i := 2; i < n; i++ {
		if !dirent.RawAt(buf, i).Empty() {
			return false, nil
		}
	}
	return true, nil
}
