package dirstore

import (
	"testing"

	"github.com/blockvol/blockfs/internal/blockdev"
	"github.com/blockvol/blockfs/internal/dirent"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *blockdev.MemDevice) {
	t.Helper()
	dev := blockdev.NewMemDevice(4096, 8)
	return New(dev), dev
}

func TestInsertFindRemove(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.ZeroBlock(0))

	slot, err := s.Insert(0, dirent.Entry{Name: "hello", Type: dirent.TypeFile, Size: 3, AccessRights: dirent.Read | dirent.Write})
	require.NoError(t, err)
	require.Equal(t, 0, slot)

	_, got, err := s.Find(0, "hello")
	require.NoError(t, err)
	require.Equal(t, uint32(3), got.Size)

	_, _, err = s.Find(0, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Remove(0, "hello"))
	_, _, err = s.Find(0, "hello")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestInsertDuplicate(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.ZeroBlock(0))
	_, err := s.Insert(0, dirent.Entry{Name: "a"})
	require.NoError(t, err)
	_, err = s.Insert(0, dirent.Entry{Name: "a"})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestInsertLowestFreeSlot(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.ZeroBlock(0))
	_, err := s.Insert(0, dirent.Entry{Name: "a"})
	require.NoError(t, err)
	_, err = s.Insert(0, dirent.Entry{Name: "b"})
	require.NoError(t, err)
	require.NoError(t, s.Remove(0, "a"))

	slot, err := s.Insert(0, dirent.Entry{Name: "c"})
	require.NoError(t, err)
	require.Equal(t, 0, slot, "freed slot 0 must be reused before a new higher slot")
}

func TestDirectoryFull(t *testing.T) {
	dev := blockdev.NewMemDevice(dirent.Size*2, 1) // room for exactly 2 entries
	s := New(dev)
	require.NoError(t, s.ZeroBlock(0))
	_, err := s.Insert(0, dirent.Entry{Name: "a"})
	require.NoError(t, err)
	_, err = s.Insert(0, dirent.Entry{Name: "b"})
	require.NoError(t, err)
	_, err = s.Insert(0, dirent.Entry{Name: "c"})
	require.ErrorIs(t, err, ErrDirectoryFull)
}

func TestInitDirBlockAndIsEmpty(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.InitDirBlock(2, 0))

	_, dot, err := s.Find(2, ".")
	require.NoError(t, err)
	require.Equal(t, uint16(2), dot.FirstBlock)

	_, dotdot, err := s.Find(2, "..")
	require.NoError(t, err)
	require.Equal(t, uint16(0), dotdot.FirstBlock)

	empty, err := s.IsEmpty(2)
	require.NoError(t, err)
	require.True(t, empty)

	_, err = s.Insert(2, dirent.Entry{Name: "child"})
	require.NoError(t, err)

	empty, err = s.IsEmpty(2)
	require.NoError(t, err)
	require.False(t, empty)
}

func TestEnumerateSkipsEmptySlots(t *testing.T) {
	s, _ := newTestStore(t)
	require.NoError(t, s.ZeroBlock(0))
	_, err := s.Insert(0, dirent.Entry{Name: "a"})
	require.NoError(t, err)
	_, err = s.Insert(0, dirent.Entry{Name: "b"})
	require.NoError(t, err)
	require.NoError(t, s.Remove(0, "a"))

	entries, err := s.Enumerate(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "b", entries[0].Name)
}
