package fat

import (
	"testing"

	"github.com/blockvol/blockfs/internal/blockdev"
	"github.com/stretchr/testify/require"
)

func TestResetReservesRootAndFATBlocks(t *testing.T) {
	a := New(16)
	for i := 0; i < 16; i++ {
		switch i {
		case RootBlock, FATBlock:
			require.False(t, a.Free(i))
		default:
			require.True(t, a.Free(i))
		}
	}
}

func TestAllocateOneLowestFirst(t *testing.T) {
	a := New(8)
	b1, err := a.AllocateOne()
	require.NoError(t, err)
	require.Equal(t, 2, b1)

	b2, err := a.AllocateOne()
	require.NoError(t, err)
	require.Equal(t, 3, b2)

	a.FreeChain(b1)
	b3, err := a.AllocateOne()
	require.NoError(t, err)
	require.Equal(t, b1, b3, "lowest free slot must be reused before higher ones")
}

func TestAllocateOneNoSpace(t *testing.T) {
	a := New(4) // only indices 2,3 are allocatable
	_, err := a.AllocateOne()
	require.NoError(t, err)
	_, err = a.AllocateOne()
	require.NoError(t, err)
	_, err = a.AllocateOne()
	require.ErrorIs(t, err, ErrNoSpace)
}

func TestChainWalk(t *testing.T) {
	a := New(8)
	b1, _ := a.AllocateOne()
	b2, _ := a.AllocateOne()
	b3, _ := a.AllocateOne()
	a.Link(b1, b2)
	a.Link(b2, b3)

	chain := a.Walk(b1)
	require.Equal(t, []int{b1, b2, b3}, chain)

	next, ok := a.ChainNext(b3)
	require.False(t, ok)
	require.Zero(t, next)
}

func TestFreeChainStopsAtEOF(t *testing.T) {
	a := New(8)
	b1, _ := a.AllocateOne()
	b2, _ := a.AllocateOne()
	a.Link(b1, b2)

	a.FreeChain(b1)
	require.True(t, a.Free(b1))
	require.True(t, a.Free(b2))
}

func TestPersistAndLoadRoundTrip(t *testing.T) {
	dev := blockdev.NewMemDevice(4096, 16)
	a := New(16)
	b1, _ := a.AllocateOne()
	b2, _ := a.AllocateOne()
	a.Link(b1, b2)
	require.NoError(t, a.Persist(dev))

	loaded, err := Load(dev)
	require.NoError(t, err)
	require.Equal(t, a.entries, loaded.entries)
}
