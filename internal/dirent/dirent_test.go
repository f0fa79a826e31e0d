package dirent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	e := Entry{
		Name:         "hello.txt",
		Size:         1234,
		FirstBlock:   7,
		Type:         TypeFile,
		AccessRights: Read | Write,
	}
	var raw Raw
	require.NoError(t, Encode(e, &raw))
	require.False(t, raw.Empty())

	got := Decode(&raw)
	require.Equal(t, e, got)
}

func TestEncodeNameTooLong(t *testing.T) {
	e := Entry{Name: string(make([]byte, MaxNameLen+1))}
	var raw Raw
	require.ErrorIs(t, Encode(e, &raw), ErrNameTooLong)
}

func TestEmptySlot(t *testing.T) {
	var raw Raw
	require.True(t, raw.Empty())
	got := Decode(&raw)
	require.Equal(t, "", got.Name)
}

func TestEntriesPerBlock(t *testing.T) {
	require.Equal(t, 64, EntriesPerBlock(4096))
}

func TestRawAt(t *testing.T) {
	block := make([]byte, 4096)
	e := Entry{Name: "a", Type: TypeDir, FirstBlock: 3}
	raw := RawAt(block, 1)
	require.NoError(t, Encode(e, raw))

	got := Decode(RawAt(block, 1))
	require.Equal(t, e, got)

	// slot 0 is untouched
	require.True(t, RawAt(block, 0).Empty())
}
