package blockdev

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemDeviceReadWriteRoundTrip(t *testing.T) {
	dev := NewMemDevice(512, 4)
	buf := make([]byte, 512)
	for i := range buf {
		buf[i] = byte(i)
	}
	require.NoError(t, dev.WriteBlock(2, buf))

	got := make([]byte, 512)
	require.NoError(t, dev.ReadBlock(2, got))
	require.Equal(t, buf, got)
}

func TestMemDeviceOutOfRange(t *testing.T) {
	dev := NewMemDevice(512, 4)
	buf := make([]byte, 512)
	require.ErrorIs(t, dev.ReadBlock(4, buf), ErrOutOfRange)
	require.ErrorIs(t, dev.ReadBlock(-1, buf), ErrOutOfRange)
	require.ErrorIs(t, dev.WriteBlock(4, buf), ErrOutOfRange)
}

func TestMemDeviceWrongBufferSize(t *testing.T) {
	dev := NewMemDevice(512, 4)
	require.Error(t, dev.ReadBlock(0, make([]byte, 10)))
	require.Error(t, dev.WriteBlock(0, make([]byte, 10)))
}

func TestFileDeviceReadWriteRoundTrip(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "blockfs-*.img")
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, GrowFile(f, 512, 4))

	dev, err := NewFileDevice(f, 512, 4)
	require.NoError(t, err)

	buf := make([]byte, 512)
	for i := range buf {
		buf[i] = byte(i * 3)
	}
	require.NoError(t, dev.WriteBlock(3, buf))

	got := make([]byte, 512)
	require.NoError(t, dev.ReadBlock(3, got))
	require.Equal(t, buf, got)
}

func TestFileDeviceOutOfRange(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "blockfs-*.img")
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, GrowFile(f, 512, 2))

	dev, err := NewFileDevice(f, 512, 2)
	require.NoError(t, err)
	require.ErrorIs(t, dev.ReadBlock(2, make([]byte, 512)), ErrOutOfRange)
}

func TestNewFileDeviceRejectsInvalidGeometry(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "blockfs-*.img")
	require.NoError(t, err)
	defer f.Close()

	_, err = NewFileDevice(f, 0, 4)
	require.Error(t, err)
	_, err = NewFileDevice(f, 512, 0)
	require.Error(t, err)
}
