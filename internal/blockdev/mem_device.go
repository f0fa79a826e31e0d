package blockdev

// MemDevice is a byte-slice-backed Device, used for tests and for
// in-memory volumes. It holds the entire volume as one contiguous buffer.
type MemDevice struct {
	blockSize int
	buf       []byte
}

var _ Device = (*MemDevice)(nil)

// NewMemDevice allocates a zeroed in-memory volume of blockCount blocks
// of blockSize bytes each.
func NewMemDevice(blockSize, blockCount int) *MemDevice {
	if blockSize <= 0 || blockCount <= 0 {
		panic("blockdev: invalid geometry")
	}
	return &MemDevice{
		blockSize: blockSize,
		buf:       make([]byte, blockSize*blockCount),
	}
}

func (m *MemDevice) BlockSize() int  { return m.blockSize }
func (m *MemDevice) BlockCount() int { return len(m.buf) / m.blockSize }

func (m *MemDevice) ReadBlock(block int, dst []byte) error {
	if err := checkBounds(m, block, len(dst)); err != nil {
		return err
	}
	off := block * m.blockSize
	copy(dst, m.buf[off:off+m.blockSize])
	return nil
}

func (m *MemDevice) WriteBlock(block int, src []byte) error {
	if err := checkBounds(m, block, len(src)); err != nil {
		return err
	}
	off := block * m.blockSize
	copy(m.buf[off:off+m.blockSize], src)
	return nil
}
