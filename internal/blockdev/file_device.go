package blockdev

import (
	"errors"
	"io"
)

// ReadWriterAt is both a ReaderAt and a WriterAt, matching the subset of
// *os.File this package actually needs — callers can pass any backing
// store that implements it (a real file, a memory-mapped region, ...).
type ReadWriterAt interface {
	io.ReaderAt
	io.WriterAt
}

// FileDevice adapts a ReadWriterAt (typically an *os.File) of fixed
// geometry into a Device. The caller is responsible for sizing the
// backing store to blockSize*blockCount bytes before use; GrowFile does
// this for *os.File specifically.
type FileDevice struct {
	rwa        ReadWriterAt
	blockSize  int
	blockCount int
}

var _ Device = (*FileDevice)(nil)

// NewFileDevice wraps rwa as a Device of the given fixed geometry.
func NewFileDevice(rwa ReadWriterAt, blockSize, blockCount int) (*FileDevice, error) {
	if blockSize <= 0 || blockCount <= 0 {
		return nil, errors.New("blockdev: invalid geometry")
	}
	return &FileDevice{rwa: rwa, blockSize: blockSize, blockCount: blockCount}, nil
}

func (f *FileDevice) BlockSize() int  { return f.blockSize }
func (f *FileDevice) BlockCount() int { return f.blockCount }

func (f *FileDevice) ReadBlock(block int, dst []byte) error {
	if err := checkBounds(f, block, len(dst)); err != nil {
		return err
	}
	off := int64(block) * int64(f.blockSize)
	n, err := f.rwa.ReadAt(dst, off)
	if err != nil && !(err == io.EOF && n == len(dst)) {
		return err
	}
	return nil
}

func (f *FileDevice) WriteBlock(block int, src []byte) error {
	if err := checkBounds(f, block, len(src)); err != nil {
		return err
	}
	off := int64(block) * int64(f.blockSize)
	_, err := f.rwa.WriteAt(src, off)
	return err
}
