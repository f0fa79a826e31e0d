// Package blockfs implements a small, self-contained block-oriented
// filesystem on top of a fixed-size raw block device: a FAT-based block
// allocator, a hierarchical directory tree, per-entry access rights, and
// the create/cat/ls/cp/mv/rm/append/mkdir/cd/pwd/chmod/format operation
// set. It is single-user, single-process, and carries no journal or
// cache beyond the in-memory FAT — see spec.md for the full contract.
package blockfs

import (
	"fmt"
	"log/slog"

	"github.com/blockvol/blockfs/internal/blockdev"
	"github.com/blockvol/blockfs/internal/dirstore"
	"github.com/blockvol/blockfs/internal/fat"
)

// DefaultBlockSize is the block size new volumes are formatted with when
// the caller does not specify one, matching spec.md §3's "typical 4096".
const DefaultBlockSize = 4096

// FS composes the block device, FAT allocator, and directory store into
// the path resolver and user-visible operation set. It is not safe for
// concurrent use: spec.md §5 disallows concurrency entirely, so FS takes
// no internal lock.
type FS struct {
	dev blockdev.Device
	fat *fat.Allocator
	dir *dirstore.Store
	cwd int
	log *slog.Logger
}

// Option configures Mount.
type Option func(*FS)

// WithLogger sets the structured logger used for diagnostic messages.
// The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(fs *FS) { fs.log = l }
}

// Mount attaches an FS to dev. If dev already holds a formatted volume
// its FAT is loaded; otherwise the caller must call Format before using
// any other operation (spec.md §4.2: "if the device is uninitialized or
// the read fails, initializes a fresh FAT and calls format").
func Mount(dev blockdev.Device, opts ...Option) (*FS, error) {
	if dev.BlockCount() < 2 {
		return nil, fmt.Errorf("blockfs: mount: %w", IOError)
	}
	if dev.BlockCount() > dev.BlockSize()/2 {
		return nil, fmt.Errorf("blockfs: mount: block count exceeds FAT capacity: %w", IOError)
	}

	fs := &FS{
		dev: dev,
		dir: dirstore.New(dev),
		cwd: fat.RootBlock,
		log: slog.Default(),
	}
	for _, o := range opts {
		o(fs)
	}

	table, err := fat.Load(dev)
	if err != nil {
		fs.log.Warn("blockfs: unable to read FAT, formatting fresh volume", "err", err)
		table = fat.New(dev.BlockCount())
		fs.fat = table
		if _, err := fs.Format(); err != nil {
			return nil, err
		}
		return fs, nil
	}
	fs.fat = table
	return fs, nil
}

// wrapf attaches path context to an error, keeping a wrapped Kind
// matchable via errors.Is while still being readable on stdout.
func wrapf(err error, path string) error {
	return fmt.Errorf("%s: %w", path, err)
}
