// Command blockfs is a REPL driving a blockfs.FS over a file-backed
// volume: it tokenizes stdin lines, dispatches one of the filesystem
// operations by verb, and prints diagnostics to stdout. Per spec.md §1
// the shell itself is out of the core's scope — this is kept to the
// minimum needed to exercise FS from a terminal or a scripted test.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/blockvol/blockfs"
	"github.com/blockvol/blockfs/internal/blockdev"
)

func main() {
	disk := flag.String("disk", "blockfs.img", "path to the backing volume file")
	blockSize := flag.Int("blocksize", blockfs.DefaultBlockSize, "block size in bytes, for a volume created fresh")
	blockCount := flag.Int("blockcount", 1024, "block count, for a volume created fresh")
	script := flag.String("script", "", "read commands from this file instead of stdin")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	fs, err := openVolume(*disk, *blockSize, *blockCount, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "blockfs:", err)
		os.Exit(1)
	}

	var in io.Reader = os.Stdin
	if *script != "" {
		f, err := os.Open(*script)
		if err != nil {
			fmt.Fprintln(os.Stderr, "blockfs:", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	run(fs, in, os.Stdout)
}

func openVolume(path string, blockSize, blockCount int, logger *slog.Logger) (*blockfs.FS, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 {
		if err := blockdev.GrowFile(f, blockSize, blockCount); err != nil {
			return nil, err
		}
	} else {
		blockCount = int(info.Size()) / blockSize
	}

	dev, err := blockdev.NewFileDevice(f, blockSize, blockCount)
	if err != nil {
		return nil, err
	}
	return blockfs.Mount(dev, blockfs.WithLogger(logger))
}

// readLine reads one '\n'-terminated line from in, byte at a time. This
// avoids the lookahead a bufio.Scanner would do: in is a single shared
// stream carrying both REPL command lines and, for create's
// payload-until-blank-line protocol, raw file content — a reader that
// buffers ahead would swallow bytes belonging to whatever comes next.
func readLine(in io.Reader) (line string, err error) {
	buf := make([]byte, 1)
	var b []byte
	for {
		n, rerr := in.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				return string(b), nil
			}
			b = append(b, buf[0])
		}
		if rerr != nil {
			return string(b), rerr
		}
	}
}

// run tokenizes each line of in by whitespace and dispatches the first
// field as a verb. Unknown verbs and wrong argument counts print one
// line of usage help and continue.
func run(fs *blockfs.FS, in io.Reader, out io.Writer) {
	for {
		line, err := readLine(in)
		fields := strings.Fields(line)
		if len(fields) > 0 {
			dispatch(fs, fields[0], fields[1:], in, out)
		}
		if err != nil {
			return
		}
	}
}

func dispatch(fs *blockfs.FS, verb string, args []string, in io.Reader, out io.Writer) {
	var code int
	var err error

	switch verb {
	case "format":
		code, err = fs.Format()
	case "create":
		if len(args) != 1 {
			usage(out, "create <path>")
			return
		}
		code, err = fs.Create(args[0], in)
	case "cat":
		if len(args) != 1 {
			usage(out, "cat <path>")
			return
		}
		code, err = fs.Cat(args[0], out)
	case "ls":
		code, err = fs.Ls(out)
	case "cp":
		if len(args) != 2 {
			usage(out, "cp <src> <dst>")
			return
		}
		code, err = fs.Cp(args[0], args[1])
	case "mv":
		if len(args) != 2 {
			usage(out, "mv <src> <dst>")
			return
		}
		code, err = fs.Mv(args[0], args[1])
	case "rm":
		if len(args) != 1 {
			usage(out, "rm <path>")
			return
		}
		code, err = fs.Rm(args[0])
	case "append":
		if len(args) != 2 {
			usage(out, "append <src> <dst>")
			return
		}
		code, err = fs.Append(args[0], args[1])
	case "mkdir":
		if len(args) != 1 {
			usage(out, "mkdir <path>")
			return
		}
		code, err = fs.Mkdir(args[0])
	case "cd":
		if len(args) != 1 {
			usage(out, "cd <path>")
			return
		}
		code, err = fs.Cd(args[0])
	case "pwd":
		code, err = fs.Pwd(out)
		fmt.Fprintln(out)
	case "chmod":
		if len(args) != 2 {
			usage(out, "chmod <mode> <path>")
			return
		}
		mode, perr := strconv.ParseUint(args[0], 8, 8)
		if perr != nil || mode > 7 {
			fmt.Fprintln(out, blockfs.InvalidMode.Error())
			return
		}
		code, err = fs.Chmod(args[1], uint8(mode))
	case "exit", "quit":
		os.Exit(0)
	default:
		usage(out, "format | create | cat | ls | cp | mv | rm | append | mkdir | cd | pwd | chmod")
		return
	}

	if err != nil {
		fmt.Fprintln(out, err.Error())
		return
	}
	_ = code
}

func usage(out io.Writer, line string) {
	fmt.Fprintln(out, "usage:", line)
}
