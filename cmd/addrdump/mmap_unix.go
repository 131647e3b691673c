//go:build unix

package main

import (
	"os"

	"golang.org/x/sys/unix"
)

// mapFile maps the file read-only. Files that cannot be mapped, such
// as empty ones, are read in full instead. The returned release func
// must be called once decoding is finished.
func mapFile(path string) ([]byte, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	if fi.Size() == 0 {
		return nil, func() {}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(fi.Size()), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		plain, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, err
		}
		return plain, func() {}, nil
	}
	return data, func() { _ = unix.Munmap(data) }, nil
}
