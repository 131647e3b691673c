//go:build !unix

package main

import "os"

// mapFile reads the file in full on platforms without mmap support.
func mapFile(path string) ([]byte, func(), error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return data, func() {}, nil
}
