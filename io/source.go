package io

import (
	"io"
	"io/fs"
	"log"
	"path"
)

// Source opens program images by name.
type Source interface {
	// Open returns the full content of the named image.
	Open(name string) (data []byte, err error)
}

// DirSource reads images from a file system.
type DirSource struct {
	FS      fs.FS
	Verbose bool // If set, enables verbose logging.
}

var _ Source = (*DirSource)(nil)

// Open reads the named file. Names are slash separated and relative to
// the file system root.
func (ds *DirSource) Open(name string) (data []byte, err error) {
	name = path.Clean(name)
	data, err = fs.ReadFile(ds.FS, name)
	if err != nil {
		return
	}
	if len(data) == 0 {
		err = ErrImageEmpty
		data = nil
		return
	}

	if ds.Verbose {
		log.Printf("io: %v: %d bytes", name, len(data))
	}
	return
}

// Names returns the regular files directly under dir.
func (ds *DirSource) Names(dir string) (names []string, err error) {
	entries, err := fs.ReadDir(ds.FS, dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, path.Join(dir, entry.Name()))
		}
	}
	return
}

// Tape provides a single image from a sequential stream, such as standard
// input. The stream can only be read once.
type Tape struct {
	Name  string // If set, Open only accepts this name.
	Input io.Reader

	consumed bool
}

var _ Source = (*Tape)(nil)

// Open reads the tape to its end.
func (tc *Tape) Open(name string) (data []byte, err error) {
	if tc.Name != "" && name != tc.Name {
		err = ErrTapeName
		return
	}
	if tc.consumed {
		err = ErrTapeConsumed
		return
	}
	tc.consumed = true

	data, err = io.ReadAll(tc.Input)
	if err != nil {
		data = nil
		return
	}
	if len(data) == 0 {
		err = ErrImageEmpty
		data = nil
	}
	return
}

// Rewind is not possible on a tape.
func (tc *Tape) Rewind() {
}
