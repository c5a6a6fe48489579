package io

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestDirSource_Open(t *testing.T) {
	assert := assert.New(t)

	ds := &DirSource{FS: fstest.MapFS{
		"listing_37":       {Data: []byte{0x89, 0xd9}},
		"bin/listing_38":   {Data: []byte{0x89, 0xd9, 0x88, 0xe5}},
		"bin/empty":        {Data: []byte{}},
		"bin/sub/ignored":  {Data: []byte{0x90}},
		"bin/sub/ignored2": {Data: []byte{0x90}},
	}}

	table := [](struct {
		name string
		data []byte
		err  error
	}){
		{"listing_37", []byte{0x89, 0xd9}, nil},
		{"bin/../bin/listing_38", []byte{0x89, 0xd9, 0x88, 0xe5}, nil},
		{"bin/empty", nil, ErrImageEmpty},
		{"missing", nil, fs.ErrNotExist},
	}

	for _, entry := range table {
		data, err := ds.Open(entry.name)
		if entry.err != nil {
			assert.ErrorIs(err, entry.err, entry.name)
		} else {
			assert.NoError(err, entry.name)
		}
		assert.Equal(entry.data, data, entry.name)
	}

	names, err := ds.Names("bin")
	assert.NoError(err)
	assert.Equal([]string{"bin/empty", "bin/listing_38"}, names)
}

func TestTape_Open(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: bytes.NewBuffer([]byte{0xb8, 0x05, 0x00})}
	data, err := tape.Open("-")
	assert.NoError(err)
	assert.Equal([]byte{0xb8, 0x05, 0x00}, data)

	// Rewind is not possible on a tape.
	tape.Rewind()
	_, err = tape.Open("-")
	assert.ErrorIs(err, ErrTapeConsumed)

	tape = &Tape{Name: "stdin", Input: bytes.NewBuffer([]byte{0x90})}
	_, err = tape.Open("other")
	assert.ErrorIs(err, ErrTapeName)
	data, err = tape.Open("stdin")
	assert.NoError(err)
	assert.Equal([]byte{0x90}, data)

	tape = &Tape{Input: bytes.NewBuffer(nil)}
	_, err = tape.Open("")
	assert.ErrorIs(err, ErrImageEmpty)
}

type brokenReader struct{}

var errBroken = errors.New("broken")

func (brokenReader) Read([]byte) (int, error) {
	return 0, errBroken
}

func TestTape_OpenError(t *testing.T) {
	assert := assert.New(t)

	tape := &Tape{Input: brokenReader{}}
	data, err := tape.Open("broken")
	assert.ErrorIs(err, errBroken)
	assert.Nil(data)
}
