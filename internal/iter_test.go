package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeqConcat(t *testing.T) {
	assert := assert.New(t)

	seq := IterSeqConcat(slices.Values([]int{1, 2}), slices.Values([]int(nil)), slices.Values([]int{3}))
	assert.Equal([]int{1, 2, 3}, slices.Collect(seq))

	// Early exit.
	var first []int
	for v := range seq {
		first = append(first, v)
		if v == 2 {
			break
		}
	}
	assert.Equal([]int{1, 2}, first)
}

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	seq := IterSeq2Concat(slices.All([]string{"ax", "cx"}), slices.All([]string{"dx"}))
	var keys []int
	var vals []string
	for k, v := range seq {
		keys = append(keys, k)
		vals = append(vals, v)
	}
	assert.Equal([]int{0, 1, 0}, keys)
	assert.Equal([]string{"ax", "cx", "dx"}, vals)

	assert.Len(maps.Collect(IterSeq2Concat(maps.All(map[string]int{"a": 1}), maps.All(map[string]int{"b": 2}))), 2)
}
