// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_OidTrie_NodeExist_LeafExist(t *testing.T) {
	trie := BuildOidTrie([]string{
		"1.3.6.1.2.1.1.2.0",
		"1.3.6.1.2.1.2.2.1.14.1",
		".1.3.6.1.4.1.3375.2.1.1.2.1.44.0",
	})

	assert.True(t, trie.NodeExist("1.3.6.1.2.1"))
	assert.True(t, trie.NodeExist("1.3.6.1.2.1.2.2.1.14"))
	assert.True(t, trie.NodeExist("1.3.6.1.2.1.1.2.0"))
	assert.True(t, trie.NodeExist(".1.3.6.1.4.1.3375"))
	assert.False(t, trie.NodeExist("1.3.6.1.2.2"))
	assert.False(t, trie.NodeExist("1.3.6.1.2.1.1.2.0.0"))

	assert.True(t, trie.LeafExist("1.3.6.1.2.1.1.2.0"))
	assert.True(t, trie.LeafExist("1.3.6.1.2.1.2.2.1.14.1"))
	assert.False(t, trie.LeafExist("1.3.6.1.2.1.2.2.1.14"))
	assert.False(t, trie.LeafExist("1.3.6.1.2.1"))
	assert.False(t, trie.LeafExist("not.an.oid"))
}

func Test_OidTrie_invalidDigitsTruncate(t *testing.T) {
	trie := BuildOidTrie([]string{"1.3.abc.4"})

	assert.True(t, trie.LeafExist("1.3"))
	assert.False(t, trie.NodeExist("1.3.abc"))
}

func Test_CreateStringBatches(t *testing.T) {
	tests := []struct {
		name            string
		elements        []string
		size            int
		expectedBatches [][]string
		expectedError   string
	}{
		{
			name:     "even batches",
			elements: []string{"a", "b", "c", "d"},
			size:     2,
			expectedBatches: [][]string{
				{"a", "b"},
				{"c", "d"},
			},
		},
		{
			name:     "remainder batch",
			elements: []string{"a", "b", "c", "d", "e"},
			size:     2,
			expectedBatches: [][]string{
				{"a", "b"},
				{"c", "d"},
				{"e"},
			},
		},
		{
			name:            "empty input",
			elements:        []string{},
			size:            2,
			expectedBatches: nil,
		},
		{
			name:          "invalid size",
			elements:      []string{"a"},
			size:          0,
			expectedError: "batch size must be positive. invalid size: 0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches, err := CreateStringBatches(tt.elements, tt.size)
			if tt.expectedError != "" {
				assert.EqualError(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedBatches, batches)
			}
		})
	}
}
