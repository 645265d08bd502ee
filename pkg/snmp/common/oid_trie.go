// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.
// This product includes software developed at Datadog (https://www.datadoghq.com/).
// Copyright 2016-present Datadog, Inc.

package common

import (
	"strconv"
	"strings"
)

// OidTrie represents a set of OIDs as a tree of dot separated numbers.
// Lookups with NodeExist / LeafExist are O(n) in the length of the OID
// and do not depend on the number of OIDs stored in the trie.
type OidTrie struct {
	Children map[int]*OidTrie
}

func newOidTrie() *OidTrie {
	return &OidTrie{}
}

// BuildOidTrie builds an OidTrie from a list of OIDs.
// OID components that fail to parse as numbers truncate that OID.
func BuildOidTrie(allOids []string) *OidTrie {
	root := newOidTrie()
	for _, oid := range allOids {
		current := root
		oid = strings.TrimLeft(oid, ".")
		digits := strings.Split(oid, ".")
		for _, digit := range digits {
			num, err := strconv.Atoi(digit)
			if err != nil {
				break
			}
			if current.Children == nil {
				current.Children = make(map[int]*OidTrie)
			}
			if _, ok := current.Children[num]; !ok {
				current.Children[num] = newOidTrie()
			}
			current = current.Children[num]
		}
	}
	return root
}

func (o *OidTrie) exist(oid string, isLeaf bool) bool {
	current := o
	oid = strings.TrimLeft(oid, ".")
	digits := strings.Split(oid, ".")
	for _, digit := range digits {
		num, err := strconv.Atoi(digit)
		if err != nil {
			return false
		}

		child, ok := current.Children[num]
		if !ok {
			return false
		}
		if len(child.Children) == 0 {
			return true
		}
		current = child
	}
	if isLeaf {
		return false
	}
	return true
}

// NodeExist checks if the oid is a known node
func (o *OidTrie) NodeExist(oid string) bool {
	return o.exist(oid, false)
}

// LeafExist checks if the oid is a known leaf
func (o *OidTrie) LeafExist(oid string) bool {
	return o.exist(oid, true)
}
