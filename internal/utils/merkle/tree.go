package merkle

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// Tree is a binary Merkle tree over keccak256 leaves with sorted-pair node hashing.
// Leaves are sorted and de-duplicated, so the root does not depend on input order.
// A node without a sibling is promoted unchanged to the next layer.
type Tree struct {
	layers [][]common.Hash
	index  map[common.Hash]int
}

// Keccak256 hashes the concatenation of parts with legacy Keccak-256.
func Keccak256(parts ...[]byte) common.Hash {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	var out common.Hash
	h.Sum(out[:0])
	return out
}

// AddressLeaf returns the leaf hash of an address as keccak256 of its 20 bytes.
func AddressLeaf(addr common.Address) common.Hash {
	return Keccak256(addr.Bytes())
}

// HashPair hashes two nodes in ascending byte order.
func HashPair(a, b common.Hash) common.Hash {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return Keccak256(a[:], b[:])
}

// New builds a tree over already hashed leaves.
func New(leaves []common.Hash) *Tree {
	sorted := make([]common.Hash, 0, len(leaves))
	seen := make(map[common.Hash]struct{}, len(leaves))
	for _, l := range leaves {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		sorted = append(sorted, l)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i][:], sorted[j][:]) < 0
	})

	t := &Tree{index: make(map[common.Hash]int, len(sorted))}
	for i, l := range sorted {
		t.index[l] = i
	}
	t.layers = append(t.layers, sorted)
	for layer := sorted; len(layer) > 1; {
		next := make([]common.Hash, 0, (len(layer)+1)/2)
		for i := 0; i < len(layer); i += 2 {
			if i+1 == len(layer) {
				next = append(next, layer[i])
				continue
			}
			next = append(next, HashPair(layer[i], layer[i+1]))
		}
		t.layers = append(t.layers, next)
		layer = next
	}
	return t
}

// FromAddresses builds a tree whose leaves are the address hashes.
func FromAddresses(addrs []common.Address) *Tree {
	leaves := make([]common.Hash, len(addrs))
	for i, a := range addrs {
		leaves[i] = AddressLeaf(a)
	}
	return New(leaves)
}

// Root returns the tree root, or the zero hash for an empty tree.
func (t *Tree) Root() common.Hash {
	top := t.layers[len(t.layers)-1]
	if len(top) == 0 {
		return common.Hash{}
	}
	return top[0]
}

// Len returns the number of distinct leaves.
func (t *Tree) Len() int {
	return len(t.layers[0])
}

// Proof returns the sibling path of leaf, bottom up. It is empty when the leaf is
// not in the tree, and also for a single-leaf tree where the leaf is the root.
func (t *Tree) Proof(leaf common.Hash) []common.Hash {
	idx, ok := t.index[leaf]
	if !ok {
		return nil
	}
	var proof []common.Hash
	for _, layer := range t.layers[:len(t.layers)-1] {
		sibling := idx ^ 1
		if sibling < len(layer) {
			proof = append(proof, layer[sibling])
		}
		idx /= 2
	}
	return proof
}

// Verify checks that proof links leaf to root.
func Verify(root, leaf common.Hash, proof []common.Hash) bool {
	node := leaf
	for _, p := range proof {
		node = HashPair(node, p)
	}
	return node == root
}
