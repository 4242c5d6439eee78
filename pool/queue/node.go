// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package queue

import (
	"encoding/binary"

	"github.com/holiman/uint256"

	"github.com/vechain/lswap/lswap"
)

// Node is a pending order in the queue.
type Node struct {
	ID        uint64        `json:"id"`
	Owner     lswap.Address `json:"owner"`
	Value     *uint256.Int  `json:"value"`     // shares attributed to the node
	Principal *uint256.Int  `json:"principal"` // base asset the value traces back to, shrinks on every fill
	Height    uint64        `json:"height"`
	Prev      uint64        `json:"prev"` // 0 for none
	Next      uint64        `json:"next"` // 0 for none
}

// IsEmpty returns whether the node was never stored or has been removed.
func (n *Node) IsEmpty() bool {
	return n == nil || n.ID == 0
}

// Header describes the queue endpoints and the id allocator.
type Header struct {
	Head   uint64 `json:"head"`
	Tail   uint64 `json:"tail"`
	Length uint64 `json:"length"`
	NextID uint64 `json:"nextId"` // last allocated id, ids are never reused
}

// nodeKey is the mapping key of a node.
type nodeKey uint64

func (k nodeKey) Bytes() []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(k))
	return b[:]
}
