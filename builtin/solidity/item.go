// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/lswap/lswap"
)

// Item is a single rlp encoded value stored at a fixed slot.
type Item[V any] struct {
	context *Context
	pos     lswap.Bytes32
}

func NewItem[V any](context *Context, pos lswap.Bytes32) *Item[V] {
	return &Item[V]{context: context, pos: pos}
}

// Get returns the stored value, or the zero value if never set.
func (i *Item[V]) Get() (value V, err error) {
	err = i.context.state.DecodeStorage(i.pos, func(raw []byte) error {
		return decodeValue(raw, &value)
	})
	return
}

func (i *Item[V]) Set(value V) error {
	return i.context.state.EncodeStorage(i.pos, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Exists reports whether the item was ever set.
func (i *Item[V]) Exists() (bool, error) {
	raw, err := i.context.state.GetRawStorage(i.pos)
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}
