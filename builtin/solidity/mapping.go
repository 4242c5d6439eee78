// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/lswap/lswap"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction, similar to the mapping in Solidity.
// Values are rlp encoded, the slot of a key is blake2b(key, basePos).
type Mapping[K Key, V any] struct {
	context *Context
	basePos lswap.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos lswap.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) lswap.Bytes32 {
	return lswap.Blake2b(key.Bytes(), m.basePos.Bytes())
}

// Get returns the value stored under key, or the zero value if absent.
// For pointer types, a pointer to the zero value is returned.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.position(key), func(raw []byte) error {
		return decodeValue(raw, &value)
	})
	return
}

// Exists reports whether a value is stored under key.
func (m *Mapping[K, V]) Exists(key K) (bool, error) {
	raw, err := m.context.state.GetRawStorage(m.position(key))
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.EncodeStorage(m.position(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Delete clears the value stored under key.
func (m *Mapping[K, V]) Delete(key K) {
	m.context.state.SetRawStorage(m.position(key), nil)
}

func decodeValue[V any](raw []byte, value *V) error {
	if reflect.ValueOf(*value).Kind() == reflect.Ptr {
		*value = reflect.New(reflect.TypeOf(*value).Elem()).Interface().(V)
	}
	if len(raw) == 0 {
		return nil
	}
	return rlp.DecodeBytes(raw, value)
}
