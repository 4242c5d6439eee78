// Copyright (c) 2019 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

// Getter reads keys.
type Getter interface {
	// Get returns the value of key, or an error checkable with IsNotFound.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	IsNotFound(err error) bool
}

// Putter writes keys.
type Putter interface {
	Put(key, val []byte) error
	Delete(key []byte) error
}

// Bulk buffers puts and deletes until Write applies them atomically.
type Bulk interface {
	Putter
	Len() int
	Write() error
}

// Store is the durable backing of the ledger state.
type Store interface {
	Getter
	Putter

	Bulk() Bulk
}
