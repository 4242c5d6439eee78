// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/lswap/kv"
	"github.com/vechain/lswap/lswap"
)

// Stage abstracts the pending changes of a state.
type Stage struct {
	store   kv.Store
	cache   *SlotCache
	changes map[lswap.Bytes32]rlp.RawValue
	order   []lswap.Bytes32
}

// Len returns the number of changed slots.
func (s *Stage) Len() int {
	return len(s.order)
}

// Hash computes a digest over the changed slots, in the order they were first written.
func (s *Stage) Hash() lswap.Bytes32 {
	return lswap.Blake2bFn(func(w io.Writer) {
		for _, k := range s.order {
			w.Write(k[:])
			w.Write(s.changes[k])
		}
	})
}

// Commit writes all changes into the store in a single batch.
func (s *Stage) Commit() error {
	if len(s.order) == 0 {
		return nil
	}
	bulk := s.store.Bulk()
	for _, k := range s.order {
		v := s.changes[k]
		if len(v) == 0 {
			if err := bulk.Delete(k[:]); err != nil {
				return &Error{err}
			}
		} else {
			if err := bulk.Put(k[:], v); err != nil {
				return &Error{err}
			}
		}
	}
	if err := bulk.Write(); err != nil {
		// the cache may hold values newer than the store
		if s.cache != nil {
			for _, k := range s.order {
				s.cache.Remove(k)
			}
		}
		return &Error{err}
	}
	if s.cache != nil {
		for _, k := range s.order {
			s.cache.Add(k, s.changes[k])
		}
	}
	metricSlotWrite().Add(int64(len(s.order)))
	return nil
}
