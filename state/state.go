// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/lswap/cache"
	"github.com/vechain/lswap/kv"
	"github.com/vechain/lswap/lswap"
	"github.com/vechain/lswap/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Cause returns the underlying error.
func (e *Error) Cause() error {
	return e.cause
}

// Unwrap supports errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.cause
}

// SlotCache caches committed slot values, keyed by slot.
type SlotCache = cache.LRU[lswap.Bytes32, []byte]

// NewSlotCache creates a committed slot cache with the given capacity.
func NewSlotCache(size int) (*SlotCache, error) {
	return cache.NewLRU[lswap.Bytes32, []byte](size)
}

// State manages the contract storage.
// Every write lands in a journal until staged and committed,
// so a failed call can be reverted to any checkpoint.
type State struct {
	store kv.Store
	cache *SlotCache
	sm    *stackedmap.StackedMap[lswap.Bytes32, rlp.RawValue]
}

// New create state object on top of the given store.
// cache is optional, and must be shared only among states of the same store.
func New(store kv.Store, cache *SlotCache) *State {
	s := &State{
		store: store,
		cache: cache,
	}
	s.sm = stackedmap.New(s.committedGetter)
	return s
}

// committedGetter implements stackedmap.MapGetter.
func (s *State) committedGetter(key lswap.Bytes32) (rlp.RawValue, bool, error) {
	load := func(key lswap.Bytes32) ([]byte, error) {
		metricSlotLoad().Add(1)
		v, err := s.store.Get(key[:])
		if err != nil {
			if s.store.IsNotFound(err) {
				return nil, nil
			}
			return nil, err
		}
		return v, nil
	}

	var (
		v   []byte
		err error
	)
	if s.cache != nil {
		v, err = s.cache.GetOrLoad(key, load)
	} else {
		v, err = load(key)
	}
	if err != nil {
		return nil, false, err
	}
	return rlp.RawValue(v), true, nil
}

// GetRawStorage returns storage value in rlp raw for given key.
func (s *State) GetRawStorage(key lswap.Bytes32) (rlp.RawValue, error) {
	data, _, err := s.sm.Get(key)
	if err != nil {
		return nil, &Error{err}
	}
	return data, nil
}

// SetRawStorage set storage value in rlp raw.
// Empty raw value deletes the slot on commit.
func (s *State) SetRawStorage(key lswap.Bytes32, raw rlp.RawValue) {
	s.sm.Put(key, raw)
}

// GetStorage returns storage value for the given key.
func (s *State) GetStorage(key lswap.Bytes32) (lswap.Bytes32, error) {
	raw, err := s.GetRawStorage(key)
	if err != nil {
		return lswap.Bytes32{}, err
	}
	if len(raw) == 0 {
		return lswap.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return lswap.Bytes32{}, &Error{err}
	}
	if kind == rlp.List {
		// customized storage value, return hash of raw data
		return lswap.Blake2b(raw), nil
	}
	return lswap.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given key.
func (s *State) SetStorage(key, value lswap.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(key, v)
}

// EncodeStorage set storage value encoded by given enc method.
// Error returned by enc will be absorbed by State instance.
func (s *State) EncodeStorage(key lswap.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
// Error returned by dec will be absorbed by State instance.
func (s *State) DecodeStorage(key lswap.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo revert to checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage makes a stage object to commit all changes.
func (s *State) Stage() *Stage {
	changes := make(map[lswap.Bytes32]rlp.RawValue)
	var order []lswap.Bytes32

	// traverse journal to collect the latest value of each slot
	s.sm.Journal(func(k lswap.Bytes32, v rlp.RawValue) bool {
		if _, ok := changes[k]; !ok {
			order = append(order, k)
		}
		changes[k] = v
		return true
	})

	return &Stage{
		store:   s.store,
		cache:   s.cache,
		changes: changes,
		order:   order,
	}
}
