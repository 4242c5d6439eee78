// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/lswap/lswap"
	"github.com/vechain/lswap/lvldb"
	"github.com/vechain/lswap/test/datagen"
)

func newTestState(t *testing.T) (*State, *lvldb.LevelDB, *SlotCache) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	c, err := NewSlotCache(16)
	require.NoError(t, err)
	return New(db, c), db, c
}

func TestStateStorage(t *testing.T) {
	st, _, _ := newTestState(t)

	key := lswap.BytesToBytes32([]byte("key"))
	v, err := st.GetStorage(key)
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	value := lswap.BytesToBytes32([]byte("value"))
	st.SetStorage(key, value)
	v, err = st.GetStorage(key)
	require.NoError(t, err)
	assert.Equal(t, value, v)

	st.SetStorage(key, lswap.Bytes32{})
	raw, err := st.GetRawStorage(key)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestStateEncodeDecode(t *testing.T) {
	st, _, _ := newTestState(t)

	type record struct {
		A uint64
		B []byte
	}

	key := lswap.BytesToBytes32([]byte("record"))
	require.NoError(t, st.EncodeStorage(key, func() ([]byte, error) {
		return rlp.EncodeToBytes(&record{A: 7, B: []byte{1, 2}})
	}))

	var got record
	require.NoError(t, st.DecodeStorage(key, func(raw []byte) error {
		return rlp.DecodeBytes(raw, &got)
	}))
	assert.Equal(t, record{A: 7, B: []byte{1, 2}}, got)

	// list values are hashed
	v, err := st.GetStorage(key)
	require.NoError(t, err)
	raw, _ := st.GetRawStorage(key)
	assert.Equal(t, lswap.Blake2b(raw), v)

	err = st.DecodeStorage(key, func([]byte) error { return assert.AnError })
	assert.ErrorIs(t, err, assert.AnError)
}

func TestStateRevert(t *testing.T) {
	st, _, _ := newTestState(t)

	k1 := lswap.BytesToBytes32([]byte("k1"))
	k2 := lswap.BytesToBytes32([]byte("k2"))
	one := lswap.BytesToBytes32([]byte{1})
	two := lswap.BytesToBytes32([]byte{2})

	st.SetStorage(k1, one)
	rev := st.NewCheckpoint()
	st.SetStorage(k1, two)
	st.SetStorage(k2, two)

	v, _ := st.GetStorage(k1)
	assert.Equal(t, two, v)

	st.RevertTo(rev)
	v, _ = st.GetStorage(k1)
	assert.Equal(t, one, v)
	v, _ = st.GetStorage(k2)
	assert.True(t, v.IsZero())

	stage := st.Stage()
	assert.Equal(t, 1, stage.Len())
}

func TestStageCommit(t *testing.T) {
	st, db, c := newTestState(t)

	k1 := lswap.BytesToBytes32([]byte("k1"))
	k2 := lswap.BytesToBytes32([]byte("k2"))
	one := lswap.BytesToBytes32([]byte{1})
	two := lswap.BytesToBytes32([]byte{2})

	st.SetStorage(k1, one)
	st.SetStorage(k2, one)
	st.SetStorage(k1, two)

	stage := st.Stage()
	assert.Equal(t, 2, stage.Len())
	h1 := stage.Hash()
	require.NoError(t, stage.Commit())
	assert.Equal(t, h1, st.Stage().Hash(), "hash is stable")

	has, err := db.Has(k1[:])
	require.NoError(t, err)
	assert.True(t, has)

	// a fresh state reads committed values, through the shared cache
	st2 := New(db, c)
	v, err := st2.GetStorage(k1)
	require.NoError(t, err)
	assert.Equal(t, two, v)

	// and without cache, from the store
	st3 := New(db, nil)
	v, err = st3.GetStorage(k2)
	require.NoError(t, err)
	assert.Equal(t, one, v)

	// delete on commit
	st3.SetStorage(k2, lswap.Bytes32{})
	require.NoError(t, st3.Stage().Commit())
	has, err = db.Has(k2[:])
	require.NoError(t, err)
	assert.False(t, has)

	// empty stage commits nothing
	require.NoError(t, New(db, c).Stage().Commit())
}

func TestStateCommitBeyondCache(t *testing.T) {
	st, db, c := newTestState(t)

	written := make(map[lswap.Bytes32]lswap.Bytes32)
	for range 64 {
		k, v := datagen.RandBytes32(), datagen.RandBytes32()
		st.SetStorage(k, v)
		written[k] = v
	}
	require.NoError(t, st.Stage().Commit())
	assert.Equal(t, 16, c.Len(), "cache is bounded")

	fresh := New(db, c)
	for k, v := range written {
		got, err := fresh.GetStorage(k)
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}
}
