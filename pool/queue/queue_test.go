// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package queue

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/lswap/builtin/solidity"
	"github.com/vechain/lswap/lswap"
	"github.com/vechain/lswap/lvldb"
	"github.com/vechain/lswap/pool/reverts"
	"github.com/vechain/lswap/state"
	"github.com/vechain/lswap/test/datagen"
)

func newTestQueue(t *testing.T) *OrderQueue {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := solidity.NewContext(state.New(db, nil))
	return New(ctx, lswap.BytesToBytes32([]byte("header")), lswap.BytesToBytes32([]byte("nodes")))
}

func ids(t *testing.T, q *OrderQueue) []uint64 {
	nodes, err := q.Snapshot(0)
	require.NoError(t, err)
	var res []uint64
	for _, n := range nodes {
		res = append(res, n.ID)
	}
	return res
}

// assertConsistent walks the links both ways and checks them against the header.
func assertConsistent(t *testing.T, q *OrderQueue) {
	h, err := q.Header()
	require.NoError(t, err)
	if h.Length == 0 {
		assert.Zero(t, h.Head)
		assert.Zero(t, h.Tail)
		return
	}

	ptr, prev := h.Head, uint64(0)
	for i := uint64(0); i < h.Length; i++ {
		n, err := q.Get(ptr)
		require.NoError(t, err)
		require.False(t, n.IsEmpty(), "dangling id %d", ptr)
		assert.Equal(t, prev, n.Prev)
		prev, ptr = ptr, n.Next
	}
	assert.Equal(t, h.Tail, prev)
	assert.Zero(t, ptr)
}

func appendN(t *testing.T, q *OrderQueue, n int) []lswap.Address {
	owners := make([]lswap.Address, 0, n)
	for i := range n {
		owner := datagen.RandAddress()
		_, err := q.Append(owner, uint256.NewInt(uint64(i+1)*10), uint256.NewInt(uint64(i+1)*10), uint64(i))
		require.NoError(t, err)
		owners = append(owners, owner)
	}
	return owners
}

func TestAppend(t *testing.T) {
	q := newTestQueue(t)

	_, err := q.Peek()
	assert.ErrorIs(t, err, reverts.ErrQueueExhausted)
	assertConsistent(t, q)

	owners := appendN(t, q, 3)
	assert.Equal(t, []uint64{1, 2, 3}, ids(t, q))
	assertConsistent(t, q)

	head, err := q.Peek()
	require.NoError(t, err)
	assert.Equal(t, owners[0], head.Owner)
	assert.Equal(t, uint64(10), head.Value.Uint64())

	length, err := q.Len()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), length)
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name   string
		remove []uint64
		want   []uint64
	}{
		{"head", []uint64{1}, []uint64{2, 3, 4}},
		{"tail", []uint64{4}, []uint64{1, 2, 3}},
		{"middle", []uint64{2}, []uint64{1, 3, 4}},
		{"all", []uint64{3, 1, 4, 2}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := newTestQueue(t)
			appendN(t, q, 4)
			for _, id := range tt.remove {
				n, err := q.Remove(id)
				require.NoError(t, err)
				assert.Equal(t, id, n.ID)
				assertConsistent(t, q)
			}
			assert.Equal(t, tt.want, ids(t, q))
		})
	}
}

func TestRemoveUnknown(t *testing.T) {
	q := newTestQueue(t)
	appendN(t, q, 1)

	_, err := q.Remove(7)
	assert.ErrorIs(t, err, reverts.ErrUnknownNode)
	assert.Equal(t, reverts.Invariant, reverts.KindOf(err))

	_, err = q.Remove(1)
	require.NoError(t, err)
	_, err = q.Remove(1)
	assert.ErrorIs(t, err, reverts.ErrUnknownNode)
}

func TestRemoveCorruptLength(t *testing.T) {
	q := newTestQueue(t)
	appendN(t, q, 3)

	h, err := q.Header()
	require.NoError(t, err)
	h.Length = 0
	require.NoError(t, q.setHeader(h))

	_, err = q.Remove(2)
	assert.ErrorIs(t, err, reverts.ErrUnderflow)

	// neighbours still point at the node
	prev, err := q.Get(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), prev.Next)
	next, err := q.Get(3)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), next.Prev)
	node, err := q.Get(2)
	require.NoError(t, err)
	assert.False(t, node.IsEmpty())

	got, err := q.Header()
	require.NoError(t, err)
	assert.Equal(t, h, got)
}

func TestRemoveHead(t *testing.T) {
	q := newTestQueue(t)
	appendN(t, q, 2)

	n, err := q.RemoveHead()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), n.ID)

	n, err = q.RemoveHead()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n.ID)

	_, err = q.RemoveHead()
	assert.ErrorIs(t, err, reverts.ErrQueueExhausted)
	assertConsistent(t, q)
}

func TestIdsNeverReused(t *testing.T) {
	q := newTestQueue(t)
	appendN(t, q, 2)
	_, err := q.Remove(2)
	require.NoError(t, err)
	_, err = q.Remove(1)
	require.NoError(t, err)

	id, err := q.Append(datagen.RandAddress(), uint256.NewInt(1), uint256.NewInt(1), 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), id)
	assert.Equal(t, []uint64{3}, ids(t, q))
}

func TestUpdateValue(t *testing.T) {
	q := newTestQueue(t)
	appendN(t, q, 3)

	require.NoError(t, q.UpdateValue(2, uint256.NewInt(5), uint256.NewInt(4)))
	n, err := q.Get(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), n.Value.Uint64())
	assert.Equal(t, uint64(4), n.Principal.Uint64())
	assert.Equal(t, []uint64{1, 2, 3}, ids(t, q), "position is kept")

	assert.ErrorIs(t, q.UpdateValue(9, uint256.NewInt(1), uint256.NewInt(1)), reverts.ErrUnknownNode)
}

func TestSnapshotLimit(t *testing.T) {
	q := newTestQueue(t)
	appendN(t, q, 5)

	nodes, err := q.Snapshot(2)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, uint64(1), nodes[0].ID)
	assert.Equal(t, uint64(2), nodes[1].ID)

	nodes, err = q.Snapshot(50)
	require.NoError(t, err)
	assert.Len(t, nodes, 5)

	visited := 0
	err = q.Iter(0, func(n *Node) error {
		visited++
		if n.ID == 3 {
			return assert.AnError
		}
		return nil
	})
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 3, visited)
}
