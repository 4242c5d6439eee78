// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package queue

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/lswap/builtin/solidity"
	"github.com/vechain/lswap/lswap"
	"github.com/vechain/lswap/pool/reverts"
)

// OrderQueue is a doubly linked FIFO of orders, stored as an id-indexed arena.
// All link edits go through its methods so that the header and the links stay consistent.
type OrderQueue struct {
	header *solidity.Item[Header]
	nodes  *solidity.Mapping[nodeKey, *Node]
}

func New(ctx *solidity.Context, headerPos, nodesPos lswap.Bytes32) *OrderQueue {
	return &OrderQueue{
		header: solidity.NewItem[Header](ctx, headerPos),
		nodes:  solidity.NewMapping[nodeKey, *Node](ctx, nodesPos),
	}
}

// Header returns the queue header.
func (q *OrderQueue) Header() (Header, error) {
	h, err := q.header.Get()
	if err != nil {
		return Header{}, errors.Wrap(err, "load queue header")
	}
	return h, nil
}

func (q *OrderQueue) setHeader(h Header) error {
	return errors.Wrap(q.header.Set(h), "save queue header")
}

// Len returns the number of live nodes.
func (q *OrderQueue) Len() (uint64, error) {
	h, err := q.Header()
	if err != nil {
		return 0, err
	}
	return h.Length, nil
}

// Get returns the node with the given id. The returned node is empty if absent.
func (q *OrderQueue) Get(id uint64) (*Node, error) {
	if id == 0 {
		return &Node{}, nil
	}
	n, err := q.nodes.Get(nodeKey(id))
	if err != nil {
		return nil, errors.Wrapf(err, "load node %d", id)
	}
	return n, nil
}

func (q *OrderQueue) mustGet(id uint64) (*Node, error) {
	n, err := q.Get(id)
	if err != nil {
		return nil, err
	}
	if n.IsEmpty() {
		return nil, errors.Wrapf(reverts.ErrUnknownNode, "node %d", id)
	}
	return n, nil
}

func (q *OrderQueue) setNode(n *Node) error {
	return errors.Wrapf(q.nodes.Set(nodeKey(n.ID), n), "save node %d", n.ID)
}

// Head returns the id of the oldest node, 0 if the queue is empty.
func (q *OrderQueue) Head() (uint64, error) {
	h, err := q.Header()
	if err != nil {
		return 0, err
	}
	return h.Head, nil
}

// Peek returns the oldest node, or ErrQueueExhausted if the queue is empty.
func (q *OrderQueue) Peek() (*Node, error) {
	h, err := q.Header()
	if err != nil {
		return nil, err
	}
	if h.Head == 0 {
		return nil, reverts.ErrQueueExhausted
	}
	return q.mustGet(h.Head)
}

// Append links a new node as the tail and returns its id.
func (q *OrderQueue) Append(owner lswap.Address, value, principal *uint256.Int, height uint64) (uint64, error) {
	h, err := q.Header()
	if err != nil {
		return 0, err
	}

	h.NextID++
	node := &Node{
		ID:        h.NextID,
		Owner:     owner,
		Value:     new(uint256.Int).Set(value),
		Principal: new(uint256.Int).Set(principal),
		Height:    height,
		Prev:      h.Tail,
	}

	if h.Tail == 0 {
		// list is currently empty, the node is both head & tail
		h.Head = node.ID
	} else {
		oldTail, err := q.mustGet(h.Tail)
		if err != nil {
			return 0, err
		}
		oldTail.Next = node.ID
		if err := q.setNode(oldTail); err != nil {
			return 0, err
		}
	}
	h.Tail = node.ID
	h.Length++

	if err := q.setNode(node); err != nil {
		return 0, err
	}
	if err := q.setHeader(h); err != nil {
		return 0, err
	}
	return node.ID, nil
}

// Remove unlinks the node from wherever it is and deletes it.
// It returns the removed node, with its links as they were.
func (q *OrderQueue) Remove(id uint64) (*Node, error) {
	node, err := q.mustGet(id)
	if err != nil {
		return nil, err
	}
	h, err := q.Header()
	if err != nil {
		return nil, err
	}
	// a live node in an empty queue: the header is corrupt, leave the links alone
	if h.Length == 0 {
		return nil, reverts.ErrUnderflow
	}

	if node.Prev == 0 {
		h.Head = node.Next
	} else {
		prev, err := q.mustGet(node.Prev)
		if err != nil {
			return nil, err
		}
		prev.Next = node.Next
		if err := q.setNode(prev); err != nil {
			return nil, err
		}
	}

	if node.Next == 0 {
		h.Tail = node.Prev
	} else {
		next, err := q.mustGet(node.Next)
		if err != nil {
			return nil, err
		}
		next.Prev = node.Prev
		if err := q.setNode(next); err != nil {
			return nil, err
		}
	}

	h.Length--

	q.nodes.Delete(nodeKey(id))
	if err := q.setHeader(h); err != nil {
		return nil, err
	}
	return node, nil
}

// RemoveHead removes the oldest node, failing with ErrQueueExhausted if the queue is empty.
func (q *OrderQueue) RemoveHead() (*Node, error) {
	head, err := q.Head()
	if err != nil {
		return nil, err
	}
	if head == 0 {
		return nil, reverts.ErrQueueExhausted
	}
	return q.Remove(head)
}

// UpdateValue mutates value and principal of a live node in place.
func (q *OrderQueue) UpdateValue(id uint64, value, principal *uint256.Int) error {
	node, err := q.mustGet(id)
	if err != nil {
		return err
	}
	node.Value = new(uint256.Int).Set(value)
	node.Principal = new(uint256.Int).Set(principal)
	return q.setNode(node)
}

// Iter walks at most limit nodes from the head, in queue order.
// A non-positive limit walks the whole queue. The walk stops at the first error returned by fn.
func (q *OrderQueue) Iter(limit int, fn func(*Node) error) error {
	h, err := q.Header()
	if err != nil {
		return err
	}
	steps := h.Length
	if limit > 0 && uint64(limit) < steps {
		steps = uint64(limit)
	}

	ptr := h.Head
	for i := uint64(0); i < steps && ptr != 0; i++ {
		node, err := q.mustGet(ptr)
		if err != nil {
			return err
		}
		if err := fn(node); err != nil {
			return err
		}
		ptr = node.Next
	}
	return nil
}

// Snapshot returns at most limit nodes from the head, in queue order.
func (q *OrderQueue) Snapshot(limit int) ([]*Node, error) {
	var nodes []*Node
	err := q.Iter(limit, func(n *Node) error {
		nodes = append(nodes, n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nodes, nil
}
