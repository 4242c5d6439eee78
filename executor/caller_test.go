// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/lswap/pool/reverts"
	"github.com/vechain/lswap/test/datagen"
)

func TestCallerNonce(t *testing.T) {
	store := newStore(t)
	e := newExecutor(t, store, newConfig())
	alice := datagen.RandAddress()

	nonce, err := e.NonceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), nonce)

	_, err = e.As(alice, 0).Deposit(coins(100))
	require.NoError(t, err)

	nonce, err = e.NonceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), nonce)

	// replayed
	_, err = e.As(alice, 0).Deposit(coins(100))
	assert.ErrorIs(t, err, reverts.ErrInvalidNonce)
	assert.Equal(t, reverts.State, reverts.KindOf(err))
	// ahead
	_, err = e.As(alice, 5).Deposit(coins(100))
	assert.ErrorIs(t, err, reverts.ErrInvalidNonce)

	status, err := e.Status()
	require.NoError(t, err)
	assert.Equal(t, uint64(100), status.Issued.Uint64())
	height, err := e.Height()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), height)

	// a reverted call consumes its nonce without advancing the height
	_, err = e.As(alice, 1).Claim(nil)
	assert.ErrorIs(t, err, reverts.ErrNothingToClaim)
	nonce, err = e.NonceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), nonce)
	height, err = e.Height()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), height)

	// nonces are per sender and survive a restart
	reopened := New(store, nil, e.source)
	nonce, err = reopened.NonceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), nonce)
	nonce, err = reopened.NonceOf(datagen.RandAddress())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), nonce)
}
