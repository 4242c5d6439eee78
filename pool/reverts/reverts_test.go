// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Reverts(t *testing.T) {
	revert := New(State, "test")
	assert.Equal(t, "test", revert.message)
	assert.Equal(t, revert.Error(), revert.message)
	assert.Equal(t, State, revert.Kind())

	assert.True(t, IsRevertErr(revert))
	assert.True(t, IsRevertErr(errors.Wrap(revert, "wrapped")))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Validation, KindOf(ErrNoFunds))
	assert.Equal(t, Authorization, KindOf(ErrUnauthorized))
	assert.Equal(t, State, KindOf(errors.Wrap(ErrNothingToClaim, "claim")))
	assert.Equal(t, Invariant, KindOf(ErrQueueExhausted))
	assert.Equal(t, Kind(0), KindOf(errors.New("io")))
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestIs(t *testing.T) {
	assert.ErrorIs(t, MissingDenom("uluna"), Newf(Validation, "must send '%s'", "uluna"))
	assert.NotErrorIs(t, MissingDenom("uluna"), MissingDenom("uatom"))
	assert.NotErrorIs(t, New(State, "x"), New(Invariant, "x"))
	assert.ErrorIs(t, errors.Wrap(ErrOverflow, "supply"), ErrOverflow)
}
