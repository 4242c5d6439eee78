// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/holiman/uint256"

	"github.com/vechain/lswap/lswap"
)

func RandAddress() (addr lswap.Address) {
	rand.Read(addr[:])
	return
}

func RandBytes32() (b lswap.Bytes32) {
	rand.Read(b[:])
	return
}

// RandAmount returns a random amount in [1, upper].
func RandAmount(upper uint64) *uint256.Int {
	return uint256.NewInt(uint64(RandIntN(int(upper))) + 1)
}
