// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/lswap/lswap"
)

type Address struct {
	context *Context
	pos     lswap.Bytes32
}

func NewAddress(context *Context, pos lswap.Bytes32) *Address {
	return &Address{context: context, pos: pos}
}

func (a *Address) Get() (lswap.Address, error) {
	storage, err := a.context.state.GetStorage(a.pos)
	if err != nil {
		return lswap.Address{}, err
	}
	return lswap.BytesToAddress(storage.Bytes()), nil
}

func (a *Address) Set(addr *lswap.Address) {
	var storage lswap.Bytes32
	if addr != nil {
		storage = lswap.BytesToBytes32(addr.Bytes())
	}
	a.context.state.SetStorage(a.pos, storage)
}
