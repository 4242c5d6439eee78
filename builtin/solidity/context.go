// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/lswap/state"
)

// Context binds storage helpers to a state.
type Context struct {
	state *state.State
}

func NewContext(state *state.State) *Context {
	return &Context{state: state}
}

func (c *Context) State() *state.State {
	return c.state
}
