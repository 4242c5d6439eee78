// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies why a call was reverted.
type Kind uint8

const (
	// Validation wrong or missing payment, or malformed input.
	Validation Kind = iota + 1
	// Authorization caller is not permitted to perform the operation.
	Authorization
	// State nothing to do, or the operation would gain nothing.
	State
	// Invariant the ledger cannot honour the request without breaking an invariant.
	Invariant
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Authorization:
		return "authorization"
	case State:
		return "state"
	case Invariant:
		return "invariant"
	default:
		return "unknown"
	}
}

// ErrRevert aborts the whole call, no state change is kept.
type ErrRevert struct {
	kind    Kind
	message string
}

func New(kind Kind, message string) *ErrRevert {
	return &ErrRevert{
		kind:    kind,
		message: message,
	}
}

// Newf formats the message according to a format specifier.
func Newf(kind Kind, format string, args ...any) *ErrRevert {
	return New(kind, fmt.Sprintf(format, args...))
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

// Is reports a match on both kind and message, so fresh reverts compare equal to sentinels.
func (e *ErrRevert) Is(target error) bool {
	t, ok := target.(*ErrRevert)
	if !ok {
		return false
	}
	return t.kind == e.kind && t.message == e.message
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// KindOf returns the kind of the revert wrapped in err, or 0 if err is not a revert.
func KindOf(err error) Kind {
	var ve *ErrRevert
	if errors.As(err, &ve) {
		return ve.kind
	}
	return 0
}

// validation
var (
	ErrNoFunds          = New(Validation, "no funds sent")
	ErrMultipleDenoms   = New(Validation, "sent more than one denomination")
	ErrZeroAmount       = New(Validation, "sent zero amount")
	ErrNonPayable       = New(Validation, "this message does not accept funds")
	ErrInvalidFeeRate   = New(Validation, "fee rate must not exceed 10000 basis points")
	ErrInvalidOrigin    = New(Validation, "invalid originating address")
	ErrInvalidAddress   = New(Validation, "invalid address")
	ErrInvalidConfig    = New(Validation, "invalid config")
	ErrAlreadyInstalled = New(Validation, "pool already instantiated")
)

// MissingDenom is returned when funds do not carry the accepted denomination.
func MissingDenom(denom string) *ErrRevert {
	return Newf(Validation, "must send '%s'", denom)
}

var ErrUnauthorized = New(Authorization, "unauthorized")

var (
	ErrNothingToClaim          = New(State, "nothing to claim")
	ErrNothingToWithdraw       = New(State, "nothing to remove")
	ErrNothingGainedOnDeposit  = New(State, "gain nothing when adding liquidity")
	ErrNothingGainedOnWithdraw = New(State, "gain nothing when removing liquidity")
	ErrNothingGainedOnConvert  = New(State, "gain nothing when swapping")
	ErrInvalidNonce            = New(State, "invalid nonce")
)

var (
	ErrInsufficientLiquidity = New(Invariant, "insufficient liquidity")
	ErrQueueExhausted        = New(Invariant, "queue exhausted")
	ErrOverflow              = New(Invariant, "arithmetic overflow")
	ErrUnderflow             = New(Invariant, "arithmetic underflow")
	ErrUnknownNode           = New(Invariant, "unknown queue node")
)
