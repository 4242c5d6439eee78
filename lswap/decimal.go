// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lswap

import (
	"encoding/json"
	"errors"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// DecimalPlaces is the number of fractional digits a Decimal keeps.
const DecimalPlaces = 18

var (
	decimalFractional = uint256.NewInt(1_000_000_000_000_000_000)

	errDivideByZero    = errors.New("decimal: divide by zero")
	errDecimalOverflow = errors.New("decimal: overflow")
	errNegativeDecimal = errors.New("decimal: negative value")

	_ json.Marshaler   = Decimal{}
	_ json.Unmarshaler = (*Decimal)(nil)
)

// Decimal is an unsigned fixed-point number with 18 fractional digits, backed by a uint256.
// All arithmetic rounds towards zero, so that a product of an amount and a Decimal never
// pays out more than the exact value.
type Decimal struct {
	atomics uint256.Int
}

// DecimalOne returns 1.0
func DecimalOne() Decimal {
	var d Decimal
	d.atomics.Set(decimalFractional)
	return d
}

// NewDecimalFromAtomics creates a decimal from its raw representation, i.e. value * 10^18.
func NewDecimalFromAtomics(atomics *uint256.Int) Decimal {
	var d Decimal
	d.atomics.Set(atomics)
	return d
}

// DecimalFromRatio returns num/den.
func DecimalFromRatio(num, den *uint256.Int) (Decimal, error) {
	if den.IsZero() {
		return Decimal{}, errDivideByZero
	}
	var d Decimal
	if _, overflow := d.atomics.MulDivOverflow(num, decimalFractional, den); overflow {
		return Decimal{}, errDecimalOverflow
	}
	return d, nil
}

// RatioOrOne returns num/den, or 1.0 when den is zero.
func RatioOrOne(num, den *uint256.Int) (Decimal, error) {
	if den.IsZero() {
		return DecimalOne(), nil
	}
	return DecimalFromRatio(num, den)
}

// ParseDecimal parses a base-10 string such as "1.05". Digits beyond the 18th fractional
// place are truncated.
func ParseDecimal(s string) (Decimal, error) {
	dec, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, err
	}
	if dec.IsNegative() {
		return Decimal{}, errNegativeDecimal
	}
	raw := dec.Shift(DecimalPlaces).Truncate(0).BigInt()
	atomics, overflow := uint256.FromBig(raw)
	if overflow {
		return Decimal{}, errDecimalOverflow
	}
	return NewDecimalFromAtomics(atomics), nil
}

// MustParseDecimal parses a decimal string, panic on error.
func MustParseDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Atomics returns a copy of the raw representation.
func (d Decimal) Atomics() *uint256.Int {
	return new(uint256.Int).Set(&d.atomics)
}

// IsZero returns if the decimal is zero.
func (d Decimal) IsZero() bool {
	return d.atomics.IsZero()
}

// Cmp compares d and other and returns -1, 0 or +1.
func (d Decimal) Cmp(other Decimal) int {
	return d.atomics.Cmp(&other.atomics)
}

// MulInt returns floor(x * d). The boolean reports an overflow of 256 bits.
func (d Decimal) MulInt(x *uint256.Int) (*uint256.Int, bool) {
	return new(uint256.Int).MulDivOverflow(x, &d.atomics, decimalFractional)
}

// String returns the shortest base-10 presentation, e.g. "1.5".
func (d Decimal) String() string {
	return decimal.NewFromBigInt(d.atomics.ToBig(), -DecimalPlaces).String()
}

// MarshalJSON implements json.Marshaler.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseDecimal(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
