// Package amount implements the money arithmetic of the boosting escrow:
// decimal strings denominated in the native chain currency are converted to
// base units (wei) before any math, and all splits use integer basis points.
package amount

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// Decimals of the native chain currency.
const Decimals = 18

// Basis points of the escrow deposit, fixed by the contract's depositRate.
const depositBps = 1500

const bpsDenominator = 10000

// ToWei parses a non-negative decimal string into base units without any
// floating-point intermediate. Fractional parts longer than Decimals digits
// are rejected rather than rounded.
func ToWei(s string) (*big.Int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse decimal amount")
	}
	if d.IsNegative() {
		return nil, errors.New("amount must not be negative")
	}

	shifted := d.Shift(Decimals)
	if shifted.Exponent() < 0 && !shifted.Equal(shifted.Truncate(0)) {
		return nil, errors.New("amount has more fractional digits than the chain currency supports")
	}

	return shifted.BigInt(), nil
}

// Deposit returns the 15% escrow deposit of a total in base units.
func Deposit(total *big.Int) *big.Int {
	d := new(big.Int).Mul(total, big.NewInt(depositBps))
	return d.Div(d, big.NewInt(bpsDenominator))
}

// FinalPayment returns the remainder due at confirmation. It is defined as
// total minus Deposit so that the two always sum to the exact total, even
// when the basis-point division truncates.
func FinalPayment(total *big.Int) *big.Int {
	return new(big.Int).Sub(total, Deposit(total))
}

// FormatWei renders base units as a decimal display string with trailing
// fractional zeros removed.
func FormatWei(x *big.Int) string {
	return decimal.NewFromBigInt(x, -Decimals).String()
}

// Format trims trailing fractional zeros from a decimal string without
// rounding: "1.2000" -> "1.2", "0.000" -> "0", "3" -> "3". Strings that are
// not decimal numbers are returned unchanged.
func Format(s string) string {
	if !strings.Contains(s, ".") {
		return s
	}

	trimmed := strings.TrimRight(s, "0")
	trimmed = strings.TrimRight(trimmed, ".")
	if trimmed == "" || trimmed == "-" {
		return "0"
	}
	return trimmed
}
