// Package assets defines currencies and fungible amounts.
//
// An Amount is stored as an integer count of the currency's smallest unit
// (Raw). With DecimalPlaces = 2, "100.50 GOLD" has Raw = 10050, MajorUnit =
// 100 and MinorUnit = 50.
package assets

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/rony4d/go-opera-adventure/inter/plain"
)

var (
	ErrCurrencyMismatch = errors.New("assets: currency mismatch")
	ErrMalformedAmount  = errors.New("assets: malformed amount")
)

// Currency identifies a fungible asset.
type Currency struct {
	Ticker        string
	DecimalPlaces uint8
}

// Hash is the currency identity used in state keys.
func (c Currency) Hash() common.Hash {
	return crypto.Keccak256Hash([]byte(c.Ticker), []byte{c.DecimalPlaces})
}

func (c Currency) String() string {
	return fmt.Sprintf("%s(%d)", c.Ticker, c.DecimalPlaces)
}

func (c Currency) unit() *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(c.DecimalPlaces)), nil)
}

// Amount is a quantity of one currency.
type Amount struct {
	Currency Currency
	Raw      *big.Int
}

// Zero returns 0 of c.
func Zero(c Currency) Amount {
	return Amount{Currency: c, Raw: new(big.Int)}
}

// Units returns n whole units of c, the "n * currency" of the ledger rules.
func Units(c Currency, n int64) Amount {
	raw := new(big.Int).Mul(big.NewInt(n), c.unit())
	return Amount{Currency: c, Raw: raw}
}

// FromUnits builds an amount from its major and minor parts. Both must carry
// the same sign and minor must be below 10^DecimalPlaces.
func FromUnits(c Currency, major, minor *big.Int) (Amount, error) {
	unit := c.unit()
	if new(big.Int).Abs(minor).Cmp(unit) >= 0 {
		return Amount{}, ErrMalformedAmount
	}
	if major.Sign()*minor.Sign() < 0 {
		return Amount{}, ErrMalformedAmount
	}
	raw := new(big.Int).Mul(major, unit)
	raw.Add(raw, minor)
	return Amount{Currency: c, Raw: raw}, nil
}

func (a Amount) raw() *big.Int {
	if a.Raw == nil {
		return new(big.Int)
	}
	return a.Raw
}

// MajorUnit is the whole part, truncated toward zero.
func (a Amount) MajorUnit() *big.Int {
	return new(big.Int).Quo(a.raw(), a.Currency.unit())
}

// MinorUnit is the fractional part; it has the sign of the amount.
func (a Amount) MinorUnit() *big.Int {
	return new(big.Int).Rem(a.raw(), a.Currency.unit())
}

// Sign returns -1, 0 or +1.
func (a Amount) Sign() int {
	return a.raw().Sign()
}

// Cmp compares two amounts of the same currency.
func (a Amount) Cmp(b Amount) (int, error) {
	if a.Currency != b.Currency {
		return 0, ErrCurrencyMismatch
	}
	return a.raw().Cmp(b.raw()), nil
}

// Less is Cmp < 0; it panics on a currency mismatch, so callers check the
// currency first.
func (a Amount) Less(b Amount) bool {
	c, err := a.Cmp(b)
	if err != nil {
		panic(err)
	}
	return c < 0
}

// Add returns a + b.
func (a Amount) Add(b Amount) (Amount, error) {
	if a.Currency != b.Currency {
		return Amount{}, ErrCurrencyMismatch
	}
	return Amount{Currency: a.Currency, Raw: new(big.Int).Add(a.raw(), b.raw())}, nil
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.Currency != b.Currency {
		return Amount{}, ErrCurrencyMismatch
	}
	return Amount{Currency: a.Currency, Raw: new(big.Int).Sub(a.raw(), b.raw())}, nil
}

// Copy returns an amount that shares no memory with a.
func (a Amount) Copy() Amount {
	return Amount{Currency: a.Currency, Raw: new(big.Int).Set(a.raw())}
}

func (a Amount) String() string {
	minor := new(big.Int).Abs(a.MinorUnit())
	sign := ""
	if a.Sign() < 0 {
		sign = "-"
	}
	major := new(big.Int).Abs(a.MajorUnit())
	if a.Currency.DecimalPlaces == 0 {
		return fmt.Sprintf("%s%s %s", sign, major, a.Currency.Ticker)
	}
	return fmt.Sprintf("%s%s.%0*d %s", sign, major, int(a.Currency.DecimalPlaces), minor, a.Currency.Ticker)
}

// ParseAmount reads a decimal such as "100", "100.5" or "-0.25" as an amount
// of c. More fractional digits than c has decimal places is an error.
func ParseAmount(c Currency, s string) (Amount, error) {
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" || len(frac) > int(c.DecimalPlaces) || strings.HasPrefix(whole, "+") {
		return Amount{}, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	digits := whole + frac + strings.Repeat("0", int(c.DecimalPlaces)-len(frac))
	raw, ok := new(big.Int).SetString(digits, 10)
	if !ok || strings.ContainsAny(digits, "+-") {
		return Amount{}, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	if neg {
		raw.Neg(raw)
	}
	return Amount{Currency: c, Raw: raw}, nil
}

// PlainValue is the action-payload form:
// List[Text ticker, Integer decimalPlaces, Integer major, Integer minor].
func (a Amount) PlainValue() plain.Value {
	return plain.List{
		plain.Text(a.Currency.Ticker),
		plain.NewInteger(int64(a.Currency.DecimalPlaces)),
		plain.BigInteger(a.MajorUnit()),
		plain.BigInteger(a.MinorUnit()),
	}
}

// AmountFromPlain is the inverse of PlainValue.
func AmountFromPlain(v plain.Value) (Amount, error) {
	list, ok := v.(plain.List)
	if !ok || len(list) != 4 {
		return Amount{}, ErrMalformedAmount
	}
	ticker, ok := list[0].(plain.Text)
	if !ok {
		return Amount{}, ErrMalformedAmount
	}
	dp, ok := list[1].(plain.Integer)
	if !ok {
		return Amount{}, ErrMalformedAmount
	}
	places, fits := dp.Int64()
	if !fits || places < 0 || places > 0xff {
		return Amount{}, ErrMalformedAmount
	}
	major, ok := list[2].(plain.Integer)
	if !ok {
		return Amount{}, ErrMalformedAmount
	}
	minor, ok := list[3].(plain.Integer)
	if !ok {
		return Amount{}, ErrMalformedAmount
	}
	c := Currency{Ticker: string(ticker), DecimalPlaces: uint8(places)}
	return FromUnits(c, major.Big(), minor.Big())
}
