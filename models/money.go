package models

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Money is an exact decimal amount. Amounts are stored at full precision and
// only rounded to two places when rendered, so repeated edits never compound
// rounding error.
type Money struct {
	dec decimal.Decimal
}

// NewMoneyFromString parses an amount such as "49.99".
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	return Money{dec: d}, nil
}

// MoneyFromDecimal wraps an existing decimal value.
func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{dec: d}
}

// Decimal returns the underlying exact value.
func (m Money) Decimal() decimal.Decimal {
	return m.dec
}

// MulInt multiplies the amount by an integer factor (e.g. a day count).
func (m Money) MulInt(n int64) Money {
	return Money{dec: m.dec.Mul(decimal.NewFromInt(n))}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.dec.IsNegative()
}

// Equal compares two amounts by value.
func (m Money) Equal(other Money) bool {
	return m.dec.Equal(other.dec)
}

// String renders the amount rounded half-up to two decimal places.
func (m Money) String() string {
	return m.dec.StringFixed(2)
}

// MarshalJSON renders the display form, e.g. "150.00".
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.dec.StringFixed(2) + `"`), nil
}

// UnmarshalJSON accepts both quoted and bare decimal literals.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	m.dec = d
	return nil
}

// MarshalBSONValue stores the amount as a Decimal128 so Mongo keeps the exact value.
func (m Money) MarshalBSONValue() (bsontype.Type, []byte, error) {
	d128, err := primitive.ParseDecimal128(m.dec.String())
	if err != nil {
		return 0, nil, fmt.Errorf("money to decimal128: %w", err)
	}
	return bson.MarshalValue(d128)
}

// UnmarshalBSONValue reads Decimal128, double or string representations.
func (m *Money) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Decimal128:
		var d128 primitive.Decimal128
		if err := rv.Unmarshal(&d128); err != nil {
			return fmt.Errorf("money from decimal128: %w", err)
		}
		d, err := decimal.NewFromString(d128.String())
		if err != nil {
			return fmt.Errorf("money from decimal128 %q: %w", d128.String(), err)
		}
		m.dec = d
		return nil
	case bsontype.Double:
		var f float64
		if err := rv.Unmarshal(&f); err != nil {
			return fmt.Errorf("money from double: %w", err)
		}
		m.dec = decimal.NewFromFloat(f)
		return nil
	case bsontype.String:
		var s string
		if err := rv.Unmarshal(&s); err != nil {
			return fmt.Errorf("money from string: %w", err)
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return fmt.Errorf("money from string %q: %w", s, err)
		}
		m.dec = d
		return nil
	default:
		return fmt.Errorf("cannot decode money from BSON type %s", t)
	}
}
