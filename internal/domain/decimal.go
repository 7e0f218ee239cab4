package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimal is a DoofiCoin amount exactly as the backend sent it.
//
// The wire text is kept verbatim so that a value read from the API and
// submitted back in a form is byte-identical. Arithmetic and comparison go
// through shopspring/decimal via Value; nothing on the storage path touches
// float64.
type Decimal string

// ZeroDecimal is the canonical zero amount.
const ZeroDecimal Decimal = "0"

// NewDecimal parses and validates s, returning it unchanged on success.
func NewDecimal(s string) (Decimal, error) {
	s = strings.TrimSpace(s)
	if _, err := decimal.NewFromString(s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDecimal, s)
	}
	return Decimal(s), nil
}

// MustDecimal is NewDecimal for literals known to be valid.
func MustDecimal(s string) Decimal {
	d, err := NewDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DecimalFrom converts an arbitrary-precision value back to wire text.
func DecimalFrom(d decimal.Decimal) Decimal {
	return Decimal(d.String())
}

// String returns the raw wire text.
func (d Decimal) String() string {
	return string(d)
}

// IsEmpty reports whether no amount was sent.
func (d Decimal) IsEmpty() bool {
	return strings.TrimSpace(string(d)) == ""
}

// Value parses the amount. Empty amounts are zero.
func (d Decimal) Value() (decimal.Decimal, error) {
	if d.IsEmpty() {
		return decimal.Zero, nil
	}
	v, err := decimal.NewFromString(strings.TrimSpace(string(d)))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidDecimal, string(d))
	}
	return v, nil
}

// Cmp compares two amounts numerically.
func (d Decimal) Cmp(other Decimal) (int, error) {
	a, err := d.Value()
	if err != nil {
		return 0, err
	}
	b, err := other.Value()
	if err != nil {
		return 0, err
	}
	return a.Cmp(b), nil
}

// MarshalJSON always emits a JSON string so precision survives any consumer.
func (d Decimal) MarshalJSON() ([]byte, error) {
	if d.IsEmpty() {
		return json.Marshal(string(ZeroDecimal))
	}
	return json.Marshal(string(d))
}

// UnmarshalJSON accepts both a JSON string and a bare JSON number and keeps
// the digits exactly as written.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Decimal(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDecimal, string(data))
	}
	*d = Decimal(n.String())
	return nil
}
