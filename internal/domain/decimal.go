package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Decimal wraps apd.Decimal so monetary figures round-trip through JSON and SQL
// without float conversion. The service stores and compares them; it never does
// arithmetic on them.
type Decimal struct {
	apd.Decimal
}

// Zero constant for convenience
var Zero = NewDecimalFromInt(0)

// NewDecimalFromInt creates a Decimal from an int64
func NewDecimalFromInt(v int64) Decimal {
	d := Decimal{}
	d.SetInt64(v)
	return d
}

// NewDecimalFromString creates a Decimal from a string
func NewDecimalFromString(v string) (Decimal, error) {
	d := Decimal{}
	if _, _, err := d.SetString(v); err != nil {
		return d, fmt.Errorf("invalid decimal string %q: %w", v, err)
	}
	if d.Form != apd.Finite {
		return d, fmt.Errorf("invalid decimal string %q: not a finite number", v)
	}
	return d, nil
}

// MustDecimal is NewDecimalFromString for literals known to be valid.
func MustDecimal(v string) Decimal {
	d, err := NewDecimalFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Decimal) String() string {
	return d.Decimal.String()
}

// Value implements the driver.Valuer interface for database serialization.
func (d Decimal) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements the sql.Scanner interface for database deserialization.
func (d *Decimal) Scan(value interface{}) error {
	if value == nil {
		d.SetInt64(0)
		return nil
	}

	switch v := value.(type) {
	case []byte:
		_, _, err := d.SetString(string(v))
		return err
	case string:
		_, _, err := d.SetString(v)
		return err
	case int64:
		d.SetInt64(v)
		return nil
	case float64:
		_, err := d.SetFloat64(v)
		return err
	default:
		return fmt.Errorf("unsupported type for Decimal scan: %T", value)
	}
}

// IsNegative reports whether d is strictly below zero.
func (d Decimal) IsNegative() bool {
	return d.Sign() < 0
}

func (d Decimal) Cmp(other Decimal) int {
	return d.Decimal.Cmp(&other.Decimal)
}

// MarshalJSON implements the json.Marshaler interface.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalJSON accepts both bare numbers and quoted strings.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) > 1 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := NewDecimalFromString(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
