package domain

import (
	"fmt"
	"math/big"
)

// Money хранит сумму в целых единицах валюты (без копеек), произвольной точности.
// Значения неизменяемы: все операции возвращают новую Money.
type Money struct {
	v *big.Int
}

// DefaultCurrencyCode используется, если код валюты не сконфигурирован.
const DefaultCurrencyCode = "AED"

func NewMoney(units int64) Money {
	if units < 0 {
		panic(fmt.Sprintf("domain: negative money %d", units))
	}
	return Money{v: big.NewInt(units)}
}

// ParseMoney разбирает десятичную строку из цифр. Знаки, дроби и пустые строки отвергаются.
func ParseMoney(s string) (Money, error) {
	if s == "" {
		return Money{}, fmt.Errorf("%w: empty", ErrInvalidMoney)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return Money{}, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
		}
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidMoney, s)
	}
	return Money{v: v}, nil
}

func (m Money) int() *big.Int {
	if m.v == nil {
		return new(big.Int)
	}
	return m.v
}

func (m Money) IsZero() bool { return m.int().Sign() == 0 }

func (m Money) Equal(o Money) bool { return m.int().Cmp(o.int()) == 0 }

func (m Money) Cmp(o Money) int { return m.int().Cmp(o.int()) }

// String десятичная запись без оформления, например "45".
func (m Money) String() string { return m.int().String() }

// Int64 значение, если оно помещается в int64.
func (m Money) Int64() (int64, bool) {
	v := m.int()
	if !v.IsInt64() {
		return 0, false
	}
	return v.Int64(), true
}

// Multiply unit × quantity. quantity не может быть отрицательным.
func Multiply(unit Money, quantity int) Money {
	if quantity < 0 {
		panic(fmt.Sprintf("domain: negative quantity %d", quantity))
	}
	return Money{v: new(big.Int).Mul(unit.int(), big.NewInt(int64(quantity)))}
}

// Sum точная сумма; Sum() равна нулю.
func Sum(values ...Money) Money {
	total := new(big.Int)
	for _, m := range values {
		total.Add(total, m.int())
	}
	return Money{v: total}
}

// Format выводит "<code> <units>.00". Цены целые, суффикс постоянный.
func Format(m Money, code string) string {
	return code + " " + m.String() + ".00"
}

// Formatter форматирование с заданным кодом валюты.
type Formatter struct {
	CurrencyCode string
}

func (f Formatter) Format(m Money) string {
	code := f.CurrencyCode
	if code == "" {
		code = DefaultCurrencyCode
	}
	return Format(m, code)
}

func (m Money) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalText(b []byte) error {
	parsed, err := ParseMoney(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
