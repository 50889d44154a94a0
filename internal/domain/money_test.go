package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		m    Money
		code string
		want string
	}{
		{"small", NewMoney(4), "AED", "AED 4.00"},
		{"zero", Money{}, "AED", "AED 0.00"},
		{"other code", NewMoney(4), "USD", "USD 4.00"},
		{"no grouping", NewMoney(1234567), "AED", "AED 1234567.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.m, tt.code))
		})
	}
}

func TestFormatter_DefaultsCode(t *testing.T) {
	assert.Equal(t, "AED 12.00", Formatter{}.Format(NewMoney(12)))
	assert.Equal(t, "EUR 12.00", Formatter{CurrencyCode: "EUR"}.Format(NewMoney(12)))
}

func TestMultiplyAndSum(t *testing.T) {
	assert.Equal(t, "20", Multiply(NewMoney(10), 2).String())
	assert.Equal(t, "0", Sum().String())
	assert.Equal(t, "45", Sum(NewMoney(20), NewMoney(25)).String())

	// beyond int64
	big, err := ParseMoney("9223372036854775807")
	require.NoError(t, err)
	assert.Equal(t, "27670116110564327421", Multiply(big, 3).String())
	assert.Equal(t, "18446744073709551614", Sum(big, big).String())
}

func TestMultiply_DoesNotMutateOperand(t *testing.T) {
	unit := NewMoney(7)
	_ = Multiply(unit, 3)
	_ = Sum(unit, unit)
	assert.Equal(t, "7", unit.String())
}

func TestParseMoney_Rejects(t *testing.T) {
	for _, in := range []string{"", "-1", "+1", "1.5", "abc", " 1"} {
		_, err := ParseMoney(in)
		assert.ErrorIs(t, err, ErrInvalidMoney, in)
		assert.ErrorIs(t, err, ErrValidation, in)
	}
}

func TestMoney_JSONUsesDecimalString(t *testing.T) {
	b, err := json.Marshal(struct {
		P Money `json:"p"`
	}{NewMoney(25)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"p":"25"}`, string(b))

	var out struct {
		P Money `json:"p"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"p":"18446744073709551616"}`), &out))
	assert.Equal(t, "18446744073709551616", out.P.String())

	assert.Error(t, json.Unmarshal([]byte(`{"p":"1e3"}`), &out))
}
