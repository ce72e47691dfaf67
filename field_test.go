package swiftmt

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestField_DateCurrencyAmount(t *testing.T) {
	f := NewField("32A", "240102USD1000,50")
	assert.Equal(t, KindDateCurrencyAmount, f.Kind())
	assert.Equal(t, []string{"240102", "USD", "1000,50"}, f.Components())

	d, err := f.Date()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "USD", f.Currency())

	amount, err := f.Amount()
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1000.50").Equal(amount))
}

func TestField_CurrencyAmount(t *testing.T) {
	f := NewField("32B", "EUR1000,")
	amount, err := f.Amount()
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(1000).Equal(amount))
	assert.Equal(t, "EUR", f.Currency())
}

func TestField_Party(t *testing.T) {
	f := NewField("57A", "/12345\r\nBANKDEFFXXX")
	assert.Equal(t, "12345", f.Account())
	assert.Equal(t, "BANKDEFFXXX", f.BIC())

	noAccount := NewField("52A", "BANKBEBB")
	assert.Equal(t, "", noAccount.Account())
	assert.Equal(t, "BANKBEBB", noAccount.BIC())
}

func TestField_Lines(t *testing.T) {
	f := NewField("59", "/67890\nJANE DOE\nMAIN STREET")
	assert.Equal(t, KindLines, f.Kind())
	assert.Equal(t, []string{"/67890", "JANE DOE", "MAIN STREET"}, f.Lines())
	assert.Equal(t, "JANE DOE", f.Component(1))
	assert.Equal(t, "", f.Component(7))
	assert.Equal(t, "", f.Component(-1))
}

func TestField_Qualified(t *testing.T) {
	tests := []struct {
		name      string
		tag       string
		value     string
		qualifier string
		issuer    string
		rest      string
	}{
		{"no issuer", "98A", ":SETT//20240102", "SETT", "", "20240102"},
		{"issuer", "22F", ":STCO/XYZ1/NOMC", "STCO", "XYZ1", "NOMC"},
		{"multi-line", "70E", ":SPRO//LINE1\nLINE2", "SPRO", "", "LINE1\nLINE2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewField(tt.tag, tt.value)
			assert.Equal(t, KindQualified, f.Kind())
			assert.Equal(t, tt.qualifier, f.Qualifier())
			assert.Equal(t, tt.issuer, f.Component(1))
			assert.Equal(t, tt.rest, f.Component(2))
		})
	}
}

func TestField_QualifiedDateAndBIC(t *testing.T) {
	d, err := NewField("98A", ":SETT//20240102").Date()
	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())

	assert.Equal(t, "BANKDEFFXXX", NewField("95P", ":BUYR//BANKDEFFXXX").BIC())
	assert.Equal(t, "", NewField("95Q", ":BUYR//JOHN").BIC())
}

func TestField_QualifiedAmountSign(t *testing.T) {
	tests := []struct {
		value    string
		currency string
		amount   string
	}{
		{":SETT//USD10,5", "USD", "10.5"},
		{":SETT//NUSD10,5", "USD", "-10.5"},
		{":SETT//N10,", "", "-10"},
		{":SETT//NOK10,", "NOK", "10"},
		{":ACRU//NNOK7,25", "NOK", "-7.25"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			f := NewField("19A", tt.value)
			assert.Equal(t, tt.currency, f.Currency())
			amount, err := f.Amount()
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.amount).Equal(amount), "got %s", amount)
		})
	}
}

func TestField_Plain(t *testing.T) {
	f := FieldFromTag(NewTag("20", "REF123"))
	assert.Equal(t, KindPlain, f.Kind())
	assert.Equal(t, "REF123", f.Value())
	assert.Equal(t, ":20:REF123", f.String())
	assert.Equal(t, NewTag("20", "REF123"), f.Tag())
	assert.Equal(t, "", f.Qualifier())
	assert.Equal(t, "", f.BIC())

	_, err := f.Amount()
	assert.ErrorIs(t, err, ErrMissingComponent)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "20", fe.Tag)

	_, err = f.Date()
	assert.ErrorIs(t, err, ErrMissingComponent)
}

func TestField_BadDate(t *testing.T) {
	_, err := NewField("32A", "241302USD1,").Date()
	assert.ErrorIs(t, err, ErrMissingComponent)
}

func TestField_NumberAndLetter(t *testing.T) {
	assert.Equal(t, "32", NewField("32A", "").Number())
	assert.Equal(t, "A", NewField("32A", "").Letter())
	assert.Equal(t, "20", NewField("20", "").Number())
	assert.Equal(t, "", NewField("20", "").Letter())
}

func TestParseAmount(t *testing.T) {
	tests := map[string]string{
		"1000,50": "1000.5",
		"1000,":   "1000",
		"0,01":    "0.01",
		" 12,3 ":  "12.3",
		"-5,":     "-5",
	}
	for in, want := range tests {
		got, err := ParseAmount(in)
		require.NoError(t, err, in)
		assert.True(t, decimal.RequireFromString(want).Equal(got), in)
	}

	for _, in := range []string{"", ",", "-", "12,3,4", "ABC"} {
		_, err := ParseAmount(in)
		assert.Error(t, err, in)
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1000,", FormatAmount(decimal.NewFromInt(1000)))
	assert.Equal(t, "1000,5", FormatAmount(decimal.RequireFromString("1000.50")))
}
