package locale

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_ExplicitCodeWins(t *testing.T) {
	l := Resolve("zh", "en-US,en;q=0.9")
	assert.Equal(t, "zh", l.Code)
	assert.Equal(t, "全部", l.AllCategory)
}

func TestResolve_AcceptLanguage(t *testing.T) {
	assert.Equal(t, "zh", Resolve("", "zh-CN,zh;q=0.9,en;q=0.8").Code)
	assert.Equal(t, "en", Resolve("", "en-GB").Code)
}

func TestResolve_FallsBackToEnglish(t *testing.T) {
	assert.Equal(t, "en", Resolve("", "").Code)
	assert.Equal(t, "en", Resolve("fr", "").Code)
	assert.Equal(t, "en", Resolve("", "fr-FR").Code)
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$599.98", English.FormatMoney(decimal.RequireFromString("599.98")))
	assert.Equal(t, "$1,299.90", English.FormatMoney(decimal.RequireFromString("1299.9")))
	assert.Equal(t, "¥12,345.00", Chinese.FormatMoney(decimal.NewFromInt(12345)))
	assert.Equal(t, "-$0.50", English.FormatMoney(decimal.RequireFromString("-0.5")))
}

func TestFormatAmount_RoundsOnlyForDisplay(t *testing.T) {
	assert.Equal(t, "0.01", FormatAmount(decimal.RequireFromString("0.005")))
	assert.Equal(t, "123.45", FormatAmount(decimal.RequireFromString("123.45")))
}

func TestParsePrice_KeepsCents(t *testing.T) {
	cases := map[string]string{
		"¥2,199.50": "2199.5",
		"$24.99":    "24.99",
		"CNY 88":    "88",
		" 0.99 ":    "0.99",
	}
	for in, want := range cases {
		got, err := ParsePrice(in)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(decimal.RequireFromString(want)), "%s: got %s", in, got)
	}
}

func TestParsePrice_Invalid(t *testing.T) {
	for _, in := range []string{"", "free", "$1.2.3", "-5"} {
		_, err := ParsePrice(in)
		assert.ErrorIs(t, err, ErrInvalidPrice, in)
	}
}
