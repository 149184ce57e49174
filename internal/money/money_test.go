package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Amount
		wantErr bool
	}{
		{name: "bare integer", input: "300", want: 30000},
		{name: "dollar sign and commas", input: "$5,000", want: 500000},
		{name: "decimal places", input: "1,234.50", want: 123450},
		{name: "single decimal place", input: "10.5", want: 1050},
		{name: "leading whitespace", input: "  42", want: 4200},
		{name: "negative", input: "-7.25", want: -725},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abc", wantErr: true},
		{name: "three decimal places", input: "1.234", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromFloat(t *testing.T) {
	got, err := FromFloat(1234.5)
	assert.NoError(t, err)
	assert.Equal(t, Amount(123450), got)

	_, err = FromFloat(-1)
	assert.Error(t, err)
}

func TestString(t *testing.T) {
	assert.Equal(t, "1234.50", Amount(123450).String())
	assert.Equal(t, "0.05", Amount(5).String())
	assert.Equal(t, "-7.25", Amount(-725).String())
}

func TestMulPercent(t *testing.T) {
	// 25% withdrawal fee on 1000.00
	assert.Equal(t, Amount(25000), Amount(100000).MulPercent(25))
	// 16% level-A commission on 1000.00
	assert.Equal(t, Amount(16000), Amount(100000).MulPercent(16))
	// 2% on 1000.00
	assert.Equal(t, Amount(2000), Amount(100000).MulPercent(2))
	// rounding half up: 2% of 0.25 = 0.005 -> 0.01
	assert.Equal(t, Amount(1), Amount(25).MulPercent(2))
}
