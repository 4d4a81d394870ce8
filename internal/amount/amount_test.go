package amount

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWei(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"2.5", "2500000000000000000"},
		{"0", "0"},
		{"1", "1000000000000000000"},
		{"0.000000000000000001", "1"},
		{"1000000", "1000000000000000000000000"},
	}
	for _, tc := range cases {
		got, err := ToWei(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got.String(), tc.in)
	}
}

func TestToWei_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"-1", "abc", "", "1.2.3", "0.0000000000000000001"} {
		_, err := ToWei(in)
		assert.Error(t, err, in)
	}
}

func TestDepositAndFinalPaymentSumToTotal(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"2.5", "0.3", "1", "0.000000000000000001", "123456.789", "0"} {
		total, err := ToWei(in)
		require.NoError(t, err)

		sum := new(big.Int).Add(Deposit(total), FinalPayment(total))
		assert.Zero(t, sum.Cmp(total), "deposit+final must equal total for %s", in)
	}
}

func TestDeposit(t *testing.T) {
	t.Parallel()

	total, err := ToWei("2.5")
	require.NoError(t, err)
	assert.Equal(t, "375000000000000000", Deposit(total).String())
	assert.Equal(t, "2125000000000000000", FinalPayment(total).String())
}

func TestFormat(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"1.2000": "1.2",
		"0.000":  "0",
		"3":      "3",
		"2.50":   "2.5",
		"0.375":  "0.375",
		"10":     "10",
	}
	for in, want := range cases {
		assert.Equal(t, want, Format(in), in)
	}
}

func TestFormatWei(t *testing.T) {
	t.Parallel()

	x, _ := new(big.Int).SetString("2125000000000000000", 10)
	assert.Equal(t, "2.125", FormatWei(x))
	assert.Equal(t, "0", FormatWei(big.NewInt(0)))
}
