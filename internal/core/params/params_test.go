package params

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
)

const (
	testAddress = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"
	testHex     = "B5F762798A53D543A014CAF8B297CFF8F2F937E8"
	testMPTID   = "00000001B5F762798A53D543A014CAF8B297CFF8F2F937E8"
)

func TestParseAccount(t *testing.T) {
	for _, literal := range []string{"account:" + testAddress, "account:" + testHex, " ACCOUNT:0x" + strings.ToLower(testHex)} {
		p, err := Parse(literal)
		require.NoError(t, err, literal)
		assert.Equal(t, framework.ParamAccountID, p.Type)
		assert.Equal(t, testHex, p.Hex())
	}

	_, err := Parse("account:rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTi")
	assert.ErrorIs(t, err, ErrInvalidLiteral)
}

func TestParseXRP(t *testing.T) {
	p, err := Parse("xrp:100")
	require.NoError(t, err)
	assert.Equal(t, framework.ParamAmount, p.Type)
	assert.Equal(t, "4000000000000064", p.Hex())

	_, err = Parse("xrp:-1")
	assert.ErrorIs(t, err, ErrInvalidLiteral)
	_, err = Parse("xrp:1.5")
	assert.ErrorIs(t, err, ErrInvalidLiteral)
}

func TestParseIOU(t *testing.T) {
	p, err := Parse("iou:1.5/USD/" + testAddress)
	require.NoError(t, err)
	assert.Equal(t, framework.ParamTokenAmount, p.Type)
	require.Len(t, p.Data, 48)

	amount, err := framework.DecodeAmount(p.Data)
	require.NoError(t, err)
	assert.Equal(t, framework.KindIOU, amount.Kind())
	mantissa, exponent := amount.IOUValue()
	assert.Equal(t, int64(1_500_000_000_000_000), mantissa)
	assert.Equal(t, int32(-15), exponent)
	assert.Equal(t, "USD", amount.Currency().String())
	assert.Equal(t, testHex, amount.Issuer().String())

	assert.Equal(t, "iou:1.5/USD/"+testAddress, Describe(p))

	for _, bad := range []string{
		"iou:1.5/USD",
		"iou:abc/USD/" + testAddress,
		"iou:1/XRP/" + testAddress,
		"iou:1/USDT/" + testAddress,
		"iou:1/USD/nope",
	} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidLiteral, bad)
	}
}

func TestParseIOUValue(t *testing.T) {
	tests := []struct {
		in       string
		mantissa int64
		exponent int32
	}{
		{"0", 0, 0},
		{"25", 25, 0},
		{"-0.5", -5, -1},
		{"12345678901234567", 1234567890123457, 1},
		{"1e-20", 1, -20},
	}
	for _, tt := range tests {
		m, e, err := ParseIOUValue(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.mantissa, m, tt.in)
		assert.Equal(t, tt.exponent, e, tt.in)
	}
}

func TestParseMPT(t *testing.T) {
	p, err := Parse("mpt:42/" + testMPTID)
	require.NoError(t, err)
	assert.Equal(t, framework.ParamTokenAmount, p.Type)
	require.Len(t, p.Data, 33)
	assert.Equal(t, byte(0x60), p.Data[0])
	assert.Equal(t, "mpt:42/"+testMPTID, Describe(p))

	_, err = Parse("mpt:42/00")
	assert.ErrorIs(t, err, ErrInvalidLiteral)
	_, err = Parse("mpt:x/" + testMPTID)
	assert.ErrorIs(t, err, ErrInvalidLiteral)
}

func TestParseRaw(t *testing.T) {
	p, err := Parse("raw:amount/0102")
	require.NoError(t, err)
	assert.Equal(t, framework.ParamAmount, p.Type)
	assert.Equal(t, []byte{0x01, 0x02}, p.Data)
	assert.Equal(t, "invalid:0102", Describe(p))

	_, err = Parse("raw:blob/00")
	assert.ErrorIs(t, err, ErrInvalidLiteral)
}

func TestParseErrors(t *testing.T) {
	for _, bad := range []string{"", "100", "foo:1"} {
		_, err := Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidLiteral, bad)
	}

	_, err := ParseAll([]string{"xrp:1", "bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "参数 1")
}

func TestParseAmount(t *testing.T) {
	a, err := ParseAmount("xrp:7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), a.Drops())

	_, err = ParseAmount("account:" + testAddress)
	assert.ErrorIs(t, err, ErrInvalidLiteral)
	assert.Equal(t, "xrp:7", DescribeAmount(a))
}
