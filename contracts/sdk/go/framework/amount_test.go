package framework_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	framework "github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	sdktest "github.com/xrpl-wasm/contracts/contracts/sdk/go/testing"
)

func TestXRPEncoding(t *testing.T) {
	data, err := framework.XRP(1_000_000).Encode()
	require.NoError(t, err)
	require.Len(t, data, 8)
	// 正数：bit62 置位
	assert.Equal(t, []byte{0x40, 0x00, 0x00, 0x00, 0x00, 0x0F, 0x42, 0x40}, data)

	decoded, err := framework.DecodeAmount(data)
	require.NoError(t, err)
	assert.Equal(t, framework.KindXRP, decoded.Kind())
	assert.Equal(t, int64(1_000_000), decoded.Drops())
}

func TestXRPEncoding_Negative(t *testing.T) {
	data, err := framework.XRP(-5).Encode()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 5}, data)

	decoded, err := framework.DecodeAmount(data)
	require.NoError(t, err)
	assert.True(t, decoded.IsNegative())
	assert.Equal(t, int64(-5), decoded.Drops())
}

func TestXRPEncoding_OutOfRange(t *testing.T) {
	_, err := framework.XRP(framework.MaxNativeDrops + 1).Encode()
	assert.Equal(t, framework.INVALID_PARAMS, framework.ErrorCode(err))
}

func TestIOUEncoding(t *testing.T) {
	issuer := sdktest.TestAccount("gateway")
	amount := framework.IOU(15, -1, framework.ISOCurrency("USD"), issuer) // 1.5

	mantissa, exponent := amount.IOUValue()
	assert.Equal(t, int64(1_500_000_000_000_000), mantissa)
	assert.Equal(t, int32(-15), exponent)

	data, err := amount.Encode()
	require.NoError(t, err)
	require.Len(t, data, 48)
	assert.Equal(t, byte(0xD4), data[0]) // not-XRP | positive | (exp+97) 高位
	assert.Equal(t, []byte("USD"), data[8+12:8+15])
	assert.Equal(t, issuer[:], data[28:48])

	decoded, err := framework.DecodeAmount(data)
	require.NoError(t, err)
	assert.Equal(t, amount, decoded)
	assert.Equal(t, "USD", decoded.Currency().String())
}

func TestIOUEncoding_Zero(t *testing.T) {
	amount := framework.IOU(0, 5, framework.ISOCurrency("EUR"), sdktest.TestAccount("gateway"))
	assert.True(t, amount.IsZero())

	data, err := amount.Encode()
	require.NoError(t, err)
	assert.Equal(t, byte(0x80), data[0])

	decoded, err := framework.DecodeAmount(data)
	require.NoError(t, err)
	assert.True(t, decoded.IsZero())
}

func TestIOUEncoding_RejectsXRPCurrency(t *testing.T) {
	amount := framework.IOU(1, 0, framework.Currency{}, sdktest.TestAccount("gateway"))
	_, err := amount.Encode()
	assert.Error(t, err)
}

func TestMPTEncoding(t *testing.T) {
	var id framework.MPTID
	for i := range id {
		id[i] = byte(i)
	}
	data, err := framework.MPT(1234, id).Encode()
	require.NoError(t, err)
	require.Len(t, data, 33)
	assert.Equal(t, byte(0x60), data[0])

	decoded, err := framework.DecodeAmount(data)
	require.NoError(t, err)
	assert.Equal(t, framework.KindMPT, decoded.Kind())
	assert.Equal(t, int64(1234), decoded.MPTValue())
	assert.Equal(t, id, decoded.MPTID())
}

func TestDecodeAmount_Malformed(t *testing.T) {
	cases := map[string][]byte{
		"empty":               nil,
		"odd length":          make([]byte, 20),
		"xrp with iou bit":    {0x80, 0, 0, 0, 0, 0, 0, 1},
		"mpt without mpt bit": append([]byte{0x40}, make([]byte, 32)...),
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := framework.DecodeAmount(data)
			assert.Equal(t, framework.DECODING_ERROR, framework.ErrorCode(err))
		})
	}
}

func TestNewTokenAmount(t *testing.T) {
	_, err := framework.NewTokenAmount(framework.XRP(1))
	assert.Error(t, err)

	tok, err := framework.NewTokenAmount(sdktest.USD(1, sdktest.TestAccount("gateway")))
	require.NoError(t, err)
	assert.Equal(t, framework.ParamTokenAmount, tok.ParamType())
}

func TestTransfer_ResultNarrowing(t *testing.T) {
	cases := []struct {
		name   string
		result int64
		expect int32
	}{
		{"success id", 7, 7},
		{"failure code", -5, -5},
		{"large id", int64(1) << 40, 2147483647},
		{"large failure", -(int64(1) << 40), -2147483648},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			host := sdktest.NewMockHost()
			host.TransferResult = tc.result
			got := framework.XRP(1).Transfer(host, sdktest.TestAccount("bob"))
			assert.Equal(t, tc.expect, got)
		})
	}
}

func TestTransfer_InvalidAmountSkipsHost(t *testing.T) {
	host := sdktest.NewMockHost()
	got := framework.Amount{}.Transfer(host, sdktest.TestAccount("bob"))
	assert.Equal(t, framework.INVALID_PARAMS, got)
	assert.Empty(t, host.Transfers)
}
