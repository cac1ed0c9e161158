package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	framework "github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	sdktest "github.com/xrpl-wasm/contracts/contracts/sdk/go/testing"
)

func TestRedirect_Success(t *testing.T) {
	dest := sdktest.TestAccount("bob")
	host := sdktest.NewMockHost().
		SetFunctionParam(0, framework.XRP(1_000_000)).
		SetFunctionParam(1, dest)

	code := redirect(host)

	assert.Equal(t, framework.SUCCESS, code)
	require.Len(t, host.Transfers, 1)
	amount, to, ok := host.LastTransfer()
	require.True(t, ok)
	assert.Equal(t, framework.KindXRP, amount.Kind())
	assert.Equal(t, int64(1_000_000), amount.Drops())
	assert.Equal(t, dest, to)
}

func TestRedirect_IOUAmount(t *testing.T) {
	issuer := sdktest.TestAccount("gateway")
	dest := sdktest.TestAccount("bob")
	host := sdktest.NewMockHost().
		SetFunctionParam(0, sdktest.USD(25, issuer)).
		SetFunctionParam(1, dest)

	assert.Equal(t, framework.SUCCESS, redirect(host))
	amount, _, ok := host.LastTransfer()
	require.True(t, ok)
	assert.Equal(t, framework.KindIOU, amount.Kind())
	assert.Equal(t, issuer, amount.Issuer())
}

func TestRedirect_MissingAmount(t *testing.T) {
	host := sdktest.NewMockHost().SetFunctionParam(1, sdktest.TestAccount("bob"))

	code := redirect(host)

	assert.Equal(t, framework.BAD_PARAM, code)
	assert.Empty(t, host.Transfers)
	n, ok := host.TraceNumber("`amount` Parameter Error Code:")
	require.True(t, ok)
	assert.Equal(t, int64(framework.FIELD_NOT_FOUND), n)
}

func TestRedirect_MalformedAmount(t *testing.T) {
	host := sdktest.NewMockHost().
		SetFunctionParamBytes(0, framework.ParamAmount, []byte{0x01, 0x02, 0x03}).
		SetFunctionParam(1, sdktest.TestAccount("bob"))

	assert.Equal(t, framework.BAD_PARAM, redirect(host))
	assert.Empty(t, host.Transfers)
	n, ok := host.TraceNumber("`amount` Parameter Error Code:")
	require.True(t, ok)
	assert.Equal(t, int64(framework.DECODING_ERROR), n)
}

func TestRedirect_MissingAccountStillTransfers(t *testing.T) {
	host := sdktest.NewMockHost().SetFunctionParam(0, framework.XRP(10))
	host.TransferResult = int64(framework.INVALID_ACCOUNT)

	code := redirect(host)

	// 目标账户缺失时以零账户发起转账，由宿主拒绝
	assert.Equal(t, framework.INVALID_ACCOUNT, code)
	require.Len(t, host.Transfers, 1)
	assert.True(t, host.Transfers[0].Destination.IsZero())
}

func TestRedirect_TransferFailurePassthrough(t *testing.T) {
	host := sdktest.NewMockHost().
		SetFunctionParam(0, framework.XRP(10)).
		SetFunctionParam(1, sdktest.TestAccount("bob"))
	host.TransferResult = -5

	code := redirect(host)

	assert.Equal(t, int32(-5), code)
	assert.Len(t, host.Transfers, 1)
	n, ok := host.TraceNumber("AMOUNT Transfer Error Code:")
	require.True(t, ok)
	assert.Equal(t, int64(-5), n)
}

func TestRedirect_TraceFailureDoesNotChangeResult(t *testing.T) {
	cases := []struct {
		name   string
		setup  func(h *sdktest.MockHost)
		expect int32
	}{
		{
			name: "success",
			setup: func(h *sdktest.MockHost) {
				h.SetFunctionParam(0, framework.XRP(10)).SetFunctionParam(1, sdktest.TestAccount("bob"))
			},
			expect: framework.SUCCESS,
		},
		{
			name:   "bad param",
			setup:  func(h *sdktest.MockHost) {},
			expect: framework.BAD_PARAM,
		},
		{
			name: "transfer error",
			setup: func(h *sdktest.MockHost) {
				h.SetFunctionParam(0, framework.XRP(10)).SetFunctionParam(1, sdktest.TestAccount("bob"))
				h.TransferResult = -7
			},
			expect: -7,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			host := sdktest.NewMockHost()
			tc.setup(host)
			host.FailTraces = true
			assert.Equal(t, tc.expect, redirect(host))
			assert.Empty(t, host.Traces)
		})
	}
}
