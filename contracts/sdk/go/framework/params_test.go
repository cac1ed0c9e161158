package framework_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	framework "github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	sdktest "github.com/xrpl-wasm/contracts/contracts/sdk/go/testing"
)

func TestGetFunctionParam(t *testing.T) {
	bob := sdktest.TestAccount("bob")
	host := sdktest.NewMockHost().SetFunctionParam(0, bob)

	got, err := framework.GetFunctionParam[framework.AccountID](host, 0)
	require.NoError(t, err)
	assert.Equal(t, bob, got)
}

func TestGetFunctionParam_Errors(t *testing.T) {
	host := sdktest.NewMockHost().
		SetFunctionParam(0, framework.XRP(1)).
		SetFunctionParamBytes(1, framework.ParamAccountID, []byte{1, 2, 3}).
		SetFunctionParamError(2, framework.POINTER_OUT_OF_BOUNDS)

	cases := []struct {
		name  string
		index uint32
		code  int32
	}{
		{"type mismatch", 0, framework.INVALID_PARAMS},
		{"bad length", 1, framework.DECODING_ERROR},
		{"host error", 2, framework.POINTER_OUT_OF_BOUNDS},
		{"missing", 9, framework.FIELD_NOT_FOUND},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := framework.GetFunctionParam[framework.AccountID](host, tc.index)
			require.Error(t, err)
			assert.Equal(t, tc.code, framework.ErrorCode(err))
			assert.True(t, got.IsZero())

			var hostErr *framework.HostError
			assert.True(t, errors.As(err, &hostErr))
		})
	}
}

func TestSafeGetFunctionParam(t *testing.T) {
	host := sdktest.NewMockHost()
	got := framework.SafeGetFunctionParam[framework.Amount](host, 0)
	assert.False(t, got.IsValid())
}

func TestGetFunctionParamOr(t *testing.T) {
	fallback := sdktest.TestAccount("fallback")
	host := sdktest.NewMockHost()
	assert.Equal(t, fallback, framework.GetFunctionParamOr(host, 0, fallback))

	bob := sdktest.TestAccount("bob")
	host.SetFunctionParam(0, bob)
	assert.Equal(t, bob, framework.GetFunctionParamOr(host, 0, fallback))
}

func TestInstanceParams(t *testing.T) {
	host := sdktest.NewMockHost().SetInstanceParam(0, framework.XRP(99))

	got, err := framework.GetInstanceParam[framework.Amount](host, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(99), got.Drops())

	// 函数参数与实例参数互不影响
	_, err = framework.GetFunctionParam[framework.Amount](host, 0)
	assert.Equal(t, framework.FIELD_NOT_FOUND, framework.ErrorCode(err))

	missing := framework.SafeGetInstanceParam[framework.Amount](host, 1)
	assert.False(t, missing.IsValid())
}

func TestCompatibleParamTypes(t *testing.T) {
	assert.True(t, framework.CompatibleParamTypes(framework.ParamAmount, framework.ParamTokenAmount))
	assert.True(t, framework.CompatibleParamTypes(framework.ParamTokenAmount, framework.ParamAmount))
	assert.False(t, framework.CompatibleParamTypes(framework.ParamAccountID, framework.ParamAmount))
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, framework.SUCCESS, framework.ErrorCode(nil))
	assert.Equal(t, framework.INTERNAL_ERROR, framework.ErrorCode(errors.New("boom")))
	assert.Equal(t, "FIELD_NOT_FOUND", framework.ErrorName(framework.FIELD_NOT_FOUND))
	assert.Equal(t, "-99", framework.ErrorName(-99))
}

func TestTraceHelpers(t *testing.T) {
	host := sdktest.NewMockHost()
	require.NoError(t, framework.TraceAccount(host, "dest:", sdktest.TestAccount("bob")))
	require.NoError(t, framework.TraceNum(host, "n:", 3))
	assert.True(t, host.HasTrace("dest:"))

	host.FailTraces = true
	err := framework.Trace(host, "ignored")
	assert.Equal(t, framework.INTERNAL_ERROR, framework.ErrorCode(err))
}
