package testing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	framework "github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	sdktest "github.com/xrpl-wasm/contracts/contracts/sdk/go/testing"
)

func TestEnvironmentAccounts(t *testing.T) {
	env := sdktest.NewTestEnvironment(nil)

	alice := env.CreateAccount("alice")
	assert.Equal(t, alice, env.CreateAccount("alice"))
	assert.Equal(t, alice, env.Account("alice"))
	assert.NotEqual(t, alice, env.ContractAccount())
	assert.True(t, env.Account("nobody").IsZero())
}

func TestEnvironmentHost(t *testing.T) {
	env := sdktest.NewTestEnvironment(&sdktest.TestConfig{
		ContractAccount: "c",
		TransferResult:  -3,
		FailTraces:      true,
	})
	host := env.NewHost()

	assert.Equal(t, int64(-3), host.Transfer(nil, env.ContractAccount()))
	assert.Equal(t, framework.INTERNAL_ERROR, host.TraceNum("x", 1))
	assert.Empty(t, host.Traces)
}

func TestMockHostParamErrors(t *testing.T) {
	host := sdktest.NewMockHost().SetFunctionParam(0, framework.XRP(1))

	buf := make([]byte, 4)
	assert.Equal(t, framework.BUFFER_TOO_SMALL, host.FunctionParam(0, framework.ParamAmount, buf))
	assert.Equal(t, framework.INVALID_PARAMS, host.FunctionParam(0, framework.ParamAccountID, make([]byte, 48)))
	assert.Equal(t, framework.FIELD_NOT_FOUND, host.InstanceParam(0, framework.ParamAmount, make([]byte, 48)))

	n := host.FunctionParam(0, framework.ParamAmount, make([]byte, 48))
	require.Equal(t, int32(8), n)
}
