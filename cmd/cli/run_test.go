package main

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	"github.com/xrpl-wasm/contracts/internal/core/params"
)

// 帮助中的 simple_transfer 示例参数顺序：账户在前，金额在后
func TestRunHelpExampleParamOrder(t *testing.T) {
	matches := regexp.MustCompile(`--param (\S+)`).FindAllStringSubmatch(runCmd.Long, -1)
	require.Len(t, matches, 2)

	literals := []string{matches[0][1], matches[1][1]}
	encoded, err := params.ParseAll(literals)
	require.NoError(t, err)
	assert.Equal(t, framework.ParamAccountID, encoded[0].Type)
	assert.Equal(t, framework.ParamAmount, encoded[1].Type)
}
