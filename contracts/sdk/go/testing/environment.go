package testing

import (
	framework "github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
)

// ==================== 测试环境配置 ====================

// TestConfig 测试配置
type TestConfig struct {
	// ContractAccount 合约自身账户名称
	ContractAccount string

	// TransferResult 新建宿主的默认转账结果
	TransferResult int64

	// FailTraces 新建宿主是否让跟踪失败
	FailTraces bool
}

// DefaultTestConfig 默认测试配置
func DefaultTestConfig() *TestConfig {
	return &TestConfig{
		ContractAccount: "contract",
		TransferResult:  1,
	}
}

// ==================== 测试环境 ====================

// TestEnvironment 按名称管理测试账户，并按配置创建 MockHost
type TestEnvironment struct {
	config   *TestConfig
	accounts map[string]framework.AccountID
}

// NewTestEnvironment 创建新的测试环境
func NewTestEnvironment(config *TestConfig) *TestEnvironment {
	if config == nil {
		config = DefaultTestConfig()
	}
	env := &TestEnvironment{
		config:   config,
		accounts: make(map[string]framework.AccountID),
	}
	env.CreateAccount(config.ContractAccount)
	return env
}

// CreateAccount 创建（或返回已有的）测试账户
func (env *TestEnvironment) CreateAccount(name string) framework.AccountID {
	if id, ok := env.accounts[name]; ok {
		return id
	}
	id := TestAccount(name)
	env.accounts[name] = id
	return id
}

// Account 获取测试账户，不存在时返回零账户
func (env *TestEnvironment) Account(name string) framework.AccountID {
	return env.accounts[name]
}

// ContractAccount 合约自身账户
func (env *TestEnvironment) ContractAccount() framework.AccountID {
	return env.accounts[env.config.ContractAccount]
}

// NewHost 按环境配置创建 MockHost
func (env *TestEnvironment) NewHost() *MockHost {
	host := NewMockHost()
	host.TransferResult = env.config.TransferResult
	host.FailTraces = env.config.FailTraces
	return host
}
