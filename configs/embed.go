package configs

import _ "embed"

// 嵌入各环境的默认配置文件
//
//go:embed development/config.json
var developmentConfig []byte

//go:embed testing/config.json
var testingConfig []byte

// GetDevelopmentConfig 获取开发环境配置
func GetDevelopmentConfig() []byte {
	return developmentConfig
}

// GetTestingConfig 获取测试环境配置
func GetTestingConfig() []byte {
	return testingConfig
}

// ForEnvironment 按运行环境返回嵌入配置，未知环境返回开发配置
func ForEnvironment(env string) []byte {
	if env == "test" || env == "testing" {
		return testingConfig
	}
	return developmentConfig
}
