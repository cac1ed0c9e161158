package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/xrpl-wasm/contracts/configs"
	logconfig "github.com/xrpl-wasm/contracts/internal/config/log"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/config"
	"github.com/xrpl-wasm/contracts/pkg/types"
)

// ErrConfigNotFound 指定的配置文件不存在
var ErrConfigNotFound = errors.New("config file not found")

// appOptions 实现 config.AppOptions
type appOptions struct {
	appConfig *types.AppConfig
}

func (o *appOptions) GetAppConfig() *types.AppConfig {
	return o.appConfig
}

// NewAppOptions 包装已解析的应用配置
func NewAppOptions(appConfig *types.AppConfig) config.AppOptions {
	return &appOptions{appConfig: appConfig}
}

// Parse 解析JSON配置
//
// 🔧 零值处理：字段均为指针，nil 表示未设置并使用默认值，
// 显式写出的零值（0、false、""）会被采用
func Parse(data []byte) (*types.AppConfig, error) {
	var appConfig types.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	return &appConfig, nil
}

// Load 加载配置文件；path 为空时使用对应环境的嵌入配置
func Load(path, env string) (*types.AppConfig, error) {
	if path == "" {
		return Parse(configs.ForEnvironment(env))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	return Parse(data)
}

// CreateDataDirectories 根据配置创建数据目录与日志目录
func CreateDataDirectories(p config.Provider) error {
	directories := []string{p.GetDataDir()}
	if ledgerOpts := p.GetLedger(); !ledgerOpts.InMemory() {
		directories = append(directories, ledgerOpts.Path)
	}
	if logCfg := logconfig.NewFromOptions(p.GetLog()); logCfg.IsMultiFileEnabled() {
		directories = append(directories, logCfg.GetLogDir())
	}

	for _, dir := range directories {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建目录 %s 失败: %w", dir, err)
		}
	}
	return nil
}
