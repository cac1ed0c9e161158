package app

import (
	"go.uber.org/fx"

	"github.com/xrpl-wasm/contracts/pkg/interfaces/config"
	"github.com/xrpl-wasm/contracts/pkg/types"
)

// Option 应用程序选项函数类型
type Option func(*options)

// options 应用程序选项
// 实现config.AppOptions接口
type options struct {
	// 用户配置
	appConfig *types.AppConfig

	// API支持开关 (默认启用)
	enableAPI bool

	// 额外的 fx 选项（如 fx.Populate）
	extra []fx.Option
}

// 编译时校验options是否实现了config.AppOptions接口
var _ config.AppOptions = (*options)(nil)

// WithAppConfig 使用已加载的应用配置
func WithAppConfig(appConfig *types.AppConfig) Option {
	return func(o *options) {
		if appConfig != nil {
			o.appConfig = appConfig
		}
	}
}

// WithoutAPI 禁用API模块（CLI 单次命令使用）
func WithoutAPI() Option {
	return func(o *options) {
		o.enableAPI = false
	}
}

// WithPopulate 启动后把容器中的服务写入 targets
func WithPopulate(targets ...interface{}) Option {
	return func(o *options) {
		o.extra = append(o.extra, fx.Populate(targets...))
	}
}

// WithFxOptions 追加自定义 fx 选项
func WithFxOptions(opts ...fx.Option) Option {
	return func(o *options) {
		o.extra = append(o.extra, opts...)
	}
}

// newOptions 创建选项
func newOptions(opts ...Option) *options {
	o := &options{
		appConfig: &types.AppConfig{},
		enableAPI: true,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GetAppConfig 返回应用程序配置
func (o *options) GetAppConfig() *types.AppConfig {
	return o.appConfig
}
