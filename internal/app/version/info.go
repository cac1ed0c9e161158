// Package version 提供构建版本信息
package version

import (
	"fmt"
	"runtime"
	"time"
)

// ProductName 产品名称
const ProductName = "xrpl-wasm 合约开发宿主"

// 构建时注入的变量，通过ldflags设置
var (
	Version = "v0.1.0"

	BuildTime = "unknown"     // RFC3339
	BuildEnv  = "development" // development | testing | production
	GitCommit = "unknown"
)

// BuildInfo 完整构建信息结构
type BuildInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	BuildEnv  string `json:"build_env"`
	GitCommit string `json:"git_commit"`

	// 运行时信息
	GoVersion string `json:"go_version"`
	GoArch    string `json:"go_arch"`
	GoOS      string `json:"go_os"`
}

// GetBuildInfo 获取完整构建信息
func GetBuildInfo() *BuildInfo {
	return &BuildInfo{
		Version:   Version,
		BuildTime: BuildTime,
		BuildEnv:  BuildEnv,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		GoArch:    runtime.GOARCH,
		GoOS:      runtime.GOOS,
	}
}

// GetFullVersion 获取完整版本信息（用于详细输出）
func GetFullVersion() string {
	info := GetBuildInfo()

	versionStr := fmt.Sprintf("%s %s", ProductName, info.Version)
	if info.GitCommit != "unknown" {
		versionStr += fmt.Sprintf(" (%s)", info.GitCommit)
	}
	if info.BuildTime != "unknown" {
		if parsedTime, err := time.Parse(time.RFC3339, info.BuildTime); err == nil {
			versionStr += fmt.Sprintf("\n构建时间: %s", parsedTime.Format("2006-01-02 15:04:05 MST"))
		} else {
			versionStr += fmt.Sprintf("\n构建时间: %s", info.BuildTime)
		}
	}
	versionStr += fmt.Sprintf("\n构建环境: %s", info.BuildEnv)
	versionStr += fmt.Sprintf("\nGo版本: %s", info.GoVersion)
	versionStr += fmt.Sprintf("\n平台: %s/%s", info.GoOS, info.GoArch)

	return versionStr
}

// IsProductionBuild 判断是否为生产构建
func IsProductionBuild() bool { return BuildEnv == "production" }
