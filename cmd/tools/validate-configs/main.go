// Package main 提供验证宿主配置文件的命令行工具
package main

import (
	"fmt"
	"os"

	"github.com/xrpl-wasm/contracts/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "用法: %s <config-file>...\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "示例: %s configs/*/config.json\n", os.Args[0])
		os.Exit(1)
	}

	var hasError bool
	for _, configPath := range os.Args[1:] {
		if err := validateConfig(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %s: %v\n", configPath, err)
			hasError = true
		} else {
			fmt.Printf("✅ %s: 验证通过\n", configPath)
		}
	}

	if hasError {
		os.Exit(1)
	}
}

func validateConfig(configPath string) error {
	appConfig, err := config.Load(configPath, "")
	if err != nil {
		return err
	}
	return config.Validate(config.NewProvider(appConfig))
}
