// Command param-encoder 把参数字面量编码为宿主参数字节
package main

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/crypto/address"
	"github.com/xrpl-wasm/contracts/internal/core/params"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("XRPL WASM 合约参数编码工具")
		fmt.Println("用法:")
		fmt.Println("  param-encoder encode <literal>...")
		fmt.Println("  param-encoder address <r地址|40位十六进制>")
		fmt.Println("")
		fmt.Println("示例:")
		fmt.Println("  param-encoder encode xrp:1000000 account:rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh")
		fmt.Println("  param-encoder encode iou:1.5/USD/rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe")
		fmt.Println("  param-encoder address rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh")
		return
	}

	switch os.Args[1] {
	case "encode":
		if len(os.Args) < 3 {
			log.Fatal("encode需要至少1个参数字面量")
		}
		encodeLiterals(os.Args[2:])
	case "address":
		if len(os.Args) != 3 {
			log.Fatal("address需要1个参数: <address>")
		}
		convertAddress(os.Args[2])
	default:
		log.Fatal("未知操作:", os.Args[1])
	}
}

func encodeLiterals(literals []string) {
	fmt.Printf("🔄 编码参数...\n")

	encoded, err := params.ParseAll(literals)
	if err != nil {
		log.Fatal("参数解析失败:", err)
	}

	for i, p := range encoded {
		fmt.Printf("#%d %-14s %3d 字节  %s\n", i, p.Type.String(), len(p.Data), p.Hex())
		fmt.Printf("   还原: %s\n", params.Describe(p))
	}

	fmt.Printf("\n📋 可用于 /v1/invoke 的参数:\n")
	fmt.Printf(`"params": ["%s"]`+"\n", strings.Join(literals, `", "`))
}

func convertAddress(s string) {
	id, err := address.ParseAccount(s)
	if err != nil {
		log.Fatal("地址解析失败:", err)
	}

	fmt.Printf("✅ 账户转换完成\n")
	fmt.Printf("经典地址: %s\n", address.EncodeAccountID(id))
	fmt.Printf("账户标识: %s\n", strings.ToUpper(hex.EncodeToString(id[:])))
	fmt.Printf("参数字面量: account:%s\n", address.EncodeAccountID(id))
}
