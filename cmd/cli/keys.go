package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/crypto/key"
)

var (
	keysMnemonic   bool
	keysWords      int
	keysPassphrase bool
)

// keysCmd 开发账户密钥
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "生成与恢复开发账户密钥",
}

var keysNewCmd = &cobra.Command{
	Use:   "new",
	Short: "生成新的开发账户",
	Example: `  xrplwasm keys new
  xrplwasm keys new --mnemonic --words 24`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			kp  *key.KeyPair
			err error
		)
		if keysMnemonic {
			bits, ok := map[int]int{12: 128, 15: 160, 18: 192, 21: 224, 24: 256}[keysWords]
			if !ok {
				return fmt.Errorf("无效的助记词数量: %d，支持 12, 15, 18, 21, 24", keysWords)
			}
			mnemonic, err := key.NewMnemonic(bits)
			if err != nil {
				return err
			}
			passphrase, err := readPassphrase()
			if err != nil {
				return err
			}
			kp, err = key.FromMnemonic(mnemonic, passphrase)
			if err != nil {
				return err
			}
		} else if kp, err = key.Generate(); err != nil {
			return err
		}
		return printKeyPair(kp)
	},
}

var keysRecoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "由私钥或助记词恢复账户（从标准输入读取）",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, err := readSecret("私钥(十六进制)或助记词")
		if err != nil {
			return err
		}

		var kp *key.KeyPair
		if strings.Contains(secret, " ") {
			passphrase, err := readPassphrase()
			if err != nil {
				return err
			}
			kp, err = key.FromMnemonic(secret, passphrase)
			if err != nil {
				return err
			}
		} else {
			raw, err := hex.DecodeString(strings.TrimPrefix(secret, "0x"))
			if err != nil {
				return fmt.Errorf("私钥不是有效的十六进制: %w", err)
			}
			if kp, err = key.FromPrivateKey(raw); err != nil {
				return err
			}
		}
		return printKeyPair(kp)
	},
}

func init() {
	keysNewCmd.Flags().BoolVar(&keysMnemonic, "mnemonic", false, "生成 BIP39 助记词并由其派生")
	keysNewCmd.Flags().IntVar(&keysWords, "words", 12, "助记词数量")
	keysCmd.PersistentFlags().BoolVar(&keysPassphrase, "passphrase", false, "提示输入 BIP39 口令")
	keysCmd.AddCommand(keysNewCmd, keysRecoverCmd)
}

func printKeyPair(kp *key.KeyPair) error {
	view := struct {
		Address    string `json:"address"`
		AccountID  string `json:"account_id"`
		PublicKey  string `json:"public_key"`
		PrivateKey string `json:"private_key"`
		Mnemonic   string `json:"mnemonic,omitempty"`
	}{
		Address:    kp.Address(),
		AccountID:  kp.AccountID.String(),
		PublicKey:  kp.PublicKeyHex(),
		PrivateKey: kp.PrivateKeyHex(),
		Mnemonic:   kp.Mnemonic,
	}
	if out.format == formatJSON {
		return out.json(view)
	}

	if err := out.table(pterm.TableData{
		{"字段", "值"},
		{"地址", view.Address},
		{"账户标识", view.AccountID},
		{"公钥", view.PublicKey},
		{"私钥", view.PrivateKey},
	}); err != nil {
		return err
	}
	if view.Mnemonic != "" {
		out.warning("请妥善备份助记词，丢失将无法恢复账户:")
		pterm.Fprintln(out.w, "  "+view.Mnemonic)
	}
	out.warning("仅用于开发账本，切勿在真实网络使用")
	return nil
}

// readPassphrase 按需读取 BIP39 口令
func readPassphrase() (string, error) {
	if !keysPassphrase {
		return "", nil
	}
	return readSecret("BIP39 口令")
}

// readSecret 终端下隐藏输入，否则从标准输入读取一行
func readSecret(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprintf(os.Stderr, "%s: ", prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("读取输入失败: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("读取输入失败: %w", err)
	}
	return strings.TrimSpace(line), nil
}
