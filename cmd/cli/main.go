// Command xrplwasm 是合约开发宿主的命令行入口
package main

func main() {
	Execute()
}
