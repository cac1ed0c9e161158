package hostabi

import (
	"strconv"

	"github.com/tetratelabs/wazero/api"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
)

// inBounds 检查 [ptr, ptr+length) 是否落在线性内存内
func inBounds(mem api.Memory, ptr, length uint32) bool {
	return uint64(ptr)+uint64(length) <= uint64(mem.Size())
}

// readMemory 读取并复制一段线性内存
func readMemory(m api.Module, ptr, length uint32) ([]byte, int32) {
	mem := m.Memory()
	if mem == nil {
		return nil, framework.NO_MEM_EXPORTED
	}
	if length == 0 {
		return nil, framework.SUCCESS
	}
	if !inBounds(mem, ptr, length) {
		return nil, framework.POINTER_OUT_OF_BOUNDS
	}
	view, ok := mem.Read(ptr, length)
	if !ok {
		return nil, framework.POINTER_OUT_OF_BOUNDS
	}
	return append([]byte(nil), view...), framework.SUCCESS
}

// writeMemory 把 data 写入容量为 capacity 的输出缓冲区
func writeMemory(m api.Module, ptr, capacity uint32, data []byte) int32 {
	mem := m.Memory()
	if mem == nil {
		return framework.NO_MEM_EXPORTED
	}
	if uint64(len(data)) > uint64(capacity) {
		return framework.BUFFER_TOO_SMALL
	}
	if !inBounds(mem, ptr, capacity) {
		return framework.POINTER_OUT_OF_BOUNDS
	}
	if !mem.Write(ptr, data) {
		return framework.POINTER_OUT_OF_BOUNDS
	}
	return int32(len(data))
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}
