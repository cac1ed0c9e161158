package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero/api"

	hostconfig "github.com/xrpl-wasm/contracts/internal/config/host"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/storage/memory"
)

// addModule 导出 add(i32, i32) -> i32
var addModule = []byte{
	0x00, 0x61, 0x73, 0x6d, // WASM魔数
	0x01, 0x00, 0x00, 0x00, // 版本
	0x01, 0x07, 0x01, 0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7f, // type: (i32, i32) -> i32
	0x03, 0x02, 0x01, 0x00, // function
	0x07, 0x07, 0x01, 0x03, 'a', 'd', 'd', 0x00, 0x00, // export "add"
	0x0a, 0x09, 0x01, 0x07, 0x00, 0x20, 0x00, 0x20, 0x01, 0x6a, 0x0b, // local.get 0; local.get 1; i32.add
}

// runModule 导出 run() -> i32，返回 7
var runModule = []byte{
	0x00, 0x61, 0x73, 0x6d,
	0x01, 0x00, 0x00, 0x00,
	0x01, 0x05, 0x01, 0x60, 0x00, 0x01, 0x7f, // type: () -> i32
	0x03, 0x02, 0x01, 0x00,
	0x07, 0x07, 0x01, 0x03, 'r', 'u', 'n', 0x00, 0x00,
	0x0a, 0x06, 0x01, 0x04, 0x00, 0x41, 0x07, 0x0b, // i32.const 7
}

// spinModule 导出 spin() -> i32，死循环
var spinModule = []byte{
	0x00, 0x61, 0x73, 0x6d,
	0x01, 0x00, 0x00, 0x00,
	0x01, 0x05, 0x01, 0x60, 0x00, 0x01, 0x7f,
	0x03, 0x02, 0x01, 0x00,
	0x07, 0x08, 0x01, 0x04, 's', 'p', 'i', 'n', 0x00, 0x00,
	0x0a, 0x0b, 0x01, 0x09, 0x00, 0x03, 0x40, 0x0c, 0x00, 0x0b, 0x41, 0x00, 0x0b, // loop br 0 end; i32.const 0
}

// importModule 导入 host_lib.get_seven() -> i32，导出 run() 直接调用它
var importModule = []byte{
	0x00, 0x61, 0x73, 0x6d,
	0x01, 0x00, 0x00, 0x00,
	0x01, 0x05, 0x01, 0x60, 0x00, 0x01, 0x7f,
	0x02, 0x16, 0x01,
	0x08, 'h', 'o', 's', 't', '_', 'l', 'i', 'b',
	0x09, 'g', 'e', 't', '_', 's', 'e', 'v', 'e', 'n',
	0x00, 0x00,
	0x03, 0x02, 0x01, 0x00,
	0x07, 0x07, 0x01, 0x03, 'r', 'u', 'n', 0x00, 0x01,
	0x0a, 0x06, 0x01, 0x04, 0x00, 0x10, 0x00, 0x0b, // call 0
}

// commandModule 导出 _start() 与 run() -> i32，没有 _initialize
var commandModule = []byte{
	0x00, 0x61, 0x73, 0x6d,
	0x01, 0x00, 0x00, 0x00,
	0x01, 0x08, 0x02, 0x60, 0x00, 0x00, 0x60, 0x00, 0x01, 0x7f, // type: () -> (), () -> i32
	0x03, 0x03, 0x02, 0x00, 0x01,
	0x07, 0x10, 0x02,
	0x06, '_', 's', 't', 'a', 'r', 't', 0x00, 0x00,
	0x03, 'r', 'u', 'n', 0x00, 0x01,
	0x0a, 0x09, 0x02, 0x02, 0x00, 0x0b, 0x04, 0x00, 0x41, 0x07, 0x0b,
}

func testOptions() *hostconfig.HostOptions {
	opts := hostconfig.New(nil).GetOptions()
	opts.UseCompiler = false
	opts.EnableWASI = false
	return opts
}

func newTestRuntime(t *testing.T, opts *hostconfig.HostOptions) *WazeroRuntime {
	t.Helper()
	r, err := NewWazeroRuntime(nil, opts, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

// TestBasicWASMExecution 编译 → 实例化 → 调用 → 销毁
func TestBasicWASMExecution(t *testing.T) {
	r := newTestRuntime(t, testOptions())
	ctx := context.Background()

	compiled, err := r.CompileContract(ctx, addModule)
	require.NoError(t, err)
	assert.Len(t, compiled.Hash, 32)
	assert.Empty(t, compiled.ImportedFunctions)

	instance, err := r.CreateInstance(ctx, compiled)
	require.NoError(t, err)

	result, err := r.ExecuteFunction(ctx, instance, "add", []uint64{10, 20})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, uint64(30), result[0])

	_, err = r.ExecuteFunction(ctx, instance, "add", []uint64{1})
	assert.ErrorIs(t, err, ErrInvalidSignature)

	require.NoError(t, r.DestroyInstance(ctx, instance))
	assert.Nil(t, instance.Instance)

	_, err = r.ExecuteFunction(ctx, instance, "add", nil)
	assert.ErrorIs(t, err, ErrInvalidInstance)
}

func TestCallEntryPoint(t *testing.T) {
	r := newTestRuntime(t, testOptions())
	ctx := context.Background()

	compiled, err := r.CompileContract(ctx, runModule)
	require.NoError(t, err)
	instance, err := r.CreateInstance(ctx, compiled)
	require.NoError(t, err)
	defer func() { _ = r.DestroyInstance(ctx, instance) }()

	code, err := r.CallEntryPoint(ctx, instance, "run")
	require.NoError(t, err)
	assert.Equal(t, int32(7), code)

	_, err = r.CallEntryPoint(ctx, instance, "missing")
	assert.ErrorIs(t, err, ErrFunctionNotFound)

	addCompiled, err := r.CompileContract(ctx, addModule)
	require.NoError(t, err)
	addInstance, err := r.CreateInstance(ctx, addCompiled)
	require.NoError(t, err)
	defer func() { _ = r.DestroyInstance(ctx, addInstance) }()

	_, err = r.CallEntryPoint(ctx, addInstance, "add")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestCompileCache(t *testing.T) {
	ctx := context.Background()
	opts := testOptions()
	markers, err := memory.New(opts, nil)
	require.NoError(t, err)
	defer markers.Close()

	r, err := NewWazeroRuntime(nil, opts, markers)
	require.NoError(t, err)
	defer r.Close()

	first, err := r.CompileContract(ctx, runModule)
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := r.CompileContract(ctx, runModule)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Hash, second.Hash)

	stats := r.Stats()
	assert.Equal(t, int64(1), stats.Compilations)
	assert.Equal(t, int64(1), stats.CompileCacheHits)

	exists, err := markers.Exists(ctx, compileCacheKey(first.Hash))
	require.NoError(t, err)
	assert.True(t, exists)

	// 新运行时共享标记缓存：进程内未命中，但标记有效
	other, err := NewWazeroRuntime(nil, opts, markers)
	require.NoError(t, err)
	defer other.Close()

	_, err = other.CompileContract(ctx, runModule)
	require.NoError(t, err)
	assert.Equal(t, int64(1), other.Stats().CompileMarkerHits)
	assert.Equal(t, int64(1), other.Stats().Compilations)
}

func TestCompileMarkerValidity(t *testing.T) {
	r := newTestRuntime(t, testOptions())
	hash := calculateHash(runModule)
	marker := newCompileCacheMarker(r, hash, "")

	assert.True(t, marker.IsValidFor(r, hash))
	assert.False(t, marker.IsValidFor(r, calculateHash(addModule)))

	marker.UseCompiler = !marker.UseCompiler
	assert.False(t, marker.IsValidFor(r, hash))
}

// 失败标记跨运行时共享：同一字节码不再重复编译
func TestCompileFailureMarker(t *testing.T) {
	ctx := context.Background()
	opts := testOptions()
	markers, err := memory.New(opts, nil)
	require.NoError(t, err)
	defer markers.Close()

	broken := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00, 0x0a, 0xff}

	r, err := NewWazeroRuntime(nil, opts, markers)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.CompileContract(ctx, broken)
	require.ErrorIs(t, err, ErrCompileFailed)
	assert.Equal(t, int64(0), r.Stats().CompileRejects)

	_, err = r.CompileContract(ctx, broken)
	require.ErrorIs(t, err, ErrCompileFailed)
	assert.Contains(t, err.Error(), "编译标记")
	assert.Equal(t, int64(1), r.Stats().CompileRejects)

	// 参数不同的运行时忽略并删除旧标记
	other := testOptions()
	other.MaxMemoryPages = opts.MaxMemoryPages + 1
	r2, err := NewWazeroRuntime(nil, other, markers)
	require.NoError(t, err)
	defer r2.Close()

	_, err = r2.CompileContract(ctx, broken)
	require.ErrorIs(t, err, ErrCompileFailed)
	assert.Equal(t, int64(0), r2.Stats().CompileRejects)
	assert.Equal(t, int64(0), r2.Stats().CompileMarkerHits)
}

func TestCommandModuleRejected(t *testing.T) {
	r := newTestRuntime(t, testOptions())
	ctx := context.Background()

	compiled, err := r.CompileContract(ctx, commandModule)
	require.NoError(t, err)

	_, err = r.CreateInstance(ctx, compiled)
	assert.ErrorIs(t, err, ErrInstantiateFailed)
	assert.ErrorIs(t, err, ErrCommandModule)
	assert.Equal(t, int64(1), r.Stats().InstanceFailures)
}

func TestInvalidWASM(t *testing.T) {
	r := newTestRuntime(t, testOptions())
	ctx := context.Background()

	_, err := r.CompileContract(ctx, []byte{0x00, 0x01, 0x02, 0x03})
	assert.ErrorIs(t, err, ErrCompileFailed)

	_, err = r.CompileContract(ctx, nil)
	assert.ErrorIs(t, err, ErrCompileFailed)
}

func TestExecutionTimeout(t *testing.T) {
	opts := testOptions()
	opts.ExecutionTimeout = 50 * time.Millisecond
	r := newTestRuntime(t, opts)
	ctx := context.Background()

	compiled, err := r.CompileContract(ctx, spinModule)
	require.NoError(t, err)
	instance, err := r.CreateInstance(ctx, compiled)
	require.NoError(t, err)

	_, err = r.CallEntryPoint(ctx, instance, "spin")
	assert.ErrorIs(t, err, ErrExecutionTimeout)
	require.NoError(t, r.DestroyInstance(ctx, instance))
}

type sevenKey struct{}

func TestHostFunctions(t *testing.T) {
	ctx := context.Background()

	// 未注册宿主模块时实例化失败
	bare := newTestRuntime(t, testOptions())
	compiled, err := bare.CompileContract(ctx, importModule)
	require.NoError(t, err)
	assert.Equal(t, []string{"host_lib.get_seven"}, compiled.ImportedFunctions)
	_, err = bare.CreateInstance(ctx, compiled)
	assert.ErrorIs(t, err, ErrInstantiateFailed)
	assert.Equal(t, int64(1), bare.Stats().InstanceFailures)

	r := newTestRuntime(t, testOptions())
	funcs := map[string]interface{}{
		// 宿主函数从调用 ctx 读取状态
		"get_seven": func(ctx context.Context, _ api.Module) int32 {
			v, _ := ctx.Value(sevenKey{}).(int32)
			return v
		},
	}
	require.NoError(t, r.RegisterHostFunctions("host_lib", funcs))
	require.NoError(t, r.RegisterHostFunctions("host_lib", funcs)) // 重复注册直接返回

	compiled, err = r.CompileContract(ctx, importModule)
	require.NoError(t, err)

	for _, want := range []int32{7, -5} {
		instance, err := r.CreateInstance(ctx, compiled)
		require.NoError(t, err)

		code, err := r.CallEntryPoint(context.WithValue(ctx, sevenKey{}, want), instance, "run")
		require.NoError(t, err)
		assert.Equal(t, want, code)
		require.NoError(t, r.DestroyInstance(ctx, instance))
	}
	assert.Equal(t, int64(2), r.Stats().Instances)
}
