package runtime

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"

	hostconfig "github.com/xrpl-wasm/contracts/internal/config/host"
	logimpl "github.com/xrpl-wasm/contracts/internal/core/infrastructure/log"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/log"
	"github.com/xrpl-wasm/contracts/pkg/interfaces/infrastructure/storage"
	"github.com/xrpl-wasm/contracts/pkg/types"
)

// WazeroRuntime 基于wazero的WASM运行时
//
// 🎯 **核心职责**：编译合约、注册宿主模块、按调用实例化并执行入口函数
//
// 📋 **设计特点**：
// - 线程安全：支持并发编译和执行
// - 编译缓存：CompiledModule 保存在进程内，存储层只保存可验证的编译标记
// - 资源隔离：每次调用一个独立实例，调用结束即销毁
// - 宿主模块只实例化一次，宿主函数从 ctx 读取调用状态
type WazeroRuntime struct {
	logger log.Logger

	runtime wazero.Runtime

	// 编译标记缓存（bigcache）
	cache storage.MemoryStore

	// 进程内编译模块缓存
	compiledCache sync.Map // map[string]wazero.CompiledModule

	// 已实例化的宿主模块
	hostModules map[string]bool
	hostMutex   sync.Mutex

	options *hostconfig.HostOptions

	// 实例名序号，保证并发实例名唯一
	instanceSeq uint64

	stats Stats
}

// NewWazeroRuntime 创建wazero运行时
//
// 📋 **参数说明**：
//   - logger: 日志服务（可为nil）
//   - options: 宿主配置（nil 使用默认配置）
//   - cache: 编译标记缓存（可为nil，表示不使用缓存）
func NewWazeroRuntime(logger log.Logger, options *hostconfig.HostOptions, cache storage.MemoryStore) (*WazeroRuntime, error) {
	logger = logimpl.OrNop(logger)
	if options == nil {
		options = hostconfig.New(nil).GetOptions()
	}

	ctx := context.Background()
	var cfg wazero.RuntimeConfig
	if options.UseCompiler {
		cfg = wazero.NewRuntimeConfig().WithCompilationCache(wazero.NewCompilationCache())
	} else {
		cfg = wazero.NewRuntimeConfigInterpreter()
	}
	// 超时依赖 context 取消中断正在执行的合约
	cfg = cfg.WithCloseOnContextDone(true)
	if options.MaxMemoryPages > 0 {
		cfg = cfg.WithMemoryLimitPages(options.MaxMemoryPages)
	}
	wasmRuntime := wazero.NewRuntimeWithConfig(ctx, cfg)

	// TinyGo/wasip1 编译的合约依赖 WASI，必须先于合约模块实例化
	if options.EnableWASI {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, wasmRuntime); err != nil {
			_ = wasmRuntime.Close(ctx)
			return nil, fmt.Errorf("WASI模块实例化失败: %w", err)
		}
		logger.Debug("WASI模块实例化成功（wasi_snapshot_preview1）")
	}

	return &WazeroRuntime{
		logger:      logger,
		runtime:     wasmRuntime,
		cache:       cache,
		hostModules: make(map[string]bool),
		options:     options,
	}, nil
}

// Options 运行时使用的宿主配置
func (r *WazeroRuntime) Options() *hostconfig.HostOptions {
	return r.options
}

// Stats 运行时统计快照
func (r *WazeroRuntime) Stats() StatsSnapshot {
	return r.stats.snapshot()
}

// CompileContract 编译WASM合约
//
// 🎯 **核心编译流程**：
//  1. 进程内缓存命中直接返回
//  2. 使用wazero编译WASM字节码
//  3. 回填进程内缓存并写入编译标记（失败也写入，后续直接拒绝）
func (r *WazeroRuntime) CompileContract(ctx context.Context, wasmBytes []byte) (*types.CompiledContract, error) {
	if len(wasmBytes) == 0 {
		return nil, fmt.Errorf("%w: 字节码为空", ErrCompileFailed)
	}

	hash := calculateHash(wasmBytes)
	cacheKey := compileCacheKey(hash)

	if v, ok := r.compiledCache.Load(cacheKey); ok {
		if cm, ok := v.(wazero.CompiledModule); ok {
			atomic.AddInt64(&r.stats.compileCacheHits, 1)
			return r.newCompiledContract(hash, cm, true), nil
		}
		r.compiledCache.Delete(cacheKey)
	}

	// 失败标记：同一字节码在相同参数下已确认无法编译，直接拒绝
	if marker, ok := r.loadMarker(ctx, cacheKey, hash); ok {
		atomic.AddInt64(&r.stats.compileMarkerHits, 1)
		if marker.Error != "" {
			atomic.AddInt64(&r.stats.compileRejects, 1)
			return nil, fmt.Errorf("%w: %s（编译标记）", ErrCompileFailed, marker.Error)
		}
		r.logger.Debugf("编译标记命中: %x", hash[:8])
	}

	compiled, err := r.runtime.CompileModule(ctx, wasmBytes)
	if err != nil {
		r.storeMarker(ctx, cacheKey, newCompileCacheMarker(r, hash, err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrCompileFailed, err)
	}
	atomic.AddInt64(&r.stats.compilations, 1)

	// 并发编译同一合约时保留先写入的模块
	if prev, loaded := r.compiledCache.LoadOrStore(cacheKey, compiled); loaded {
		_ = compiled.Close(ctx)
		compiled = prev.(wazero.CompiledModule)
	}
	r.storeMarker(ctx, cacheKey, newCompileCacheMarker(r, hash, ""))

	contract := r.newCompiledContract(hash, compiled, false)
	r.logger.Debugf("WASM合约编译成功: %x imports=%v", hash[:8], contract.ImportedFunctions)
	return contract, nil
}

func (r *WazeroRuntime) newCompiledContract(hash []byte, cm wazero.CompiledModule, fromCache bool) *types.CompiledContract {
	imports := make([]string, 0, len(cm.ImportedFunctions()))
	for _, def := range cm.ImportedFunctions() {
		moduleName, funcName, _ := def.Import()
		imports = append(imports, moduleName+"."+funcName)
	}
	return &types.CompiledContract{
		Hash:              hash,
		Module:            cm,
		ImportedFunctions: imports,
		CompiledAt:        time.Now().Unix(),
		FromCache:         fromCache,
	}
}

// compileCacheMarker 存储层的可验证缓存条目（不承载 CompiledModule 本体）
type compileCacheMarker struct {
	Version        int    `json:"version"`
	WasmSHA256     string `json:"wasm_sha256"`
	UseCompiler    bool   `json:"use_compiler"`
	EnableWASI     bool   `json:"enable_wasi"`
	MaxMemoryPages uint32 `json:"max_memory_pages"`
	CreatedAt      int64  `json:"created_at"`

	// Error 非空表示编译失败及原因
	Error string `json:"error,omitempty"`
}

func newCompileCacheMarker(r *WazeroRuntime, hash []byte, failure string) compileCacheMarker {
	return compileCacheMarker{
		Error:          failure,
		Version:        1,
		WasmSHA256:     fmt.Sprintf("%x", hash),
		UseCompiler:    r.options.UseCompiler,
		EnableWASI:     r.options.EnableWASI,
		MaxMemoryPages: r.options.MaxMemoryPages,
		CreatedAt:      time.Now().Unix(),
	}
}

// IsValidFor 标记是否对应当前运行时参数下的同一字节码
func (m compileCacheMarker) IsValidFor(r *WazeroRuntime, hash []byte) bool {
	return m.Version == 1 &&
		m.WasmSHA256 == fmt.Sprintf("%x", hash) &&
		m.UseCompiler == r.options.UseCompiler &&
		m.EnableWASI == r.options.EnableWASI &&
		m.MaxMemoryPages == r.options.MaxMemoryPages
}

// loadMarker 读取编译标记，参数不一致的旧标记被删除
func (r *WazeroRuntime) loadMarker(ctx context.Context, key string, hash []byte) (compileCacheMarker, bool) {
	var marker compileCacheMarker
	if r.cache == nil {
		return marker, false
	}
	cached, exists, err := r.cache.Get(ctx, key)
	if err != nil || !exists {
		return marker, false
	}
	if err := json.Unmarshal(cached, &marker); err != nil || !marker.IsValidFor(r, hash) {
		_ = r.cache.Delete(ctx, key)
		return compileCacheMarker{}, false
	}
	return marker, true
}

func (r *WazeroRuntime) storeMarker(ctx context.Context, key string, marker compileCacheMarker) {
	if r.cache == nil {
		return
	}
	b, err := json.Marshal(marker)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, b, r.options.CompileCacheTTL); err != nil {
		r.logger.Warnf("写入编译标记失败: %v", err)
	}
}

// CreateInstance 创建合约实例
//
// 合约导入的宿主函数必须已通过 RegisterHostFunctions 注册，否则实例化失败。
func (r *WazeroRuntime) CreateInstance(ctx context.Context, compiled *types.CompiledContract) (*types.WASMInstance, error) {
	wazeroCompiled, ok := compiled.Module.(wazero.CompiledModule)
	if !ok {
		return nil, fmt.Errorf("%w: 无效的编译模块类型", ErrInstantiateFailed)
	}

	// 命令模式模块的 _start 会执行 main 后退出，入口函数调用时运行时未初始化
	exports := wazeroCompiled.ExportedFunctions()
	if _, isCommand := exports["_start"]; isCommand {
		if _, isReactor := exports["_initialize"]; !isReactor {
			atomic.AddInt64(&r.stats.instanceFailures, 1)
			return nil, fmt.Errorf("%w: %w", ErrInstantiateFailed, ErrCommandModule)
		}
	}

	seq := atomic.AddUint64(&r.instanceSeq, 1)
	name := fmt.Sprintf("contract_%x_%d", compiled.Hash[:8], seq)

	// reactor 形式的合约导出 _initialize，未导出时跳过
	moduleConfig := wazero.NewModuleConfig().
		WithName(name).
		WithStartFunctions("_initialize")

	apiModule, err := r.runtime.InstantiateModule(ctx, wazeroCompiled, moduleConfig)
	if err != nil {
		atomic.AddInt64(&r.stats.instanceFailures, 1)
		return nil, fmt.Errorf("%w: %v", ErrInstantiateFailed, err)
	}
	atomic.AddInt64(&r.stats.instances, 1)

	return &types.WASMInstance{
		ID:        name,
		Hash:      compiled.Hash,
		Instance:  apiModule,
		Memory:    apiModule.Memory(),
		CreatedAt: time.Now().Unix(),
		Status:    types.WASMInstanceStatusCreated,
	}, nil
}

// ExecuteFunction 执行合约函数
//
// 参数与返回值为 wazero 原生 uint64 格式；配置了超时则在超时后中断执行。
func (r *WazeroRuntime) ExecuteFunction(ctx context.Context, instance *types.WASMInstance, functionName string, params []uint64) ([]uint64, error) {
	apiModule, ok := instance.Instance.(api.Module)
	if !ok {
		return nil, ErrInvalidInstance
	}

	fn := apiModule.ExportedFunction(functionName)
	if fn == nil {
		return nil, fmt.Errorf("%w: '%s'", ErrFunctionNotFound, functionName)
	}
	if got := len(fn.Definition().ParamTypes()); got != len(params) {
		return nil, fmt.Errorf("%w: '%s' 需要 %d 个参数，实际 %d", ErrInvalidSignature, functionName, got, len(params))
	}

	executionCtx := ctx
	if r.options.ExecutionTimeout > 0 {
		var cancel context.CancelFunc
		executionCtx, cancel = context.WithTimeout(ctx, r.options.ExecutionTimeout)
		defer cancel()
	}

	instance.Status = types.WASMInstanceStatusRunning
	results, err := fn.Call(executionCtx, params...)
	if err != nil {
		instance.Status = types.WASMInstanceStatusFailed
		var exitErr *sys.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == sys.ExitCodeDeadlineExceeded {
			return nil, fmt.Errorf("%w: %s 超过 %s", ErrExecutionTimeout, functionName, r.options.ExecutionTimeout)
		}
		return nil, fmt.Errorf("%w: %v", ErrExecuteFailed, err)
	}

	instance.Status = types.WASMInstanceStatusFinished
	return results, nil
}

// CallEntryPoint 调用签名为 () -> i32 的入口函数并返回状态码
func (r *WazeroRuntime) CallEntryPoint(ctx context.Context, instance *types.WASMInstance, functionName string) (int32, error) {
	apiModule, ok := instance.Instance.(api.Module)
	if !ok {
		return 0, ErrInvalidInstance
	}
	fn := apiModule.ExportedFunction(functionName)
	if fn == nil {
		return 0, fmt.Errorf("%w: '%s'", ErrFunctionNotFound, functionName)
	}
	def := fn.Definition()
	if len(def.ParamTypes()) != 0 || len(def.ResultTypes()) != 1 || def.ResultTypes()[0] != api.ValueTypeI32 {
		return 0, fmt.Errorf("%w: '%s' 需要 () -> i32", ErrInvalidSignature, functionName)
	}

	results, err := r.ExecuteFunction(ctx, instance, functionName, nil)
	if err != nil {
		return 0, err
	}
	return api.DecodeI32(results[0]), nil
}

// DestroyInstance 销毁合约实例
func (r *WazeroRuntime) DestroyInstance(ctx context.Context, instance *types.WASMInstance) error {
	apiModule, ok := instance.Instance.(api.Module)
	if !ok {
		instance.Status = types.WASMInstanceStatusDestroyed
		return nil
	}

	// 超时后 ctx 可能已取消，关闭不依赖调用方 ctx
	if err := apiModule.Close(context.WithoutCancel(ctx)); err != nil {
		return fmt.Errorf("销毁实例失败: %w", err)
	}

	instance.Instance = nil
	instance.Memory = nil
	instance.Status = types.WASMInstanceStatusDestroyed
	return nil
}

// RegisterHostFunctions 以 moduleName 注册宿主模块
//
// ⚠️ 同名模块只能实例化一次，重复注册直接返回；
// 宿主函数必须从 ctx 读取调用状态，不能闭包捕获。
func (r *WazeroRuntime) RegisterHostFunctions(moduleName string, functions map[string]interface{}) error {
	r.hostMutex.Lock()
	defer r.hostMutex.Unlock()

	if r.hostModules[moduleName] {
		return nil
	}
	if len(functions) == 0 {
		return nil
	}

	builder := r.runtime.NewHostModuleBuilder(moduleName)
	for name, fn := range functions {
		builder.NewFunctionBuilder().
			WithFunc(fn).
			Export(name)
		r.logger.Debugf("注册宿主函数: %s.%s", moduleName, name)
	}

	if _, err := builder.Instantiate(context.Background()); err != nil {
		return fmt.Errorf("宿主模块 %s 实例化失败: %w", moduleName, err)
	}

	r.hostModules[moduleName] = true
	r.logger.Debugf("宿主模块 %s 注册成功（共%d个函数）", moduleName, len(functions))
	return nil
}

// Close 关闭运行时，释放编译模块与实例
func (r *WazeroRuntime) Close() error {
	r.compiledCache.Range(func(key, _ interface{}) bool {
		r.compiledCache.Delete(key)
		return true
	})
	if r.runtime != nil {
		return r.runtime.Close(context.Background())
	}
	return nil
}

// compileCacheKey 基于字节码哈希的缓存键
func compileCacheKey(hash []byte) string {
	return fmt.Sprintf("wasm_%x", hash)
}

func calculateHash(wasmBytes []byte) []byte {
	hash := sha256.Sum256(wasmBytes)
	return hash[:]
}
