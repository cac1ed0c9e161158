package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrpl-wasm/contracts/contracts/sdk/go/framework"
	"github.com/xrpl-wasm/contracts/internal/api/jsonrpc/types"
	apiconfig "github.com/xrpl-wasm/contracts/internal/config/api"
	hostconfig "github.com/xrpl-wasm/contracts/internal/config/host"
	ledgerconfig "github.com/xrpl-wasm/contracts/internal/config/ledger"
	"github.com/xrpl-wasm/contracts/internal/core/engines/wasm/runtime"
	"github.com/xrpl-wasm/contracts/internal/core/executor"
	"github.com/xrpl-wasm/contracts/internal/core/hostabi"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/crypto/address"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/event"
	logimpl "github.com/xrpl-wasm/contracts/internal/core/infrastructure/log"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/metrics"
	"github.com/xrpl-wasm/contracts/internal/core/infrastructure/storage/badger"
	"github.com/xrpl-wasm/contracts/internal/core/ledger"
)

const testAddress = "rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh"

var contractAccount = framework.AccountID{0xc0}

// traceModule 导出 log() -> i32：trace_num("hi", 42) 后返回 0
var traceModule = []byte{
	0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00,
	0x01, 0x0c, 0x02, 0x60, 0x03, 0x7f, 0x7f, 0x7e, 0x01, 0x7f, 0x60, 0x00, 0x01, 0x7f, // types
	0x02, 0x16, 0x01, 0x08, 'h', 'o', 's', 't', '_', 'l', 'i', 'b',
	0x09, 't', 'r', 'a', 'c', 'e', '_', 'n', 'u', 'm', 0x00, 0x00, // import trace_num
	0x03, 0x02, 0x01, 0x01, // function: type 1
	0x05, 0x03, 0x01, 0x00, 0x01, // memory
	0x07, 0x10, 0x02, 0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00, 0x03, 'l', 'o', 'g', 0x00, 0x01, // exports
	0x0a, 0x0f, 0x01, 0x0d, 0x00, 0x41, 0x00, 0x41, 0x02, 0x42, 0x2a, 0x10, 0x00, 0x1a, 0x41, 0x00, 0x0b, // code
	0x0b, 0x08, 0x01, 0x00, 0x41, 0x00, 0x0b, 0x02, 'h', 'i', // data "hi"
}

type testEnv struct {
	server *Server
	ledger *ledger.Ledger
	bus    *event.EventBus
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	opts := hostconfig.New(nil).GetOptions()
	opts.UseCompiler = false
	opts.EnableWASI = false

	rt, err := runtime.NewWazeroRuntime(nil, opts, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close() })
	require.NoError(t, rt.RegisterHostFunctions(opts.HostModuleName, hostabi.New(nil, nil).Build()))

	store, err := badger.New(&ledgerconfig.LedgerOptions{Backend: ledgerconfig.BackendMemory}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	l := ledger.New(store, nil)

	bus := event.New(nil)
	reg := metrics.NewRegistry()
	exec := executor.New(executor.Config{
		Runtime:         rt,
		Ledger:          l,
		ContractAccount: contractAccount,
		EventBus:        bus,
		Registerer:      reg,
	})

	httpOpts := apiconfig.New(nil).GetOptions().HTTP
	server := NewServer(Dependencies{
		Options:  httpOpts,
		Logger:   logimpl.OrNop(nil),
		Invoker:  exec,
		Ledger:   l,
		Runtime:  rt,
		EventBus: bus,
		Registry: reg,
	})
	t.Cleanup(func() { _ = server.Stop(context.Background()) })
	return &testEnv{server: server, ledger: l, bus: bus}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func TestInvokeEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/v1/invoke", map[string]interface{}{
		"wasm":     traceModule,
		"function": "log",
		"params":   []string{"xrp:100", "account:" + testAddress},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var res executor.Result
	decodeData(t, rec, &res)
	assert.Equal(t, executor.OutcomeSuccess, res.Outcome)
	require.Len(t, res.Traces, 1)
	assert.Equal(t, int64(42), res.Traces[0].Number)
	assert.Equal(t, address.EncodeAccountID(contractAccount), res.ContractAccount)
}

func TestInvokeEndpoint_Errors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		body   map[string]interface{}
		status int
		code   string
	}{
		{"缺少字段", map[string]interface{}{"function": "log"}, http.StatusBadRequest, "COMMON_VALIDATION_ERROR"},
		{"参数无效", map[string]interface{}{"wasm": traceModule, "function": "log", "params": []string{"bogus"}}, http.StatusBadRequest, "COMMON_VALIDATION_ERROR"},
		{"编译失败", map[string]interface{}{"wasm": []byte{0x00, 0x61, 0x73, 0x6d}, "function": "log"}, http.StatusUnprocessableEntity, "CONTRACT_COMPILE_FAILED"},
		{"入口不存在", map[string]interface{}{"wasm": traceModule, "function": "nope"}, http.StatusUnprocessableEntity, "CONTRACT_INVALID_ENTRY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.do(t, http.MethodPost, "/v1/invoke", tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

			var problem map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, tt.code, problem["code"])
		})
	}
}

func TestAccountEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/v1/accounts/"+testAddress, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, http.MethodPost, "/v1/accounts/"+testAddress+"/fund", map[string]string{"amount": "xrp:5000000"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var written struct {
		Sequence int64              `json:"sequence"`
		Account  ledger.AccountInfo `json:"account"`
	}
	decodeData(t, rec, &written)
	assert.Positive(t, written.Sequence)
	assert.Equal(t, int64(5_000_000), written.Account.Drops)

	rec = env.do(t, http.MethodGet, "/v1/accounts/"+testAddress, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var info ledger.AccountInfo
	decodeData(t, rec, &info)
	assert.Equal(t, testAddress, info.Address)

	// 账本拒绝：信任线发行方为自身
	rec = env.do(t, http.MethodPost, "/v1/accounts/"+testAddress+"/trustlines",
		map[string]string{"currency": "USD", "issuer": testAddress, "limit": "100"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), "temDST_IS_SRC")

	rec = env.do(t, http.MethodGet, "/v1/accounts/not-an-address", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	env.do(t, http.MethodPost, "/v1/invoke", map[string]interface{}{"wasm": traceModule, "function": "log"})

	rec = env.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `xrplwasm_executor_invocations_total{function="log",outcome="success"} 1`)
	assert.Contains(t, body, "xrplwasm_api_requests_total")
}

func TestTraceStream(t *testing.T) {
	env := newTestEnv(t)
	ts := httptest.NewServer(env.server.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/stream"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"jsonrpc": "2.0", "id": 1, "method": "contract_subscribe",
		"params": []interface{}{"traces", map[string]string{"function": "log"}},
	}))
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var ack types.Response
	require.NoError(t, conn.ReadJSON(&ack))
	require.Nil(t, ack.Error)
	subID, ok := ack.Result.(string)
	require.True(t, ok)

	rec := env.do(t, http.MethodPost, "/v1/invoke", map[string]interface{}{"wasm": traceModule, "function": "log"})
	require.Equal(t, http.StatusOK, rec.Code)

	var note struct {
		Method string `json:"method"`
		Params struct {
			Subscription string `json:"subscription"`
			Result       struct {
				Invocation string `json:"invocation"`
				Message    string `json:"message"`
				Number     int64  `json:"number"`
			} `json:"result"`
		} `json:"params"`
	}
	require.NoError(t, conn.ReadJSON(&note))
	assert.Equal(t, "contract_subscription", note.Method)
	assert.Equal(t, subID, note.Params.Subscription)
	assert.Equal(t, "hi", note.Params.Result.Message)
	assert.Equal(t, int64(42), note.Params.Result.Number)
	assert.NotEmpty(t, note.Params.Result.Invocation)

	// 未知方法
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"jsonrpc": "2.0", "id": 2, "method": "nope"}))
	var resp types.Response
	require.NoError(t, conn.ReadJSON(&resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, types.CodeMethodNotFound, resp.Error.Code)
}

func TestStreamUnsubscribeOwnConnectionOnly(t *testing.T) {
	env := newTestEnv(t)
	ts := httptest.NewServer(env.server.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/v1/stream"
	dial := func() *websocket.Conn {
		c, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		require.NoError(t, err)
		_ = c.SetReadDeadline(time.Now().Add(5 * time.Second))
		return c
	}
	call := func(c *websocket.Conn, id int, method string, params ...interface{}) types.Response {
		require.NoError(t, c.WriteJSON(map[string]interface{}{
			"jsonrpc": "2.0", "id": id, "method": method, "params": params,
		}))
		var resp types.Response
		require.NoError(t, c.ReadJSON(&resp))
		require.Nil(t, resp.Error)
		return resp
	}

	owner := dial()
	defer owner.Close()
	other := dial()
	defer other.Close()

	subID, ok := call(owner, 1, "contract_subscribe", "invocations").Result.(string)
	require.True(t, ok)

	// 其他连接不能取消
	assert.Equal(t, false, call(other, 1, "contract_unsubscribe", subID).Result)

	rec := env.do(t, http.MethodPost, "/v1/invoke", map[string]interface{}{"wasm": traceModule, "function": "log"})
	require.Equal(t, http.StatusOK, rec.Code)

	var note struct {
		Params struct {
			Subscription string `json:"subscription"`
		} `json:"params"`
	}
	require.NoError(t, owner.ReadJSON(&note))
	assert.Equal(t, subID, note.Params.Subscription)

	assert.Equal(t, true, call(owner, 2, "contract_unsubscribe", subID).Result)
	assert.Equal(t, false, call(owner, 3, "contract_unsubscribe", subID).Result)
}
