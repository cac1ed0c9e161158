package log

import (
	"bytes"
	"testing"

	"go.uber.org/zap/zapcore"
)

func newRoutingCore() (*moduleRoutingCore, *bytes.Buffer, *bytes.Buffer) {
	enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		MessageKey: "message",
		LevelKey:   "level",
		TimeKey:    "ts",
	})

	var sysBuf, bizBuf bytes.Buffer
	core := &moduleRoutingCore{
		systemCore:   zapcore.NewCore(enc, zapcore.AddSync(&sysBuf), zapcore.DebugLevel),
		businessCore: zapcore.NewCore(enc, zapcore.AddSync(&bizBuf), zapcore.DebugLevel),
	}
	return core, &sysBuf, &bizBuf
}

func TestModuleRoutingCore_RoutesByModuleField(t *testing.T) {
	core, sysBuf, bizBuf := newRoutingCore()
	entry := zapcore.Entry{Message: "hello", Level: zapcore.InfoLevel}

	// system module -> system only
	if err := core.Write(entry, []zapcore.Field{{Key: "module", Type: zapcore.StringType, String: "ledger"}}); err != nil {
		t.Fatalf("Write(system) error: %v", err)
	}
	if sysBuf.Len() == 0 || bizBuf.Len() != 0 {
		t.Fatalf("expected system only; sys=%d biz=%d", sysBuf.Len(), bizBuf.Len())
	}
	sysBuf.Reset()

	// business module -> business only
	if err := core.Write(entry, []zapcore.Field{{Key: "module", Type: zapcore.StringType, String: "hostabi"}}); err != nil {
		t.Fatalf("Write(business) error: %v", err)
	}
	if bizBuf.Len() == 0 || sysBuf.Len() != 0 {
		t.Fatalf("expected business only; sys=%d biz=%d", sysBuf.Len(), bizBuf.Len())
	}
	bizBuf.Reset()

	// missing module -> both
	if err := core.Write(entry, nil); err != nil {
		t.Fatalf("Write(no module) error: %v", err)
	}
	if sysBuf.Len() == 0 || bizBuf.Len() == 0 {
		t.Fatalf("expected both when module missing; sys=%d biz=%d", sysBuf.Len(), bizBuf.Len())
	}
}

func TestModuleRoutingCore_WithPinsModule(t *testing.T) {
	core, sysBuf, bizBuf := newRoutingCore()
	pinned := core.With([]zapcore.Field{{Key: "module", Type: zapcore.StringType, String: "runtime"}})

	if err := pinned.Write(zapcore.Entry{Message: "compiled", Level: zapcore.InfoLevel}, nil); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if sysBuf.Len() == 0 || bizBuf.Len() != 0 {
		t.Fatalf("expected system only; sys=%d biz=%d", sysBuf.Len(), bizBuf.Len())
	}
}
