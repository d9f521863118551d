package tether

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapPrinter(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	p := NewZapPrinter(zap.New(core))

	err := newBindError(ErrTransform, "transform", "server.port", "abc", errors.New("bad digits"))
	p.Print("cannot bind", err)
	p.Print("plain", errors.New("boom"))

	entries := logs.AllUntimed()
	if len(entries) != 2 {
		t.Fatalf("logged %d entries, want 2", len(entries))
	}

	first := entries[0]
	if first.Level != zapcore.ErrorLevel || first.Message != "cannot bind" {
		t.Errorf("entry = %v %q", first.Level, first.Message)
	}
	fields := first.ContextMap()
	if fields["key"] != "server.port" || fields["op"] != "transform" {
		t.Errorf("fields = %v, want key and op", fields)
	}

	if _, ok := entries[1].ContextMap()["key"]; ok {
		t.Error("non-bind errors should not carry a key field")
	}
}

func TestPrinterFunc(t *testing.T) {
	var got string
	p := PrinterFunc(func(message string, _ error) { got = message })
	p.Print("hello", nil)
	if got != "hello" {
		t.Errorf("PrinterFunc received %q", got)
	}
}

func TestDefaultPrinter(t *testing.T) {
	if DefaultPrinter() == nil {
		t.Fatal("DefaultPrinter() should not be nil")
	}

	var calls int
	custom := PrinterFunc(func(string, error) { calls++ })
	SetDefaultPrinter(custom)
	defer SetDefaultPrinter(nil)

	b := NewBinder[appConfig]()
	b.Put("server.port", "1")
	if calls != 1 {
		t.Errorf("default printer called %d times, want 1", calls)
	}

	SetDefaultPrinter(nil)
	if DefaultPrinter() == nil {
		t.Error("SetDefaultPrinter(nil) should restore a printer")
	}
}

func TestStdoutPrinter(_ *testing.T) {
	// Should not panic
	StdoutPrinter().Print("stdout printer", errors.New("test error"))
}
