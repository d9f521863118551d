package tether

import (
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Printer receives per-key binding failures. It is the one reporting sink
// a caller can replace; everything else is observable through signals.
type Printer interface {
	Print(message string, err error)
}

// PrinterFunc adapts a function to Printer.
type PrinterFunc func(message string, err error)

// Print calls f.
func (f PrinterFunc) Print(message string, err error) { f(message, err) }

// zapPrinter reports failures as error-level log entries.
type zapPrinter struct {
	logger *zap.Logger
}

// NewZapPrinter returns a Printer that logs through logger.
func NewZapPrinter(logger *zap.Logger) Printer {
	return &zapPrinter{logger: logger}
}

func (p *zapPrinter) Print(message string, err error) {
	fields := []zap.Field{zap.Error(err)}
	var be *BindError
	if errors.As(err, &be) {
		fields = append(fields, zap.String("key", be.Key), zap.String("op", be.Op))
	}
	p.logger.Error(message, fields...)
}

// StdoutPrinter returns a Printer writing JSON log lines to standard output.
func StdoutPrinter() Printer {
	cfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(zapcore.InfoLevel),
		Encoding: "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			MessageKey:     "message",
			StacktraceKey:  zapcore.OmitKey,
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewExample()
	}
	return NewZapPrinter(logger.Named("tether"))
}

type printerBox struct{ p Printer }

var (
	defaultPrinter     atomic.Pointer[printerBox]
	defaultPrinterOnce sync.Once
)

// DefaultPrinter returns the process-wide printer used by binders that were
// not given one. It starts as StdoutPrinter.
func DefaultPrinter() Printer {
	defaultPrinterOnce.Do(func() {
		defaultPrinter.CompareAndSwap(nil, &printerBox{p: StdoutPrinter()})
	})
	return defaultPrinter.Load().p
}

// SetDefaultPrinter replaces the process-wide printer. Passing nil restores
// StdoutPrinter.
func SetDefaultPrinter(p Printer) {
	if p == nil {
		p = StdoutPrinter()
	}
	defaultPrinterOnce.Do(func() {})
	defaultPrinter.Store(&printerBox{p: p})
}
