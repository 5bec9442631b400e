// Package logging configures the file-backed diagnostic logger. The TUI owns
// the terminal, so nothing may write to stdout/stderr; network-level failures
// and other diagnostics go to tyler.log in the state dir instead.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to <dir>/tyler.log. Any setup failure yields a
// Nop logger; diagnostics are never worth breaking the client over.
func New(dir string) *zap.Logger {
	if dir == "" {
		return zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zap.NewNop()
	}
	f, err := os.OpenFile(filepath.Join(dir, "tyler.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zap.NewNop()
	}
	enc := zap.NewProductionEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(f), zapcore.InfoLevel)
	return zap.New(core)
}
