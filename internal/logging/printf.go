package logging

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// exit is swapped in tests.
var exit = os.Exit

// PrintfLogger adapts a Logger to libraries that log through Printf and
// Fatalf, such as goose. Lines are logged at info level.
type PrintfLogger struct {
	l Logger
}

func NewPrintfLogger(l Logger) *PrintfLogger {
	return &PrintfLogger{l: l}
}

func (p *PrintfLogger) Printf(format string, v ...any) {
	p.l.Info(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Fatalf logs at error level and exits, like log.Fatalf.
func (p *PrintfLogger) Fatalf(format string, v ...any) {
	p.l.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
	exit(1)
}
