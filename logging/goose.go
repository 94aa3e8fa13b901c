package logging

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// GooseLogger направляет вывод миграций goose в Logger.
// Реализует goose.Logger (Printf / Fatalf).
type GooseLogger struct {
	L Logger
}

func (g GooseLogger) Printf(format string, v ...any) {
	g.L.Info(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g GooseLogger) Fatalf(format string, v ...any) {
	g.L.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
	os.Exit(1)
}
