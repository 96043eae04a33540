package logger

import (
	"context"

	"github.com/google/uuid"
)

// NewNop returns a Logger that discards everything. Meant for tests.
func NewNop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debugw(string, ...any) {}
func (nopLogger) Infow(string, ...any)  {}
func (nopLogger) Warnw(string, ...any)  {}
func (nopLogger) Errorw(string, ...any) {}

func (n nopLogger) Ctx(context.Context) Logger { return n }
func (n nopLogger) With(...any) Logger         { return n }

func (nopLogger) WithRequestID(ctx context.Context, _ string) context.Context { return ctx }
func (nopLogger) GenerateRequestID() string                                   { return uuid.New().String() }
func (nopLogger) GetRequestID(context.Context) string                         { return "" }

func (nopLogger) LogAttrs(context.Context, Level, string, ...Attr) {}
