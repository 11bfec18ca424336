package infra

import (
	"errors"
	"fmt"
	"io"
	"path"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// References:
// https://github.com/pkg/errors/blob/master/stack.go

type Frame uintptr

func (frame Frame) pc() uintptr {
	return uintptr(frame) - 1
}

func (frame Frame) file() string {
	pc := frame.pc()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknownFile"
	}
	f, _ := fn.FileLine(pc)
	return f
}

func (frame Frame) line() int {
	pc := frame.pc()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return 0
	}
	_, l := fn.FileLine(pc)
	return l
}

func (frame Frame) name() string {
	pc := frame.pc()
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknownFunc"
	}
	return fn.Name()
}

// Format characters:
// %s - source file
// %d - source line
// %n - function name
// %v - verbose, equivalent to %s:%d
// %+s - function name and full path separated by \n\t
// %+v - equivalent to %+s:%d
func (frame Frame) Format(s fmt.State, verb rune) {
	switch verb {
	case 's':
		if s.Flag('+') {
			_, _ = io.WriteString(s, frame.name())
			_, _ = io.WriteString(s, "\n\t")
			_, _ = io.WriteString(s, frame.file())
		} else {
			_, _ = io.WriteString(s, path.Base(frame.file()))
		}
	case 'd':
		_, _ = io.WriteString(s, strconv.Itoa(frame.line()))
	case 'n':
		_, _ = io.WriteString(s, funcName(frame.name()))
	case 'v':
		frame.Format(s, 's')
		_, _ = io.WriteString(s, ":")
		frame.Format(s, 'd')
	}
}

func (frame Frame) MarshalText() ([]byte, error) {
	name := frame.name()
	if name == "unknownFunc" {
		return []byte("unknownFrame"), nil
	}
	builder := strings.Builder{}
	_, _ = builder.WriteString(name)
	_, _ = builder.WriteString(" ")
	_, _ = builder.WriteString(frame.file())
	_, _ = builder.WriteString(":")
	_, _ = builder.WriteString(strconv.Itoa(frame.line()))
	return []byte(builder.String()), nil
}

func funcName(name string) string {
	i := strings.LastIndex(name, "/")
	name = name[i+1:]
	i = strings.Index(name, ".")
	return name[i+1:]
}

// ErrorStack is an error carrying the call stack where it was
// created or wrapped. It is inlined by the xlog error stack
// methods as JSON fields, "error" and "errorStack".
type ErrorStack interface {
	error
	fmt.Formatter
	zapcore.ObjectMarshaler
	Unwrap() error
	Stack() []Frame
}

const maxStackDepth = 32

type errorStack struct {
	msg   string
	cause error
	stack []Frame
}

var _ ErrorStack = (*errorStack)(nil)

//go:noinline
func callers(skip int) []Frame {
	var pcs [maxStackDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	frames := make([]Frame, 0, n)
	for i := 0; i < n; i++ {
		frames = append(frames, Frame(pcs[i]))
	}
	return frames
}

// The constructors below stay out of line to keep the callers skip exact.

//go:noinline
func NewErrorStack(msg string) error {
	return &errorStack{
		msg:   msg,
		stack: callers(3),
	}
}

// WrapErrorStack keeps the stack of err if it is already an ErrorStack.
//
//go:noinline
func WrapErrorStack(err error) error {
	if err == nil {
		return nil
	}
	var es ErrorStack
	if errors.As(err, &es) {
		return err
	}
	return &errorStack{
		cause: err,
		stack: callers(3),
	}
}

//go:noinline
func WrapErrorStackWithMessage(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &errorStack{
		msg:   msg,
		cause: err,
		stack: callers(3),
	}
}

func (es *errorStack) Error() string {
	switch {
	case es.cause == nil:
		return es.msg
	case len(es.msg) == 0:
		return es.cause.Error()
	}
	return es.msg + ": " + es.cause.Error()
}

func (es *errorStack) Unwrap() error {
	return es.cause
}

func (es *errorStack) Stack() []Frame {
	return es.stack
}

// Format characters:
// %s, %v - error message
// %q - quoted error message
// %+v - error message followed by one frame per line
func (es *errorStack) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		_, _ = io.WriteString(s, es.Error())
		if s.Flag('+') {
			for _, frame := range es.stack {
				_, _ = io.WriteString(s, "\n")
				frame.Format(s, verb)
			}
		}
	case 's':
		_, _ = io.WriteString(s, es.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", es.Error())
	}
}

func (es *errorStack) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("error", es.Error())
	return enc.AddArray("errorStack", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, frame := range es.stack {
			text, _ := frame.MarshalText()
			arr.AppendByteString(text)
		}
		return nil
	}))
}
