package errors_test

import (
	"context"
	goerrors "errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	c "github.com/xtls/xrelay/common/ctx"
	. "github.com/xtls/xrelay/common/errors"
	"github.com/xtls/xrelay/common/log"
)

func TestError(t *testing.T) {
	err := New("TestError")
	if v := GetSeverity(err); v != log.Severity_Info {
		t.Error("severity: ", v)
	}

	err = New("TestError2").Base(io.EOF)
	if v := GetSeverity(err); v != log.Severity_Info {
		t.Error("severity: ", v)
	}

	err = New("TestError3").Base(io.EOF).AtWarning()
	if v := GetSeverity(err); v != log.Severity_Warning {
		t.Error("severity: ", v)
	}

	err = New("TestError4").Base(io.EOF).AtWarning()
	err = New("TestError5").Base(err)
	if v := GetSeverity(err); v != log.Severity_Warning {
		t.Error("severity: ", v)
	}
	if v := err.Error(); !strings.Contains(v, "EOF") {
		t.Error("error: ", v)
	}
	if Cause(err) != io.EOF {
		t.Error("cause: ", Cause(err))
	}
	if !goerrors.Is(err, io.EOF) {
		t.Error("errors.Is failed to unwrap")
	}
}

func TestErrorMessage(t *testing.T) {
	data := []struct {
		err error
		msg string
	}{
		{
			err: New("a").Base(New("b")),
			msg: "common/errors_test: a > common/errors_test: b",
		},
		{
			err: New("a").Base(New("b").Base(New("c"))),
			msg: "common/errors_test: a > common/errors_test: b > common/errors_test: c",
		},
	}

	for _, d := range data {
		if diff := cmp.Diff(d.msg, d.err.Error()); diff != "" {
			t.Error(diff)
		}
	}
}

func TestCombine(t *testing.T) {
	if err := Combine(nil, nil); err != nil {
		t.Error("expected nil, got ", err)
	}
	if err := Combine(nil, io.EOF); err != io.EOF {
		t.Error("expected EOF, got ", err)
	}
	err := Combine(io.EOF, io.ErrShortWrite)
	if !goerrors.Is(err, io.ErrShortWrite) || !goerrors.Is(err, io.EOF) {
		t.Error("combined error lost an element: ", err)
	}
}

type recordingHandler struct {
	messages []string
}

func (h *recordingHandler) Handle(msg log.Message) {
	h.messages = append(h.messages, msg.String())
}

func TestLogWithSessionID(t *testing.T) {
	handler := &recordingHandler{}
	log.RegisterHandler(handler)

	ctx := c.ContextWithID(context.Background(), 42)
	LogWarningInner(ctx, io.EOF, "peer went away")

	if len(handler.messages) != 1 {
		t.Fatal("expected 1 message, but got ", handler.messages)
	}
	if diff := cmp.Diff("[Warning] [42] common/errors_test: peer went away > EOF", handler.messages[0]); diff != "" {
		t.Error(diff)
	}
}
