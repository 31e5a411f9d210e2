package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

// the root logger initializes once per process, so every assertion shares buf
var buf bytes.Buffer

func initTestLogger() {
	Init(Options{Level: "debug", Format: "json", Service: "test", Writer: &buf})
}

func TestNamedComponent(t *testing.T) {
	initTestLogger()
	buf.Reset()

	Named("scorer").Info().Msg("computed")

	out := buf.String()
	if !strings.Contains(out, `"component":"scorer"`) {
		t.Fatalf("output missing component: %s", out)
	}
	if !strings.Contains(out, `"service":"test"`) {
		t.Fatalf("output missing service: %s", out)
	}
	if !strings.Contains(out, `"message":"computed"`) {
		t.Fatalf("output missing message: %s", out)
	}
}

func TestRequestScopedLogger(t *testing.T) {
	initTestLogger()
	buf.Reset()

	ctx := WithRequest(context.Background(), "req-42")
	C(ctx).Info().Msg("handled")

	if out := buf.String(); !strings.Contains(out, `"request_id":"req-42"`) {
		t.Fatalf("output missing request id: %s", out)
	}

	buf.Reset()
	C(context.Background()).Info().Msg("no request")
	if out := buf.String(); strings.Contains(out, "request_id") {
		t.Fatalf("unexpected request id without one in ctx: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"info":    "info",
		" WARN ":  "warn",
		"warning": "warn",
		"bogus":   "debug",
		"":        "debug",
	}
	for in, want := range cases {
		if got := parseLevel(in).String(); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
