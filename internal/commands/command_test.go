package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{":search pay rent", TypeSearch},
		{"search", TypeSearch},
		{"page 2", TypePage},
		{"/new", TypeNew},
		{"open #14", TypeOpen},
		{":REFRESH", TypeRefresh},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse(":search  pay   rent ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Search.Term != "pay rent" {
		t.Fatalf("unexpected term: %q", cmd.Search.Term)
	}

	cmd, err = Parse("search")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Search.Term != "" {
		t.Fatalf("bare search should clear, got %q", cmd.Search.Term)
	}

	cmd, err = Parse("open #14")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Open.ID != 14 {
		t.Fatalf("unexpected id: %d", cmd.Open.ID)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		in   string
		code ErrorCode
	}{
		{"   ", ErrCodeEmptyInput},
		{":", ErrCodeEmptyInput},
		{"/unknown do x", ErrCodeUnknownCommand},
		{"page", ErrCodeInvalidArgument},
		{"page zero", ErrCodeInvalidArgument},
		{"page 0", ErrCodeInvalidArgument},
		{"open", ErrCodeInvalidArgument},
		{"open abc", ErrCodeInvalidArgument},
		{"new task", ErrCodeInvalidArgument},
	}
	for _, tc := range cases {
		_, err := Parse(tc.in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != tc.code {
			t.Fatalf("parse %q: expected %s, got %v", tc.in, tc.code, err)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("page 3")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Page: func(a PageArgs) (Result, error) {
			called = true
			if a.Number != 3 {
				t.Fatalf("unexpected page: %d", a.Number)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("refresh")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
