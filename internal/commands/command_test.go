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
		{"/add pay rent tomorrow", TypeAdd},
		{"edit 2 call mom", TypeEdit},
		{"/done 1", TypeDone},
		{"del #3", TypeDelete},
		{"move 1 4", TypeMove},
		{"mantra 40s", TypeMantra},
		{"POMO +5", TypePomo},
		{"/archive", TypeArchive},
		{"open 1", TypeOpen},
		{"theme", TypeTheme},
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

func TestParseConvertsToZeroBasedPositions(t *testing.T) {
	cmd, err := Parse("move 1 4")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Move.From != 0 || cmd.Move.To != 3 {
		t.Fatalf("unexpected move args: %+v", *cmd.Move)
	}
	cmd, err = Parse("edit 2 call   mom")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Edit.Index != 1 || cmd.Edit.Text != "call mom" {
		t.Fatalf("unexpected edit args: %+v", *cmd.Edit)
	}
	cmd, err = Parse("pomo -2")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Pomo.Delta != -2 {
		t.Fatalf("unexpected pomo delta: %d", cmd.Pomo.Delta)
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{
		"add",
		"add    ",
		"edit 2",
		"done 0",
		"done two",
		"del 1 2",
		"move 1",
		"mantra -5",
		"mantra soon",
		"pomo 5",
		"pomo +0",
		"archive now",
		"theme dark",
	} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	var ce *CommandError
	if _, err := Parse("  / "); !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if _, err := Parse("/unknown do x"); !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Text != "write docs" {
				t.Fatalf("unexpected text: %q", a.Text)
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
	for _, in := range []string{"theme", "open 1", "mantra 20"} {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse failed: %v", err)
		}
		_, err = Execute(cmd, Handlers{})
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
			t.Fatalf("%q: expected missing handler error, got %v", in, err)
		}
	}
}
