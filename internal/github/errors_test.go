package github

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{
			name: "typed error",
			err:  Errorf(KindValidation, "search query is required"),
			want: KindValidation,
		},
		{
			name: "wrapped typed error",
			err:  fmt.Errorf("searching: %w", Errorf(KindDecode, "bad json")),
			want: KindDecode,
		},
		{
			name: "outermost kind wins",
			err:  Wrap(KindParse, Errorf(KindExternalTool, "inner"), "outer"),
			want: KindParse,
		},
		{
			name: "untyped error",
			err:  errors.New("boom"),
			want: KindUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "unknown", err: errors.New("boom"), want: 1},
		{name: "validation", err: Errorf(KindValidation, "x"), want: 2},
		{name: "dependency missing", err: Errorf(KindDependencyMissing, "x"), want: 3},
		{name: "external tool", err: Errorf(KindExternalTool, "x"), want: 4},
		{name: "parse", err: Errorf(KindParse, "x"), want: 5},
		{name: "decode", err: Errorf(KindDecode, "x"), want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(KindExternalTool, cause, "gh %s failed", "gist")

	if got, want := err.Error(), "gh gist failed: exit status 1"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	plain := Errorf(KindValidation, "search query is required")
	if got, want := plain.Error(), "search query is required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
