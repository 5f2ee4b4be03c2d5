// SPDX-License-Identifier: MPL-2.0

package report

import (
	"errors"
	"strings"
	"testing"
)

func TestMode_IsValid(t *testing.T) {
	t.Parallel()

	for _, mode := range []Mode{ModeDefault, ModeSame, ModeVerbose} {
		if ok, errs := mode.IsValid(); !ok {
			t.Errorf("mode %q invalid: %v", mode, errs)
		}
	}

	ok, errs := Mode("sideways").IsValid()
	if ok {
		t.Fatal("unknown mode reported valid")
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrInvalidMode) {
		t.Errorf("errs = %v, want one ErrInvalidMode", errs)
	}
}

func TestNewOptions_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mode      Mode
		include   string
		exclude   string
		threshold int
		wantErr   error
		wantIn    string
	}{
		{"unknown mode", "sideways", "", "", 0, ErrInvalidMode, "sideways"},
		{"bad include", ModeDefault, "[", "", 0, ErrInvalidPattern, "include"},
		{"bad exclude", ModeDefault, "", "(", 0, ErrInvalidPattern, "exclude"},
		{"negative threshold", ModeDefault, "", "", -1, ErrInvalidThreshold, "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewOptions(tt.mode, tt.include, tt.exclude, tt.threshold)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewOptions error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantIn) {
				t.Errorf("error %q does not mention %q", err, tt.wantIn)
			}
		})
	}
}

func TestNewOptions_ZeroThresholdSelectsDefault(t *testing.T) {
	t.Parallel()

	opts, err := NewOptions(ModeSame, "", "", 0)
	if err != nil {
		t.Fatalf("NewOptions: %v", err)
	}
	if opts.ShortValueLength() != DefaultShortValueLength {
		t.Errorf("ShortValueLength() = %d, want %d", opts.ShortValueLength(), DefaultShortValueLength)
	}
	if opts.Mode() != ModeSame {
		t.Errorf("Mode() = %q, want %q", opts.Mode(), ModeSame)
	}
}

func TestNewOptions_CompilesPatterns(t *testing.T) {
	t.Parallel()

	opts, err := NewOptions(ModeDefault, "^service", "secret", 12)
	if err != nil {
		t.Fatalf("NewOptions: %v", err)
	}
	if opts.include == nil || opts.exclude == nil {
		t.Fatal("patterns were not compiled")
	}
	if opts.ShortValueLength() != 12 {
		t.Errorf("ShortValueLength() = %d, want 12", opts.ShortValueLength())
	}
}
