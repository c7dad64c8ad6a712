package roundid

import (
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/randutil"
)

func TestGenerate(t *testing.T) {
	id := NewGenerator(nil, nil).Generate()

	if len(id) != Length {
		t.Errorf("expected %d characters, got %d", Length, len(id))
	}
	if err := Validate(id); err != nil {
		t.Errorf("generated ID failed validation: %v", err)
	}
}

func TestGenerateUnique(t *testing.T) {
	gen := NewGenerator(nil, nil)
	ids := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := gen.Generate()
		if ids[id] {
			t.Errorf("duplicate ID generated: %s", id)
		}
		ids[id] = true
	}
}

func TestGenerateTimeSorted(t *testing.T) {
	clock := quartz.NewMock(t)
	gen := NewGenerator(clock, nil)

	var ids []string
	for i := 0; i < 10; i++ {
		ids = append(ids, gen.Generate())
		clock.Advance(time.Millisecond)
	}

	for i := 1; i < len(ids); i++ {
		if strings.Compare(ids[i-1], ids[i]) >= 0 {
			t.Errorf("IDs not sorted: %s >= %s", ids[i-1], ids[i])
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))

	a := NewGenerator(clock, randutil.New(1)).Generate()
	b := NewGenerator(clock, randutil.New(1)).Generate()
	if a != b {
		t.Errorf("same clock and seed gave %s and %s", a, b)
	}
}

func TestEncodeKnownValue(t *testing.T) {
	var data [16]byte
	if got := encode(data); got != strings.Repeat("0", Length) {
		t.Errorf("encode(zero) = %s", got)
	}

	for i := range data {
		data[i] = 0xff
	}
	if got := encode(data); got != "7"+strings.Repeat("z", Length-1) {
		t.Errorf("encode(max) = %s", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"valid ID", "01h5n0et5q6mt3v7ms1234abcd", false},
		{"too short", "01h5n0et5q6mt3v7ms123", true},
		{"too long", "01h5n0et5q6mt3v7ms1234abcdef", true},
		{"first char too high", "81h5n0et5q6mt3v7ms1234abcd", true},
		{"invalid character", "01h5n0et5q6mt3v7ms1234abcu", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}
