package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseSquare(t *testing.T) {
	tests := []struct {
		label   string
		want    Square
		wantErr bool
	}{
		{"a1", Square{File: 0, Rank: 1}, false},
		{"e2", Square{File: 4, Rank: 2}, false},
		{"h8", Square{File: 7, Rank: 8}, false},
		{"i1", Square{}, true},
		{"a9", Square{}, true},
		{"a0", Square{}, true},
		{"e", Square{}, true},
		{"e22", Square{}, true},
		{"", Square{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseSquare(tt.label)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidSquare) {
					t.Fatalf("ParseSquare(%q) error = %v, want ErrInvalidSquare", tt.label, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSquare(%q) error = %v", tt.label, err)
			}
			if got != tt.want {
				t.Errorf("ParseSquare(%q) = %+v, want %+v", tt.label, got, tt.want)
			}
			if got.String() != tt.label {
				t.Errorf("String() = %q, want %q", got.String(), tt.label)
			}
		})
	}
}

func TestNewSquareBounds(t *testing.T) {
	if _, err := NewSquare(0, 1); err != nil {
		t.Errorf("NewSquare(0, 1) error = %v", err)
	}
	for _, c := range [][2]int{{-1, 1}, {8, 1}, {0, 0}, {0, 9}} {
		if _, err := NewSquare(c[0], c[1]); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("NewSquare(%d, %d) error = %v, want ErrInvalidSquare", c[0], c[1], err)
		}
	}
}

func TestSquareOffset(t *testing.T) {
	e4 := MustSquare("e4")
	if got, ok := e4.Offset(1, 2); !ok || got != MustSquare("f6") {
		t.Errorf("e4.Offset(1, 2) = %v, %v; want f6, true", got, ok)
	}
	if _, ok := MustSquare("h8").Offset(1, 0); ok {
		t.Error("h8.Offset(1, 0) should be off the board")
	}
	if _, ok := MustSquare("a1").Offset(0, -1); ok {
		t.Error("a1.Offset(0, -1) should be off the board")
	}
}

func TestSquareJSON(t *testing.T) {
	data, err := json.Marshal(SimpleMove{From: MustSquare("e2"), To: MustSquare("e4")})
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `{"from":"e2","to":"e4"}` {
		t.Errorf("Marshal = %s", data)
	}

	var mv SimpleMove
	if err := json.Unmarshal([]byte(`{"from":"g1","to":"f3"}`), &mv); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if mv.From != MustSquare("g1") || mv.To != MustSquare("f3") {
		t.Errorf("Unmarshal = %+v", mv)
	}

	err = json.Unmarshal([]byte(`{"from":"z9","to":"f3"}`), &mv)
	if !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("Unmarshal bad square error = %v, want ErrInvalidSquare", err)
	}
}
