package textnorm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already normalized", input: "this is a test", want: "this is a test"},
		{name: "case folded", input: "The Cat Sat", want: "the cat sat"},
		{name: "punctuation stripped", input: "Hello, world!", want: "hello world"},
		{name: "whitespace collapsed", input: "  is   hall\tb \n free  ", want: "is hall b free"},
		{name: "punctuation between spaces", input: "yes - no", want: "yes no"},
		{name: "digits kept", input: "Room 42B, 2pm.", want: "room 42b 2pm"},
		{name: "underscore removed", input: "snake_case", want: "snakecase"},
		{name: "decomposed accent composed", input: "Cafe\u0301", want: "caf\u00e9"},
		{name: "non latin letters kept", input: "Привет, мир!", want: "привет мир"},
		{name: "empty", input: "", want: ""},
		{name: "only punctuation", input: "?!...", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		normalize bool
		want      []string
	}{
		{name: "normalized", input: "When is my NEXT lecture?", normalize: true, want: []string{"when", "is", "my", "next", "lecture"}},
		{name: "verbatim", input: "When is my NEXT lecture?", normalize: false, want: []string{"When", "is", "my", "NEXT", "lecture?"}},
		{name: "empty", input: "   ", normalize: true, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Words(tt.input, tt.normalize)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Words() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChars(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		normalize bool
		want      []string
	}{
		{name: "spaces removed", input: "a cat", normalize: true, want: []string{"a", "c", "a", "t"}},
		{name: "verbatim keeps punctuation", input: "A b!", normalize: false, want: []string{"A", "b", "!"}},
		{name: "multibyte runes", input: "\u00d1u e\u0301", normalize: true, want: []string{"\u00f1", "u", "\u00e9"}},
		{name: "empty", input: "", normalize: true, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Chars(tt.input, tt.normalize)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Chars() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
