package predict

import (
	"errors"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []string
	}{
		{"single word", "hello", []string{"hello"}},
		{"lowercased", "Hello World", []string{"hello", "world"}},
		{"punctuation stripped", "well, hello there!", []string{"well", "hello", "there"}},
		{"apostrophe kept", "don't stop", []string{"don't", "stop"}},
		{"whitespace collapsed", "  thank   you  ", []string{"thank", "you"}},
		{"digits inside word ok", "utf8 rocks", []string{"utf8", "rocks"}},
		{"exactly five tokens", "a b c d e", []string{"a", "b", "c", "d", "e"}},
		{"truncated to last five", "one two three four five six seven", []string{"three", "four", "five", "six", "seven"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.input)
			if err != nil {
				t.Fatalf("Normalize(%q): %v", tc.input, err)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Normalize(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeInvalid(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"only spaces", "   "},
		{"only punctuation", "?!.,"},
		{"disallowed character", "hello@world"},
		{"disallowed dash", "hello-world"},
		{"number as a word", "see you in 2020"},
		{"lone number", "42"},
		{"tab character", "hello\tworld"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(tc.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Normalize(%q) err = %v, want ErrInvalidInput", tc.input, err)
			}
		})
	}
}

func TestNormalizeTruncationIsStable(t *testing.T) {
	input := "alpha beta gamma delta epsilon zeta eta"
	first, err := Normalize(input)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := Normalize(input)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("truncation not deterministic: %v vs %v", first, again)
		}
	}
}
