package sanitizer

import "testing"

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already clean", "guest@example.com", "guest@example.com"},
		{"mixed case", "Guest@Example.COM", "guest@example.com"},
		{"surrounding whitespace", "  guest@example.com \n", "guest@example.com"},
		{"inner whitespace stripped", "gu est@example.com", "guest@example.com"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeEmail(tt.input); got != tt.want {
				t.Errorf("SanitizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeRoomNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"numeric", "101", "101"},
		{"padded", "  101 ", "101"},
		{"lowercase suite", "a-12b", "A-12B"},
		{"strips punctuation", "10#1!", "101"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeRoomNumber(tt.input); got != tt.want {
				t.Errorf("SanitizeRoomNumber(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPipelineAppliesInOrder(t *testing.T) {
	p := Pipeline{
		func(s string) string { return s + "b" },
		func(s string) string { return s + "c" },
	}
	if got := p.Apply("a"); got != "abc" {
		t.Errorf("Apply = %q, want %q", got, "abc")
	}
}
