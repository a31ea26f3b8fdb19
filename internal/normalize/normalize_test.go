package normalize

import "testing"

func TestName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Big Lebowski", "big lebowski"},
		{" big  LEBOWSKI ", "big lebowski"},
		{"ВАСЯ", "вася"},
		{"  ", ""},
		{"alice", "alice"},
	}
	for _, tt := range tests {
		if got := Name(tt.in); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"big  lebowski", "Big Lebowski"},
		{" alice   smith", "Alice Smith"},
		{"вася", "Вася"},
	}
	for _, tt := range tests {
		if got := Display(tt.in); got != tt.want {
			t.Errorf("Display(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
