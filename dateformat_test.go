package tether

import (
	"errors"
	"testing"
)

func TestCompileDateFormat(t *testing.T) {
	tests := []struct {
		pattern string
		layout  string
	}{
		{"yyyy-MM-dd", "2006-01-02"},
		{"dd/MM/yyyy", "02/01/2006"},
		{"yy-M-d", "06-1-2"},
		{"yyyy-MM-dd'T'HH:mm:ss", "2006-01-02T15:04:05"},
		{"yyyy-MM-dd'T'HH:mm:ss.SSSXXX", "2006-01-02T15:04:05.000Z07:00"},
		{"yyyy-MM-dd HH:mm:ss Z", "2006-01-02 15:04:05 -0700"},
		{"EEE, dd MMM yyyy", "Mon, 02 Jan 2006"},
		{"EEEE d MMMM", "Monday 2 January"},
		{"h:mm a", "3:04 PM"},
		{"HH 'o''clock'", "15 o'clock"},
		{"''yy", "'06"},
		{"2006-01-02", "2006-01-02"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := compileDateFormat(tt.pattern)
			if err != nil {
				t.Fatalf("compileDateFormat() error: %v", err)
			}
			if got.layout != tt.layout {
				t.Errorf("layout = %q, want %q", got.layout, tt.layout)
			}
			if got.pattern != tt.pattern {
				t.Errorf("pattern = %q, want %q", got.pattern, tt.pattern)
			}
		})
	}
}

func TestCompileDateFormat_Errors(t *testing.T) {
	for _, pattern := range []string{"yyyy-QQ", "HH:mm:ssSSS", "yyyy 'open"} {
		if _, err := compileDateFormat(pattern); !errors.Is(err, ErrInvalidPattern) {
			t.Errorf("compileDateFormat(%q) error = %v, want ErrInvalidPattern", pattern, err)
		}
	}
}

func TestDefaultDateFormatsCompile(t *testing.T) {
	for _, pattern := range DefaultDateFormats {
		if _, err := compileDateFormat(pattern); err != nil {
			t.Errorf("compileDateFormat(%q) error: %v", pattern, err)
		}
	}
}
