package tether

import "testing"

func TestIsValidDecryptAlgo(t *testing.T) {
	tests := []struct {
		algo DecryptAlgo
		want bool
	}{
		{DecryptAES, true},
		{DecryptEnvelope, true},
		{"rsa", false},
		{"AES", false},
		{" aes", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.algo), func(t *testing.T) {
			if got := IsValidDecryptAlgo(tt.algo); got != tt.want {
				t.Errorf("IsValidDecryptAlgo(%q) = %v, want %v", tt.algo, got, tt.want)
			}
		})
	}
}

func TestIsValidHashAlgo(t *testing.T) {
	tests := []struct {
		algo HashAlgo
		want bool
	}{
		{HashArgon2, true},
		{HashBcrypt, true},
		{HashSHA256, true},
		{HashSHA512, true},
		{"SHA256", false},
		{"md5", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.algo), func(t *testing.T) {
			if got := IsValidHashAlgo(tt.algo); got != tt.want {
				t.Errorf("IsValidHashAlgo(%q) = %v, want %v", tt.algo, got, tt.want)
			}
		})
	}
}

func TestIsValidMaskType(t *testing.T) {
	tests := []struct {
		mt   MaskType
		want bool
	}{
		{MaskSecret, true},
		{MaskEmail, true},
		{MaskCard, true},
		{MaskIP, true},
		{MaskURL, true},
		{"ssn", false},
		{"Email", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mt), func(t *testing.T) {
			if got := IsValidMaskType(tt.mt); got != tt.want {
				t.Errorf("IsValidMaskType(%q) = %v, want %v", tt.mt, got, tt.want)
			}
		})
	}
}
