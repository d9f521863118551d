package tether

import (
	"net"
	"net/url"
	"strings"
	"unicode"
)

// MaskType names a masking rule applied when a bound value is rendered
// by Binder.Snapshot.
type MaskType string

const (
	MaskSecret MaskType = "secret" // anything -> ********
	MaskEmail  MaskType = "email"  // ops@example.com -> o***@example.com
	MaskCard   MaskType = "card"   // 4111111111111111 -> ************1111
	MaskIP     MaskType = "ip"     // 10.1.2.3 -> 10.1.xxx.xxx
	MaskURL    MaskType = "url"    // postgres://app:pw@db/x -> postgres://app:xxxxx@db/x
)

// Masker hides part of a value while keeping it recognizable.
type Masker interface {
	Mask(value string) string
}

// MaskerFunc adapts a function to Masker.
type MaskerFunc func(value string) string

// Mask calls f.
func (f MaskerFunc) Mask(value string) string { return f(value) }

const secretMask = "********"

// SecretMasker hides the value entirely, including its length.
func SecretMasker() Masker {
	return MaskerFunc(func(string) string { return secretMask })
}

// EmailMasker keeps the first character of the local part and the domain.
func EmailMasker() Masker {
	return MaskerFunc(func(value string) string {
		at := strings.LastIndex(value, "@")
		if at < 1 {
			return strings.Repeat("*", len(value))
		}
		return value[:1] + "***" + value[at:]
	})
}

// CardMasker keeps the last four digits.
func CardMasker() Masker {
	return MaskerFunc(func(value string) string {
		var digits []rune
		for _, r := range value {
			if unicode.IsDigit(r) {
				digits = append(digits, r)
			}
		}
		if len(digits) < 4 {
			return strings.Repeat("*", len(value))
		}
		return strings.Repeat("*", len(digits)-4) + string(digits[len(digits)-4:])
	})
}

// IPMasker keeps the network half of an address: two IPv4 octets or four
// IPv6 groups.
func IPMasker() Masker {
	return MaskerFunc(func(value string) string {
		ip := net.ParseIP(value)
		if ip == nil {
			return strings.Repeat("*", len(value))
		}
		if v4 := ip.To4(); v4 != nil {
			parts := strings.Split(v4.String(), ".")
			return parts[0] + "." + parts[1] + ".xxx.xxx"
		}
		full := ip.To16()
		groups := make([]string, 0, 4)
		for i := 0; i < 8; i += 2 {
			groups = append(groups, strings.TrimLeft(hexByte(full[i])+hexByte(full[i+1]), "0"))
		}
		for i, g := range groups {
			if g == "" {
				groups[i] = "0"
			}
		}
		return strings.Join(groups, ":") + ":xxxx:xxxx:xxxx:xxxx"
	})
}

func hexByte(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0x0f]})
}

// URLMasker hides the password in a URL's user info, the usual place
// credentials hide in DSNs.
func URLMasker() Masker {
	return MaskerFunc(func(value string) string {
		u, err := url.Parse(value)
		if err != nil || u.User == nil {
			return value
		}
		if _, ok := u.User.Password(); !ok {
			return value
		}
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
		return u.String()
	})
}

// builtinMaskers returns the default masker table.
func builtinMaskers() map[MaskType]Masker {
	return map[MaskType]Masker{
		MaskSecret: SecretMasker(),
		MaskEmail:  EmailMasker(),
		MaskCard:   CardMasker(),
		MaskIP:     IPMasker(),
		MaskURL:    URLMasker(),
	}
}
