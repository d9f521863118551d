package tether

import (
	"fmt"
	"strings"
)

// DefaultDateFormats is the pattern list used when no WithDateFormats option is given.
var DefaultDateFormats = []string{
	"yyyy-MM-dd'T'HH:mm:ss.SSSXXX",
	"yyyy-MM-dd'T'HH:mm:ssXXX",
	"yyyy-MM-dd'T'HH:mm:ss",
	"yyyy-MM-dd HH:mm:ss",
	"yyyy-MM-dd",
	"dd/MM/yyyy",
}

// dateLayout pairs a configured pattern with its Go layout.
type dateLayout struct {
	pattern string
	layout  string
}

// compileDateFormat translates a date pattern written with the familiar
// yyyy/MM/dd letters into a Go reference layout. Text in single quotes is
// literal and '' is a quote. Patterns that already contain the reference
// year 2006 are taken as Go layouts.
func compileDateFormat(pattern string) (dateLayout, error) {
	if strings.Contains(pattern, "2006") {
		return dateLayout{pattern: pattern, layout: pattern}, nil
	}

	var b strings.Builder
	runes := []rune(pattern)
	for i := 0; i < len(runes); {
		c := runes[i]

		if c == '\'' {
			if i+1 < len(runes) && runes[i+1] == '\'' {
				b.WriteRune('\'')
				i += 2
				continue
			}
			j, closed := i+1, false
			for j < len(runes) {
				if runes[j] != '\'' {
					b.WriteRune(runes[j])
					j++
					continue
				}
				if j+1 < len(runes) && runes[j+1] == '\'' {
					b.WriteRune('\'')
					j += 2
					continue
				}
				closed = true
				break
			}
			if !closed {
				return dateLayout{}, fmt.Errorf("%w: unterminated quote in %q", ErrInvalidPattern, pattern)
			}
			i = j + 1
			continue
		}

		if !isPatternLetter(c) {
			b.WriteRune(c)
			i++
			continue
		}

		n := 1
		for i+n < len(runes) && runes[i+n] == c {
			n++
		}
		tok, err := layoutToken(c, n, b.String())
		if err != nil {
			return dateLayout{}, fmt.Errorf("%w: %q: %w", ErrInvalidPattern, pattern, err)
		}
		b.WriteString(tok)
		i += n
	}
	return dateLayout{pattern: pattern, layout: b.String()}, nil
}

func isPatternLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// layoutToken maps a run of n pattern letters c to its Go layout element.
func layoutToken(c rune, n int, written string) (string, error) {
	switch c {
	case 'y':
		if n == 2 {
			return "06", nil
		}
		return "2006", nil
	case 'M':
		switch n {
		case 1:
			return "1", nil
		case 2:
			return "01", nil
		case 3:
			return "Jan", nil
		default:
			return "January", nil
		}
	case 'd':
		if n == 1 {
			return "2", nil
		}
		return "02", nil
	case 'H':
		return "15", nil
	case 'h':
		if n == 1 {
			return "3", nil
		}
		return "03", nil
	case 'm':
		if n == 1 {
			return "4", nil
		}
		return "04", nil
	case 's':
		if n == 1 {
			return "5", nil
		}
		return "05", nil
	case 'S':
		if !strings.HasSuffix(written, ".") && !strings.HasSuffix(written, ",") {
			return "", fmt.Errorf("fraction %q must follow '.' or ','", strings.Repeat("S", n))
		}
		return strings.Repeat("0", n), nil
	case 'a':
		return "PM", nil
	case 'E':
		if n <= 3 {
			return "Mon", nil
		}
		return "Monday", nil
	case 'z':
		return "MST", nil
	case 'Z':
		return "-0700", nil
	case 'X':
		switch n {
		case 1:
			return "Z07", nil
		case 2:
			return "Z0700", nil
		default:
			return "Z07:00", nil
		}
	default:
		return "", fmt.Errorf("unsupported letter %q", c)
	}
}
