package validate

import (
	"regexp"
	"strings"
)

var (
	reEmail     = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID        = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reClassName = regexp.MustCompile(`^[A-Za-z0-9 ]{1,100}$`)
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password requires at least 8 characters with an uppercase letter and
// a digit.
func Password(s string) bool {
	if len(s) < 8 {
		return false
	}
	var hasUpper, hasDigit bool
	for _, r := range s {
		switch {
		case 'A' <= r && r <= 'Z':
			hasUpper = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasUpper && hasDigit
}

// Name validates a displayable person name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 3 || len(s) > 50 {
		return "", false
	}
	return s, true
}

// ID validates a simple resource identifier (inventory/classification ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// ClassificationName allows letters, digits and spaces only.
func ClassificationName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reClassName.MatchString(s)
}

func Year(n int) bool { return n >= 1920 && n <= 2100 }

func Price(f float64) bool { return f >= 0 }

func Miles(n int) bool { return n >= 0 }

// Text bounds a free-text field to max characters after trimming.
func Text(s string, max int) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > max {
		return s, false
	}
	return s, true
}
