package util

import (
	"net/url"
	"regexp"
	"strings"
)

var ibanPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)

// ValidateBaseURL accepts absolute http(s) URLs with a host.
func ValidateBaseURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// NormalizeIBAN strips whitespace and upper-cases the value.
func NormalizeIBAN(iban string) string {
	return strings.ToUpper(strings.Join(strings.Fields(iban), ""))
}

func ValidateIBAN(iban string) bool {
	return ibanPattern.MatchString(NormalizeIBAN(iban))
}
