package catalog

import (
	"strings"

	"github.com/bolibana/backend/internal/domain/shared"
)

// DefaultEANPrefix prefixes generated barcodes. The 200-299 range is
// reserved by GS1 for internal company numbering, so generated codes
// never collide with officially assigned ones.
const DefaultEANPrefix = "200"

// GenerateEAN13 derives a 13-digit EAN from a product code and prefix.
// The 12-digit body is prefix + left-zero-padded code, truncated or
// right-padded with zeros to 12 digits, then the check digit is appended.
func GenerateEAN13(code, prefix string) (string, error) {
	if prefix == "" {
		prefix = DefaultEANPrefix
	}
	if !isDigits(prefix) {
		return "", shared.NewDomainError("INVALID_EAN_PREFIX", "Barcode prefix must be numeric")
	}
	if code == "" || !isDigits(code) {
		return "", shared.NewDomainError("INVALID_PRODUCT_CODE", "Product code must be numeric")
	}

	pad := 12 - len(prefix) - len(code)
	body := prefix
	if pad > 0 {
		body += strings.Repeat("0", pad)
	}
	body += code
	if len(body) > 12 {
		body = body[:12]
	}
	for len(body) < 12 {
		body += "0"
	}

	return body + string(rune('0'+ean13CheckDigit(body))), nil
}

// IsValidEAN13 reports whether the code is 13 digits with a correct checksum
func IsValidEAN13(code string) bool {
	if len(code) != 13 || !isDigits(code) {
		return false
	}
	return ean13CheckDigit(code[:12]) == int(code[12]-'0')
}

// ean13CheckDigit computes the check digit for a 12-digit body.
// Digits at even zero-based positions weigh 1, odd positions weigh 3.
func ean13CheckDigit(body string) int {
	sum := 0
	for i, r := range body {
		d := int(r - '0')
		if i%2 == 0 {
			sum += d
		} else {
			sum += d * 3
		}
	}
	return (10 - sum%10) % 10
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
