package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano // Use a precise time format

// EncodeToken creates a base64 encoded keyset token from the last row of a page.
// Pages are ordered by issued_at DESC, invoice_id DESC, so both fields are needed to resume.
func EncodeToken(issuedAt time.Time, invoiceID string) string {
	tokenStr := fmt.Sprintf("%s|%s", issuedAt.UTC().Format(timeFormat), invoiceID)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded token back into the issue time and invoice ID.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	issuedAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (issued_at parse): %w", err)
	}

	return issuedAt, parts[1], nil
}

// After reports whether a row sorts strictly after the token position in
// issued_at DESC, invoice_id DESC order.
func After(issuedAt time.Time, invoiceID string, tokenIssuedAt time.Time, tokenID string) bool {
	if issuedAt.Equal(tokenIssuedAt) {
		return invoiceID < tokenID
	}
	return issuedAt.Before(tokenIssuedAt)
}
