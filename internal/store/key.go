package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/bce-toolkit/bce/internal/balance"
)

// DomainResult prefixes result IDs. The version suffix allows the key
// layout to change without colliding with older rows.
const DomainResult = "bce/result/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// keyInput fixes the field order of the hashed document.
type keyInput struct {
	Expression   string `json:"expression"`
	AutoCorrect  bool   `json:"auto_correct"`
	SymbolHeader string `json:"symbol_header"`
}

// canonicalJSON encodes v without HTML escaping and without the trailing
// newline json.Encoder adds.
func canonicalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// ResultID computes the content-addressed ID of a balance request.
// expression should already be normalized; it is put into NFC again so
// that callers passing raw text still land on the same row.
func ResultID(expression string, opts balance.Options) (string, error) {
	data, err := canonicalJSON(keyInput{
		Expression:   norm.NFC.String(expression),
		AutoCorrect:  opts.AutoCorrect,
		SymbolHeader: opts.SymbolHeader,
	})
	if err != nil {
		return "", fmt.Errorf("ResultID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainResult, data), nil
}
