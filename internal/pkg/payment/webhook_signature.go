package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// VerifyWebhookToken recomputes the HMAC-SHA256 digest over the ordered field
// concatenation and compares it to the X-TOKEN header in constant time.
// An empty secret means verification is unconfigured and always fails;
// callers fall back to the provider status-check endpoint in that case.
func VerifyWebhookToken(fields CallbackFields, token, secret string) bool {
	tok := strings.TrimSpace(token)
	sec := strings.TrimSpace(secret)
	if tok == "" || sec == "" {
		return false
	}

	expected, err := hex.DecodeString(strings.ToLower(tok))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(sec))
	mac.Write([]byte(fields.signedConcat()))
	return hmac.Equal(mac.Sum(nil), expected)
}
