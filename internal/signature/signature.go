package signature

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Verifier checks webhook signatures. The default scheme is HMAC-SHA256 with
// the private key as MAC key. The legacy scheme reproduces the old notifier:
// a bare SHA1 digest over "key:transactionID:userID:billID:amount". The two
// schemes are not interoperable, legacy mode exists only for notifiers that
// have not migrated yet.
type Verifier struct {
	privateKey []byte
	legacy     bool
}

func NewVerifier(privateKey string, legacy bool) *Verifier {
	return &Verifier{privateKey: []byte(privateKey), legacy: legacy}
}

func (v *Verifier) Verify(transactionID, userID, billID, amount int64, signature string) bool {
	supplied, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	var expected []byte
	if v.legacy {
		msg := fmt.Sprintf("%s:%d:%d:%d:%d", v.privateKey, transactionID, userID, billID, amount)
		sum := sha1.Sum([]byte(msg))
		expected = sum[:]
	} else {
		msg := fmt.Sprintf("%d:%d:%d:%d", transactionID, userID, billID, amount)
		mac := hmac.New(sha256.New, v.privateKey)
		mac.Write([]byte(msg))
		expected = mac.Sum(nil)
	}
	return hmac.Equal(supplied, expected)
}

// Sign produces a signature for the configured scheme. Used by tests and by
// operators generating payloads for manual webhook replays.
func (v *Verifier) Sign(transactionID, userID, billID, amount int64) string {
	if v.legacy {
		msg := fmt.Sprintf("%s:%d:%d:%d:%d", v.privateKey, transactionID, userID, billID, amount)
		sum := sha1.Sum([]byte(msg))
		return hex.EncodeToString(sum[:])
	}
	msg := fmt.Sprintf("%d:%d:%d:%d", transactionID, userID, billID, amount)
	mac := hmac.New(sha256.New, v.privateKey)
	mac.Write([]byte(msg))
	return hex.EncodeToString(mac.Sum(nil))
}
