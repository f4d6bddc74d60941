package licensecrypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

const lookupKeySize = 32

// DeriveLookupKey expands the master lookup secret into a per-product HMAC key.
func DeriveLookupKey(master []byte, product string) ([]byte, error) {
	if len(master) == 0 {
		return nil, errors.New("lookup master secret is empty")
	}
	r := hkdf.New(sha256.New, master, nil, []byte("keyforge/lookup/"+product))
	key := make([]byte, lookupKeySize)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, err
	}
	return key, nil
}

// LookupDigest identifies a serial without revealing it.
func LookupDigest(secret []byte, serial string) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(NormalizeKey(serial)))
	return mac.Sum(nil)
}

func LookupDigestHex(secret []byte, serial string) string {
	return hex.EncodeToString(LookupDigest(secret, serial))
}
