package utils // package utils provides helper functions for hashing and token creation

import (
    "crypto/rand"   // secure random number generation
    "encoding/hex"  // hex encoding of the random bytes
)

// NewSessionToken generates an opaque session identifier: 32 bytes from the
// OS entropy source, hex encoded.  The value carries no structure and no
// claims; it is only meaningful as a key into the server-side session store.
func NewSessionToken() (string, error) {
    b := make([]byte, 32)
    if _, err := rand.Read(b); err != nil {
        return "", err
    }
    return hex.EncodeToString(b), nil
}
