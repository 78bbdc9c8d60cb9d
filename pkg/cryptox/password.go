// Package cryptox implements the password hashing used for account
// credentials: Argon2id in PHC string format, peppered from a local secret
// file, with a bounded pool for the CPU-heavy parts.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrMismatch reports that the password does not match the stored hash.
	ErrMismatch = errors.New("cryptox: password mismatch")
	// ErrMalformedHash reports a stored hash that could not be parsed. To a
	// login caller this must look exactly like a mismatch; it is kept separate
	// so the failure can be logged as data corruption rather than a bad guess.
	ErrMalformedHash = errors.New("cryptox: malformed password hash")
)

// HashPassword derives an Argon2id hash from the password and a fresh random
// salt, returning it as a PHC-format string:
//
//	$argon2id$v=19$m=<mem>,t=<iters>,p=<par>$<salt>$<hash>
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(password+GetPepper()), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// VerifyPassword recomputes the hash with the parameters and salt embedded in
// encodedHash and compares in constant time. It returns nil on a match,
// ErrMismatch on a wrong password, and ErrMalformedHash when the stored value
// is not a valid PHC Argon2id string.
func VerifyPassword(password, encodedHash string) error {
	params, salt, want, err := parsePHC(encodedHash)
	if err != nil {
		return err
	}

	got := argon2.IDKey([]byte(password+GetPepper()), salt,
		params.iterations, params.memory, params.parallelism, uint32(len(want)))

	if subtle.ConstantTimeCompare(got, want) != 1 {
		return ErrMismatch
	}
	return nil
}

type phcParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

func parsePHC(encoded string) (phcParams, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	// ["", "argon2id", "v=19", "m=..,t=..,p=..", salt, hash]
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" || parts[2] != "v=19" {
		return phcParams{}, nil, nil, ErrMalformedHash
	}

	var p phcParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &p.parallelism); err != nil {
		return phcParams{}, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return phcParams{}, nil, nil, ErrMalformedHash
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return phcParams{}, nil, nil, ErrMalformedHash
	}

	return p, salt, hash, nil
}
