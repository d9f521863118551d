package tether

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Hasher replaces a bound value with a one-way hash of it.
type Hasher interface {
	// Hash returns the encoded hash of plaintext. Password hashers include
	// salt and parameters in the result; digest hashers return hex.
	Hash(plaintext []byte) (string, error)
}

// HasherFunc adapts a function to Hasher.
type HasherFunc func(plaintext []byte) (string, error)

// Hash calls f.
func (f HasherFunc) Hash(plaintext []byte) (string, error) { return f(plaintext) }

// Argon2Params configures Argon2id hashing.
type Argon2Params struct {
	Time    uint32 // Number of iterations
	Memory  uint32 // Memory usage in KiB
	Threads uint8  // Parallelism factor
	KeyLen  uint32 // Output key length
	SaltLen uint32 // Salt length
}

// DefaultArgon2Params returns the OWASP recommended Argon2id parameters.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
		KeyLen:  32,
		SaltLen: 16,
	}
}

// Argon2 returns an Argon2id hasher with default parameters.
func Argon2() Hasher {
	return Argon2WithParams(DefaultArgon2Params())
}

// Argon2WithParams returns an Argon2id hasher producing PHC-formatted strings:
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
func Argon2WithParams(p Argon2Params) Hasher {
	return HasherFunc(func(plaintext []byte) (string, error) {
		salt := make([]byte, p.SaltLen)
		if _, err := io.ReadFull(rand.Reader, salt); err != nil {
			return "", fmt.Errorf("salt: %w", err)
		}
		key := argon2.IDKey(plaintext, salt, p.Time, p.Memory, p.Threads, p.KeyLen)
		return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
			argon2.Version, p.Memory, p.Time, p.Threads,
			base64.RawStdEncoding.EncodeToString(salt),
			base64.RawStdEncoding.EncodeToString(key),
		), nil
	})
}

// Bcrypt returns a bcrypt hasher with bcrypt.DefaultCost.
func Bcrypt() Hasher {
	return BcryptWithCost(bcrypt.DefaultCost)
}

// BcryptWithCost returns a bcrypt hasher with the given cost.
func BcryptWithCost(cost int) Hasher {
	return HasherFunc(func(plaintext []byte) (string, error) {
		hash, err := bcrypt.GenerateFromPassword(plaintext, cost)
		if err != nil {
			return "", fmt.Errorf("bcrypt: %w", err)
		}
		return string(hash), nil
	})
}

// SHA256Hasher returns a hex SHA-256 digest hasher. Not for passwords.
func SHA256Hasher() Hasher {
	return HasherFunc(func(plaintext []byte) (string, error) {
		sum := sha256.Sum256(plaintext)
		return hex.EncodeToString(sum[:]), nil
	})
}

// SHA512Hasher returns a hex SHA-512 digest hasher. Not for passwords.
func SHA512Hasher() Hasher {
	return HasherFunc(func(plaintext []byte) (string, error) {
		sum := sha512.Sum512(plaintext)
		return hex.EncodeToString(sum[:]), nil
	})
}

// builtinHashers returns the default hasher table.
func builtinHashers() map[HashAlgo]Hasher {
	return map[HashAlgo]Hasher{
		HashArgon2: Argon2(),
		HashBcrypt: Bcrypt(),
		HashSHA256: SHA256Hasher(),
		HashSHA512: SHA512Hasher(),
	}
}
