package tether

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// Secret errors.
var (
	ErrInvalidKeySize   = errors.New("invalid key size")
	ErrCiphertextShort  = errors.New("ciphertext too short")
	ErrDecryptionFailed = errors.New("decryption failed")
)

// Decrypter recovers plaintext from an encrypted property value.
type Decrypter interface {
	Decrypt(ciphertext []byte) ([]byte, error)
}

// Encryptor produces ciphertext that the matching Decrypter accepts. Binding
// only ever decrypts; Encrypt exists so tooling can seal property values.
type Encryptor interface {
	Decrypter
	Encrypt(plaintext []byte) ([]byte, error)
}

// Seal encrypts plaintext and returns the base64 text to put in a property file.
func Seal(enc Encryptor, plaintext string) (string, error) {
	ciphertext, err := enc.Encrypt([]byte(plaintext))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Unseal reverses Seal.
func Unseal(dec Decrypter, sealed string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("base64: %w", err)
	}
	plaintext, err := dec.Decrypt(ciphertext)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != 16 && len(key) != 24 && len(key) != 32 {
		return nil, fmt.Errorf("%w: must be 16, 24, or 32 bytes, got %d", ErrInvalidKeySize, len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// sealGCM encrypts with a random nonce prepended to the output.
func sealGCM(gcm cipher.AEAD, plaintext []byte) ([]byte, error) {
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// openGCM splits the nonce off data and decrypts the rest.
func openGCM(gcm cipher.AEAD, data []byte) ([]byte, error) {
	n := gcm.NonceSize()
	if len(data) < n {
		return nil, ErrCiphertextShort
	}
	plaintext, err := gcm.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecryptionFailed, err)
	}
	return plaintext, nil
}

// aesSecret implements AES-GCM with the nonce prepended.
type aesSecret struct {
	gcm cipher.AEAD
}

// AES returns an AES-GCM encryptor. Key must be 16, 24, or 32 bytes.
func AES(key []byte) (Encryptor, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return &aesSecret{gcm: gcm}, nil
}

func (s *aesSecret) Encrypt(plaintext []byte) ([]byte, error) {
	return sealGCM(s.gcm, plaintext)
}

func (s *aesSecret) Decrypt(ciphertext []byte) ([]byte, error) {
	return openGCM(s.gcm, ciphertext)
}

// envelopeSecret encrypts each value with a fresh AES-256 data key and
// stores that key, sealed by the master key, in front of the data:
//
//	[2 bytes sealed key len][sealed data key][sealed data]
type envelopeSecret struct {
	master cipher.AEAD
}

// Envelope returns an envelope encryptor. Master key must be 16, 24, or 32 bytes.
func Envelope(masterKey []byte) (Encryptor, error) {
	gcm, err := newGCM(masterKey)
	if err != nil {
		return nil, err
	}
	return &envelopeSecret{master: gcm}, nil
}

func (s *envelopeSecret) Encrypt(plaintext []byte) ([]byte, error) {
	dataKey := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, dataKey); err != nil {
		return nil, err
	}
	dataGCM, err := newGCM(dataKey)
	if err != nil {
		return nil, err
	}
	sealedData, err := sealGCM(dataGCM, plaintext)
	if err != nil {
		return nil, err
	}
	sealedKey, err := sealGCM(s.master, dataKey)
	if err != nil {
		return nil, err
	}
	if len(sealedKey) > 0xFFFF {
		return nil, errors.New("sealed data key exceeds maximum length")
	}

	out := make([]byte, 0, 2+len(sealedKey)+len(sealedData))
	out = append(out, byte(len(sealedKey)>>8), byte(len(sealedKey)))
	out = append(out, sealedKey...)
	return append(out, sealedData...), nil
}

func (s *envelopeSecret) Decrypt(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < 2 {
		return nil, ErrCiphertextShort
	}
	keyLen := int(ciphertext[0])<<8 | int(ciphertext[1])
	if len(ciphertext) < 2+keyLen {
		return nil, ErrCiphertextShort
	}

	dataKey, err := openGCM(s.master, ciphertext[2:2+keyLen])
	if err != nil {
		return nil, fmt.Errorf("data key: %w", err)
	}
	dataGCM, err := newGCM(dataKey)
	if err != nil {
		return nil, err
	}
	return openGCM(dataGCM, ciphertext[2+keyLen:])
}
