package tether

// DecryptAlgo names a decryption algorithm for encrypted property values.
// Use these constants in struct tags: `decrypt:"aes"`
type DecryptAlgo string

const (
	// DecryptAES expects base64 AES-GCM ciphertext with the nonce prepended.
	DecryptAES DecryptAlgo = "aes"

	// DecryptEnvelope expects base64 envelope ciphertext (encrypted data key + data).
	DecryptEnvelope DecryptAlgo = "envelope"
)

// HashAlgo names a hashing algorithm applied to bound string values.
// Use these constants in struct tags: `hash:"sha256"`
type HashAlgo string

const (
	// HashArgon2 uses Argon2id (salted, slow). For secrets compared later.
	HashArgon2 HashAlgo = "argon2"

	// HashBcrypt uses bcrypt (salted, slow).
	HashBcrypt HashAlgo = "bcrypt"

	// HashSHA256 uses SHA-256 (deterministic). For fingerprints, NOT passwords.
	HashSHA256 HashAlgo = "sha256"

	// HashSHA512 uses SHA-512 (deterministic). For fingerprints, NOT passwords.
	HashSHA512 HashAlgo = "sha512"
)

var validDecryptAlgos = map[DecryptAlgo]bool{
	DecryptAES:      true,
	DecryptEnvelope: true,
}

var validHashAlgos = map[HashAlgo]bool{
	HashArgon2: true,
	HashBcrypt: true,
	HashSHA256: true,
	HashSHA512: true,
}

var validMaskTypes = map[MaskType]bool{
	MaskSecret: true,
	MaskEmail:  true,
	MaskCard:   true,
	MaskIP:     true,
	MaskURL:    true,
}

// IsValidDecryptAlgo returns true if the algorithm is a known decryption algorithm.
func IsValidDecryptAlgo(algo DecryptAlgo) bool {
	return validDecryptAlgos[algo]
}

// IsValidHashAlgo returns true if the algorithm is a known hash algorithm.
func IsValidHashAlgo(algo HashAlgo) bool {
	return validHashAlgos[algo]
}

// IsValidMaskType returns true if the type is a known mask type.
func IsValidMaskType(mt MaskType) bool {
	return validMaskTypes[mt]
}
