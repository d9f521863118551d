package tether

// Option configures a Binder at construction time.
type Option func(*binderConfig)

type binderConfig struct {
	registry   *Registry
	printer    Printer
	decrypters map[DecryptAlgo]Decrypter
	hashers    map[HashAlgo]Hasher
	maskers    map[MaskType]Masker
}

// WithRegistry binds through r instead of DefaultRegistry().
func WithRegistry(r *Registry) Option {
	return func(c *binderConfig) {
		c.registry = r
	}
}

// WithPrinter reports failures to p instead of DefaultPrinter().
func WithPrinter(p Printer) Option {
	return func(c *binderConfig) {
		c.printer = p
	}
}

// WithDecrypter registers the decrypter used for `decrypt:"<algo>"` slots.
func WithDecrypter(algo DecryptAlgo, d Decrypter) Option {
	return func(c *binderConfig) {
		c.decrypters[algo] = d
	}
}

// WithKey is shorthand for WithDecrypter with an AES or envelope key.
// An invalid key surfaces from Init as a missing decrypter.
func WithKey(algo DecryptAlgo, key []byte) Option {
	return func(c *binderConfig) {
		var (
			enc Encryptor
			err error
		)
		switch algo {
		case DecryptAES:
			enc, err = AES(key)
		case DecryptEnvelope:
			enc, err = Envelope(key)
		default:
			return
		}
		if err == nil {
			c.decrypters[algo] = enc
		}
	}
}

// WithHasher overrides the hasher used for `hash:"<algo>"` slots.
func WithHasher(algo HashAlgo, h Hasher) Option {
	return func(c *binderConfig) {
		c.hashers[algo] = h
	}
}

// WithMasker overrides the masker used for `mask:"<type>"` slots.
func WithMasker(mt MaskType, m Masker) Option {
	return func(c *binderConfig) {
		c.maskers[mt] = m
	}
}
