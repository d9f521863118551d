// Package testing provides test utilities for tether.
package testing

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/tether"
)

// TestKey returns a valid 32-byte AES key for testing.
func TestKey(tb testing.TB) []byte {
	tb.Helper()
	return []byte("32-byte-key-for-aes-256-encrypt!")
}

// TestEncryptor returns an AES encryptor configured for testing.
func TestEncryptor(tb testing.TB) tether.Encryptor {
	tb.Helper()
	enc, err := tether.AES(TestKey(tb))
	if err != nil {
		tb.Fatalf("AES() error: %v", err)
	}
	return enc
}

// Seal encrypts plaintext with enc and returns the text to put in a
// decrypt-tagged property.
func Seal(tb testing.TB, enc tether.Encryptor, plaintext string) string {
	tb.Helper()
	sealed, err := tether.Seal(enc, plaintext)
	if err != nil {
		tb.Fatalf("Seal() error: %v", err)
	}
	return sealed
}

// Entry is one failure captured by a RecordingPrinter.
type Entry struct {
	Message string
	Err     error
}

// RecordingPrinter captures failure reports instead of logging them.
type RecordingPrinter struct {
	mu      sync.Mutex
	entries []Entry
}

// NewRecordingPrinter returns an empty RecordingPrinter.
func NewRecordingPrinter() *RecordingPrinter {
	return &RecordingPrinter{}
}

// Print implements tether.Printer.
func (p *RecordingPrinter) Print(message string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, Entry{Message: message, Err: err})
}

// Entries returns a copy of everything printed so far.
func (p *RecordingPrinter) Entries() []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Entry(nil), p.entries...)
}

// Len returns the number of failures printed.
func (p *RecordingPrinter) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.entries)
}

// ServerConfig is a test type mixing tagged fields, plain fields and a
// setter-only slot.
type ServerConfig struct {
	Host    string        `property:"server.host"`
	Port    int           `property:"server.port"`
	Timeout time.Duration `property:"server.timeout"`
	Started time.Time     `property:"started"`
	Ratio   float64       `property:"ratio"`
	Debug   bool          `property:"debug"`
	Mode    string
	Ignored string `property:"-"`

	maxConns int
}

// SetMaxConns binds under "maxConns".
func (c *ServerConfig) SetMaxConns(n int) { c.maxConns = n }

// MaxConns returns the bound connection limit.
func (c *ServerConfig) MaxConns() int { return c.maxConns }

// SecretConfig is a test type exercising every capability tag.
type SecretConfig struct {
	User     string `property:"db.user"`
	Password string `property:"db.password" decrypt:"aes"`
	APIKey   string `property:"api.key" hash:"sha256"`
	DSN      string `property:"db.url" mask:"url"`
	Token    string `property:"token" redact:"[hidden]"`
}

// PluginConfig binds through setters tagged with Tagged metadata and
// collects unknown keys through PropertySetter.
type PluginConfig struct {
	name   string
	extras map[string]string
}

// Construct implements tether.Constructor.
func (c *PluginConfig) Construct() error {
	c.extras = make(map[string]string)
	return nil
}

// SetPluginName binds under "plugin.name" via PropertyTags.
func (c *PluginConfig) SetPluginName(name string) { c.name = name }

// PluginName returns the bound name.
func (c *PluginConfig) PluginName() string { return c.name }

// PropertyTags implements tether.Tagged.
func (c *PluginConfig) PropertyTags() map[string]reflect.StructTag {
	return map[string]reflect.StructTag{
		"SetPluginName": `property:"plugin.name"`,
	}
}

// SetProperty implements tether.PropertySetter for keys under "extra.".
func (c *PluginConfig) SetProperty(key, value string) (bool, error) {
	const prefix = "extra."
	if len(key) <= len(prefix) || key[:len(prefix)] != prefix {
		return false, nil
	}
	c.extras[key[len(prefix):]] = value
	return true, nil
}

// Extras returns the collected extra keys.
func (c *PluginConfig) Extras() map[string]string { return c.extras }
