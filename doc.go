// Package tether binds flat key/value configuration onto Go structs.
//
// A Binder owns one instance of a struct type and assigns values to it by
// key. Keys come from exported fields, from setter methods on the pointer
// type, or from explicit property tags. Raw values are converted through a
// Registry of per-type transformers, so text like "8080", "true" or
// "2024-01-15" lands in int, bool and time.Time slots.
//
// # Keys
//
// A field binds under its own name unless a property tag overrides it. A
// setter binds under its name with one get/set/has/is prefix removed and the
// first letter lower-cased:
//
//	type Server struct {
//	    Host     string                       // "Host", and "host" through SetHost
//	    Port     int    `property:"port"`     // "port"
//	    Timeout  time.Duration `property:"-"` // not bindable, nor is SetTimeout
//	    maxConns int
//	}
//
//	func (s *Server) SetHost(h string)  { ... }
//	func (s *Server) SetMaxConns(n int) { ... } // "maxConns"
//
// A field with a setter binds through the setter under both keys, the
// field's and the setter's, when they differ. When two accessors derive the
// same key the one discovered last wins: fields in declaration order, then
// setters in method-set order.
//
// # Capability Tags
//
//	decrypt:"aes"      - value is base64 ciphertext, decrypted before binding
//	hash:"sha256"      - value is replaced by its hash
//	mask:"url"         - value is masked in Snapshot and failure reports
//	redact:"[hidden]"  - value is replaced in Snapshot and failure reports
//
// Setters cannot carry tags; implement Tagged to attach them.
//
// # Basic Usage
//
//	b := tether.NewBinder[Server](tether.WithKey(tether.DecryptAES, key))
//	if err := b.Init(); err != nil {
//	    return err
//	}
//	res, err := b.Load(properties.New(), data)
//	log.Println(res.Applied, b.Snapshot())
//
// # Failure Handling
//
// Only Init and source decoding return errors. A value that cannot be
// converted or assigned is reported to the Printer (a zap logger on stdout by
// default), emitted as a tether.put.failed signal and counted in Result; the
// remaining keys still bind.
//
// # Sources
//
// Sub-packages decode documents into ordered pairs: properties, json, yaml,
// msgpack, bson, xml, hcl, and viper (toml, ini, dotenv and others). Nested
// documents flatten to dotted keys such as db.host and hosts.0.
//
// # Observability
//
// Binder lifecycle events are emitted through capitan; see signals.go.
package tether
