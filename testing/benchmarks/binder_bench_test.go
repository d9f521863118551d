package benchmarks

import (
	"testing"

	"github.com/zoobzio/tether"
	"github.com/zoobzio/tether/json"
	"github.com/zoobzio/tether/properties"
	tethertest "github.com/zoobzio/tether/testing"
)

var serverValues = map[string]any{
	"server.host":    "api.internal",
	"server.port":    "8080",
	"server.timeout": "30s",
	"started":        "2024-01-15T10:00:00Z",
	"ratio":          "0.5",
	"debug":          "true",
	"maxConns":       "64",
}

func newServerBinder(b *testing.B) *tether.Binder[tethertest.ServerConfig] {
	b.Helper()
	binder := tether.NewBinder[tethertest.ServerConfig](tether.WithPrinter(tethertest.NewRecordingPrinter()))
	if err := binder.Init(); err != nil {
		b.Fatalf("Init() error: %v", err)
	}
	return binder
}

func BenchmarkBinder_Init(b *testing.B) {
	for i := 0; i < b.N; i++ {
		binder := tether.NewBinder[tethertest.ServerConfig]()
		_ = binder.Init()
	}
}

func BenchmarkBinder_Put_Field(b *testing.B) {
	binder := newServerBinder(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = binder.Put("server.port", "8080")
	}
}

func BenchmarkBinder_Put_Setter(b *testing.B) {
	binder := newServerBinder(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = binder.Put("maxConns", "64")
	}
}

func BenchmarkBinder_Put_Date(b *testing.B) {
	binder := newServerBinder(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = binder.Put("started", "2024-01-15T10:00:00Z")
	}
}

func BenchmarkBinder_PutAll(b *testing.B) {
	binder := newServerBinder(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = binder.PutAll(serverValues)
	}
}

func BenchmarkBinder_Put_WithDecryption(b *testing.B) {
	enc := tethertest.TestEncryptor(b)
	sealed := tethertest.Seal(b, enc, "s3cret")
	binder := tether.NewBinder[tethertest.SecretConfig](
		tether.WithPrinter(tethertest.NewRecordingPrinter()),
		tether.WithDecrypter(tether.DecryptAES, enc),
	)
	if err := binder.Init(); err != nil {
		b.Fatalf("Init() error: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = binder.Put("db.password", sealed)
	}
}

func BenchmarkBinder_Load_JSON(b *testing.B) {
	binder := newServerBinder(b)
	src := json.New()
	data := []byte(`{"server":{"host":"api.internal","port":8080,"timeout":"30s"},"ratio":0.5,"debug":true}`)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = binder.Load(src, data)
	}
}

func BenchmarkBinder_Load_Properties(b *testing.B) {
	binder := newServerBinder(b)
	src := properties.New()
	data := []byte("server.host = api.internal\nserver.port = 8080\nserver.timeout = 30s\nratio = 0.5\ndebug = true\n")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = binder.Load(src, data)
	}
}

func BenchmarkSnapshot(b *testing.B) {
	binder := newServerBinder(b)
	_ = binder.PutAll(serverValues)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = binder.Snapshot()
	}
}
