package main

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/zoobzio/tether"
)

var testKeyHex = hex.EncodeToString([]byte("32-byte-key-for-aes-256-encrypt!"))

func TestSourceFor(t *testing.T) {
	tests := []struct {
		path        string
		format      string
		contentType string
	}{
		{"app.properties", "", "text/x-java-properties"},
		{"app.json", "", "application/json"},
		{"app.YML", "", "application/yaml"},
		{"app.msgpack", "", "application/msgpack"},
		{"app.bson", "", "application/bson"},
		{"app.xml", "", "application/xml"},
		{"app.hcl", "", "application/hcl"},
		{"app.toml", "", "application/toml"},
		{"app.ini", "", "text/x-ini"},
		{"app.conf", "json", "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			src, err := sourceFor(tt.path, tt.format)
			if err != nil {
				t.Fatalf("sourceFor() error: %v", err)
			}
			if src.ContentType() != tt.contentType {
				t.Errorf("ContentType() = %q, want %q", src.ContentType(), tt.contentType)
			}
		})
	}
}

func TestSourceForUnknown(t *testing.T) {
	if _, err := sourceFor("app.docx", ""); err == nil {
		t.Error("sourceFor(docx) should return error")
	}
}

func TestFlatten(t *testing.T) {
	src, err := sourceFor("app.json", "")
	if err != nil {
		t.Fatalf("sourceFor() error: %v", err)
	}

	var buf bytes.Buffer
	if err := flatten(&buf, src, []byte(`{"server":{"port":8080},"name":"svc"}`)); err != nil {
		t.Fatalf("flatten() error: %v", err)
	}

	want := "name=svc\nserver.port=8080\n"
	if buf.String() != want {
		t.Errorf("flatten() = %q, want %q", buf.String(), want)
	}
}

func TestFlattenDecodeError(t *testing.T) {
	src, _ := sourceFor("app.json", "")
	var buf bytes.Buffer
	err := flatten(&buf, src, []byte("not json"))
	if err == nil {
		t.Fatal("flatten() should return error")
	}
	if !strings.Contains(err.Error(), "application/json") {
		t.Errorf("error %q should name the content type", err)
	}
}

func TestSeal(t *testing.T) {
	key, _ := hex.DecodeString(testKeyHex)

	tests := []struct {
		algo tether.DecryptAlgo
		open func([]byte) (tether.Encryptor, error)
	}{
		{tether.DecryptAES, tether.AES},
		{tether.DecryptEnvelope, tether.Envelope},
	}

	for _, tt := range tests {
		t.Run(string(tt.algo), func(t *testing.T) {
			sealed, err := seal(tt.algo, testKeyHex, "hunter2")
			if err != nil {
				t.Fatalf("seal() error: %v", err)
			}
			dec, err := tt.open(key)
			if err != nil {
				t.Fatalf("open error: %v", err)
			}
			plain, err := tether.Unseal(dec, sealed)
			if err != nil {
				t.Fatalf("Unseal() error: %v", err)
			}
			if plain != "hunter2" {
				t.Errorf("Unseal() = %q, want %q", plain, "hunter2")
			}
		})
	}
}

func TestSealErrors(t *testing.T) {
	if _, err := seal(tether.DecryptAES, "zz", "v"); err == nil {
		t.Error("seal(bad hex) should return error")
	}
	if _, err := seal(tether.DecryptAES, "abcd", "v"); err == nil {
		t.Error("seal(short key) should return error")
	}
	if _, err := seal("rot13", testKeyHex, "v"); err == nil {
		t.Error("seal(unknown algo) should return error")
	}
}

func TestVersionCommand(t *testing.T) {
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !strings.Contains(buf.String(), version) {
		t.Errorf("version output = %q", buf.String())
	}
}
