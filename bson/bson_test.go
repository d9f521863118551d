package bson

import (
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNew(t *testing.T) {
	if New() == nil {
		t.Error("New() should return non-nil source")
	}
}

func TestContentType(t *testing.T) {
	s := New()
	if s.ContentType() != "application/bson" {
		t.Errorf("ContentType() = %q, want %q", s.ContentType(), "application/bson")
	}
}

func TestDecodeDocumentOrder(t *testing.T) {
	data, err := bson.Marshal(bson.D{
		{Key: "server", Value: bson.D{
			{Key: "port", Value: 8080},
			{Key: "host", Value: "h"},
		}},
		{Key: "hosts", Value: bson.A{"a", "b"}},
		{Key: "debug", Value: true},
	})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	pairs, err := New().Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	want := []string{"server.port=8080", "server.host=h", "hosts.0=a", "hosts.1=b", "debug=true"}
	if len(pairs) != len(want) {
		t.Fatalf("Decode() = %v, want %v", pairs, want)
	}
	for i, p := range pairs {
		if got := fmt.Sprintf("%s=%v", p.Key, p.Value); got != want[i] {
			t.Errorf("pair %d = %q, want %q", i, got, want[i])
		}
	}
}

func TestDecodeSpecialTypes(t *testing.T) {
	id := primitive.NewObjectID()
	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	data, err := bson.Marshal(bson.D{
		{Key: "id", Value: id},
		{Key: "started", Value: primitive.NewDateTimeFromTime(at)},
	})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	pairs, err := New().Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("Decode() = %v, want 2 pairs", pairs)
	}
	if pairs[0].Value != id.Hex() {
		t.Errorf("id = %v, want %s", pairs[0].Value, id.Hex())
	}
	started, ok := pairs[1].Value.(time.Time)
	if !ok || !started.Equal(at) {
		t.Errorf("started = %v, want %v", pairs[1].Value, at)
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := New().Decode([]byte("invalid bson")); err == nil {
		t.Error("Decode(invalid) should return error")
	}
}
