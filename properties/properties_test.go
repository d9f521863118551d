package properties

import (
	"reflect"
	"testing"

	"github.com/zoobzio/tether"
)

func TestNew(t *testing.T) {
	if New() == nil {
		t.Error("New() should return non-nil source")
	}
}

func TestContentType(t *testing.T) {
	s := New()
	if s.ContentType() != "text/x-java-properties" {
		t.Errorf("ContentType() = %q, want %q", s.ContentType(), "text/x-java-properties")
	}
}

const sample = `# service settings
server.port = 8080
app.name=svc
greeting = hello ${app.name}
`

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want []tether.Pair
	}{
		{
			name: "literal references",
			want: []tether.Pair{
				{Key: "server.port", Value: "8080"},
				{Key: "app.name", Value: "svc"},
				{Key: "greeting", Value: "hello ${app.name}"},
			},
		},
		{
			name: "expanded references",
			opts: []Option{WithExpansion()},
			want: []tether.Pair{
				{Key: "server.port", Value: "8080"},
				{Key: "app.name", Value: "svc"},
				{Key: "greeting", Value: "hello svc"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs, err := New(tt.opts...).Decode([]byte(sample))
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if !reflect.DeepEqual(pairs, tt.want) {
				t.Errorf("Decode() = %v, want %v", pairs, tt.want)
			}
		})
	}
}

func TestDecodeCircularReference(t *testing.T) {
	data := []byte("a = ${b}\nb = ${a}\n")
	if _, err := New(WithExpansion()).Decode(data); err == nil {
		t.Error("Decode(circular) should return error")
	}
}
