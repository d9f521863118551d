package tether

import (
	"errors"
	"reflect"
	"testing"
)

type setterTarget struct {
	port int
}

func (s *setterTarget) SetPort(p int) error {
	if p <= 0 {
		return errors.New("port must be positive")
	}
	s.port = p
	return nil
}

func (s *setterTarget) Port() int { return s.port }

func (s *setterTarget) SetPanic(string) { panic("boom") }

func TestIsSetter(t *testing.T) {
	ptr := reflect.TypeFor[*basicTarget]()

	tests := []struct {
		method string
		want   bool
	}{
		{"SetLimit", true},
		{"SetRetries", true},
		{"SetNothing", false},
		{"SetPair", false},
		{"Limit", false},
	}

	for _, tt := range tests {
		m, ok := ptr.MethodByName(tt.method)
		if !ok {
			t.Fatalf("method %s not found", tt.method)
		}
		if got := isSetter(m); got != tt.want {
			t.Errorf("isSetter(%s) = %v, want %v", tt.method, got, tt.want)
		}
	}
}

func TestDescriptor_SetThroughSetter(t *testing.T) {
	w, err := WrapperFor[setterTarget]()
	if err != nil {
		t.Fatalf("WrapperFor() error: %v", err)
	}
	d, ok := w.Lookup("port")
	if !ok {
		t.Fatalf("Lookup(port) missing, keys %v", w.Keys())
	}

	obj := &setterTarget{}
	target := reflect.ValueOf(obj)

	if err := d.Set(target, reflect.ValueOf(8080)); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if obj.port != 8080 {
		t.Errorf("port = %d, want 8080", obj.port)
	}

	v, ok := d.Get(target)
	if !ok || v.Int() != 8080 {
		t.Errorf("Get() = %v, %v", v, ok)
	}

	if err := d.Set(target, reflect.ValueOf(-1)); !errors.Is(err, ErrSetter) {
		t.Errorf("Set(-1) error = %v, want ErrSetter", err)
	}
	if err := d.Set(target, reflect.ValueOf("8080")); !errors.Is(err, ErrNotAssignable) {
		t.Errorf("Set(string) error = %v, want ErrNotAssignable", err)
	}
}

func TestDescriptor_SetterPanic(t *testing.T) {
	w, _ := WrapperFor[setterTarget]()
	d, ok := w.Lookup("panic")
	if !ok {
		t.Fatalf("Lookup(panic) missing, keys %v", w.Keys())
	}

	err := d.Set(reflect.ValueOf(&setterTarget{}), reflect.ValueOf("x"))
	if !errors.Is(err, ErrSetter) {
		t.Errorf("Set() error = %v, want ErrSetter", err)
	}
	if _, ok := d.Get(reflect.ValueOf(&setterTarget{})); ok {
		t.Error("Get() without a matching getter should report false")
	}
}

func TestDescriptor_SetFieldAndZero(t *testing.T) {
	w, _ := WrapperFor[basicTarget]()
	d, _ := w.Lookup("server.port")

	obj := &basicTarget{Port: 1}
	if err := d.Set(reflect.ValueOf(obj), reflect.Value{}); err != nil {
		t.Fatalf("Set(invalid) error: %v", err)
	}
	if obj.Port != 0 {
		t.Errorf("Port = %d, want zero value", obj.Port)
	}
	if d.Name() != "Port" {
		t.Errorf("Name() = %q, want Port", d.Name())
	}
}

func TestParseTags(t *testing.T) {
	tag := reflect.StructTag(`json:"x" property:"a.b" decrypt:"aes" mask:"email"`)
	got := parseTags(tag)
	want := map[string]string{"property": "a.b", "decrypt": "aes", "mask": "email"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseTags() = %v, want %v", got, want)
	}
}
