package command

import (
	"reflect"
	"testing"
)

func TestInvocation_TypedAccess(t *testing.T) {
	inv := NewInvocation(map[string]string{
		"name":    "Bob",
		"count":   "3",
		"ratio":   "0.5",
		"force":   "true",
		"garbage": "abc",
	}, nil, nil)

	if got := inv.String("name"); got != "Bob" {
		t.Errorf("String(name) = %q, want Bob", got)
	}

	n, err := inv.Int("count")
	if err != nil {
		t.Fatalf("Int(count): %v", err)
	}
	if n != 3 {
		t.Errorf("Int(count) = %d, want 3", n)
	}

	f, err := inv.Float("ratio")
	if err != nil {
		t.Fatalf("Float(ratio): %v", err)
	}
	if f != 0.5 {
		t.Errorf("Float(ratio) = %v, want 0.5", f)
	}

	if !inv.Bool("force") {
		t.Error("Bool(force) = false, want true")
	}
	if inv.Bool("garbage") {
		t.Error("Bool(garbage) = true, want false")
	}

	if _, err := inv.Int("garbage"); err == nil {
		t.Error("Int(garbage) succeeded, want error")
	}
	if _, err := inv.Int("absent"); err == nil {
		t.Error("Int(absent) succeeded, want error")
	}
}

func TestInvocation_Has(t *testing.T) {
	inv := NewInvocation(map[string]string{"present": ""}, nil, nil)
	if !inv.Has("present") {
		t.Error("Has(present) = false, want true")
	}
	if inv.Has("absent") {
		t.Error("Has(absent) = true, want false")
	}
}

func TestInvocation_ValuesIsACopy(t *testing.T) {
	inv := NewInvocation(map[string]string{"k": "v"}, nil, nil)
	got := inv.Values()
	got["k"] = "mutated"

	if inv.String("k") != "v" {
		t.Fatal("mutating Values() leaked into the invocation")
	}
	if want := map[string]string{"k": "v"}; !reflect.DeepEqual(inv.Values(), want) {
		t.Fatalf("Values() = %v, want %v", inv.Values(), want)
	}
}

func TestNewInvocation_Defaults(t *testing.T) {
	inv := NewInvocation(nil, []string{"a", "b"}, nil)
	if inv.Result == nil {
		t.Fatal("Result not defaulted")
	}
	if !inv.Result.OK {
		t.Fatal("defaulted Result is not OK")
	}
	if want := []string{"a", "b"}; !reflect.DeepEqual(inv.Argv, want) {
		t.Fatalf("Argv = %v, want %v", inv.Argv, want)
	}
}
