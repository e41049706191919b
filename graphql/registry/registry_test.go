package registry

import (
	"context"
	"testing"
)

func TestRegister_Resolve(t *testing.T) {
	Register("testresolver", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return map[string]interface{}{"echo": args["in"]}, nil
	})
	defer Unregister("testresolver")

	out, err := Resolve(context.Background(), "testresolver", map[string]interface{}{"in": "x"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	m, ok := out.(map[string]interface{})
	if !ok || m["echo"] != "x" {
		t.Errorf("out = %v", out)
	}
}

func TestResolve_Unknown(t *testing.T) {
	if _, err := Resolve(context.Background(), "nope-does-not-exist", nil); err == nil {
		t.Error("want error for unknown extension")
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	Register("dupresolver", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return nil, nil
	})
	defer Unregister("dupresolver")
	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic on duplicate")
		}
	}()
	Register("dupresolver", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		return nil, nil
	})
}
