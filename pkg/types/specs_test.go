package types

import "testing"

func TestSpecsRoundTripThroughDriverValue(t *testing.T) {
	in := Specs{"ram": "16 GB", "storage": "512 GB"}
	v, err := in.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var out Specs
	if err := out.Scan(v); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if out["ram"] != "16 GB" || out["storage"] != "512 GB" {
		t.Fatalf("unexpected specs %v", out)
	}
}

func TestSpecsNilValueIsEmptyObject(t *testing.T) {
	var s Specs
	v, err := s.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != "{}" {
		t.Fatalf("expected {}, got %v", v)
	}
}

func TestSpecsScanRejectsUnknownType(t *testing.T) {
	var s Specs
	if err := s.Scan(42); err == nil {
		t.Fatal("expected error for int source")
	}
}
