package core

import (
	"math"
	"testing"
)

func TestVec3_Cross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected Vec3
	}{
		{"X cross Y", NewVec3(1, 0, 0), NewVec3(0, 1, 0), NewVec3(0, 0, 1)},
		{"Y cross Z", NewVec3(0, 1, 0), NewVec3(0, 0, 1), NewVec3(1, 0, 0)},
		{"Z cross X", NewVec3(0, 0, 1), NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
		{"parallel", NewVec3(2, 0, 0), NewVec3(5, 0, 0), NewVec3(0, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.a.Cross(tt.b)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 0, 4).Normalize()
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}
	if math.Abs(v.X-0.6) > 1e-12 || math.Abs(v.Z-0.8) > 1e-12 {
		t.Errorf("Expected (0.6, 0, 0.8), got %v", v)
	}
}

func TestVec3_NormalizeZero(t *testing.T) {
	v := Vec3{}.Normalize()
	if v != (Vec3{}) {
		t.Errorf("Expected zero vector, got %v", v)
	}

	if _, err := (Vec3{}).TryNormalize(); err != ErrZeroLength {
		t.Errorf("Expected ErrZeroLength, got %v", err)
	}

	n, err := NewVec3(0, 2, 0).TryNormalize()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n != NewVec3(0, 1, 0) {
		t.Errorf("Expected (0,1,0), got %v", n)
	}
}

func TestPoint3_Arithmetic(t *testing.T) {
	a := NewPoint3(1, 2, 3)
	b := NewPoint3(4, 6, 3)

	if d := b.Sub(a); d != NewVec3(3, 4, 0) {
		t.Errorf("Expected displacement (3,4,0), got %v", d)
	}
	if dist := a.Distance(b); math.Abs(dist-5) > 1e-12 {
		t.Errorf("Expected distance 5, got %f", dist)
	}
	if p := a.Add(NewVec3(1, 1, 1)); p != NewPoint3(2, 3, 4) {
		t.Errorf("Expected (2,3,4), got %v", p)
	}
	if p := a.SubVec(NewVec3(1, 1, 1)); p != NewPoint3(0, 1, 2) {
		t.Errorf("Expected (0,1,2), got %v", p)
	}
	if p := a.Scale(2); p != NewPoint3(2, 4, 6) {
		t.Errorf("Expected (2,4,6), got %v", p)
	}
}

func TestRay_At(t *testing.T) {
	r := NewRay(NewPoint3(0, 0, 6), NewVec3(0, 0, -1))
	if p := r.At(5); p != NewPoint3(0, 0, 1) {
		t.Errorf("Expected (0,0,1), got %v", p)
	}
}
