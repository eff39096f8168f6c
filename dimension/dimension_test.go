package dimension

import "testing"

func TestRatReduction(t *testing.T) {
	tests := []struct {
		n, d     int64
		wantN    int64
		wantD    int64
	}{
		{2, 4, 1, 2},
		{-2, 4, -1, 2},
		{3, 1, 3, 1},
		{0, 5, 0, 1},
	}
	for _, tt := range tests {
		got := NewRat(tt.n, tt.d)
		want := Rat{tt.wantN, tt.wantD}
		if got != want {
			t.Errorf("NewRat(%d,%d) = %+v, want %+v", tt.n, tt.d, got, want)
		}
	}
}

func TestRatArithmetic(t *testing.T) {
	half := NewRat(1, 2)
	third := NewRat(1, 3)
	if got := half.Add(third); !got.Equal(NewRat(5, 6)) {
		t.Errorf("1/2+1/3 = %v, want 5/6", got)
	}
	if got := half.Sub(third); !got.Equal(NewRat(1, 6)) {
		t.Errorf("1/2-1/3 = %v, want 1/6", got)
	}
	if got := half.MulInt(4); !got.Equal(RatFromInt(2)) {
		t.Errorf("1/2*4 = %v, want 2", got)
	}
	if got := RatFromInt(6).DivInt(3); !got.Equal(RatFromInt(2)) {
		t.Errorf("6/3 = %v, want 2", got)
	}
}

func TestRatString(t *testing.T) {
	if got := RatFromInt(3).String(); got != "3" {
		t.Errorf("String() = %q, want 3", got)
	}
	if got := NewRat(1, 2).String(); got != "(1/2)" {
		t.Errorf("String() = %q, want (1/2)", got)
	}
	if got := NewRat(-1, 2).String(); got != "(-1/2)" {
		t.Errorf("String() = %q, want (-1/2)", got)
	}
}

func TestDimensionPrinting(t *testing.T) {
	tests := []struct {
		dim  Dimension
		want string
	}{
		{Div(L(), T()), "[m,s^-1]"},
		{Mul(M(), Div(L(), Pow(T(), 2))), "[m,kg,s^-2]"},
		{Div(Mul(Pow(L(), 2), M()), Mul(Pow(T(), 3), Pow(I(), 2))), "[m^2,kg,s^-3,A^-2]"},
		{Dimensionless(), "[]"},
	}
	for _, tt := range tests {
		if got := tt.dim.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDimensionAlgebra(t *testing.T) {
	velocity := Div(L(), T())
	if !Mul(velocity, T()).Equal(L()) {
		t.Error("(L/T)*T should equal L")
	}
	if !Root(Pow(L(), 2), 2).Equal(L()) {
		t.Error("root(pow(L,2),2) should equal L")
	}
	if !Dimensionless().IsDimensionless() {
		t.Error("Dimensionless() should report IsDimensionless")
	}
	if L().IsDimensionless() {
		t.Error("L() should not report IsDimensionless")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	u, ok := r.Lookup("m")
	if !ok || u.Scale != 1 || !u.Dim.Equal(L()) {
		t.Fatalf("Lookup(m) = %+v, %v", u, ok)
	}
	if _, ok := r.Lookup("foo"); ok {
		t.Fatal("Lookup(foo) should fail before registration")
	}
	if !r.Add("foo", Unit{Scale: 1, Dim: L()}) {
		t.Fatal("first Add(foo) should succeed")
	}
	if _, ok := r.Lookup("foo"); !ok {
		t.Fatal("Lookup(foo) should succeed after registration")
	}
	if r.Add("foo", Unit{Scale: 2, Dim: L()}) {
		t.Fatal("second Add(foo) should fail")
	}
}
