package tbdconfig

import "testing"

func TestLoadDefaults(t *testing.T) {
	c, err := Reload()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.IterationLimit != 64 {
		t.Errorf("IterationLimit = %d, want 64", c.IterationLimit)
	}
	if c.WarningsAsErrors {
		t.Error("WarningsAsErrors should default to false")
	}
	if c.NewtonIterations != 10 {
		t.Errorf("NewtonIterations = %d, want 10", c.NewtonIterations)
	}
}

func TestGetPanicsBeforeLoad(t *testing.T) {
	saved := cfg
	cfg = nil
	defer func() { cfg = saved }()

	defer func() {
		if recover() == nil {
			t.Error("Get() before Load() should panic")
		}
	}()
	Get()
}
