package integrator

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// Decay1D is dx = -k·x, stepped with explicit Euler.
type Decay1D struct {
	x, k, h float64
	steps   []uint64
	max     uint64
}

func (d *Decay1D) Step(i uint64) {
	d.x += -d.k * d.x * d.h
	d.steps = append(d.steps, i)
}

func (d *Decay1D) Stop(i uint64) bool {
	return i >= d.max
}

func assertPanic(t *testing.T, f func()) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("The code did not panic")
		}
	}()
	f()
}

func TestFixedStepSolve(t *testing.T) {
	h := 1 / 60.
	d := &Decay1D{x: 1, k: 0.5, h: h, max: 120}
	iterNum, xi, err := NewFixedStep(0, h, d).Solve()
	if err != nil {
		t.Fatalf("err: %+v\n", err)
	}
	if iterNum != 120 {
		t.Fatalf("iterNum = %d instead of 120", iterNum)
	}
	if !scalar.EqualWithinAbs(xi, 2, 1e-12) {
		t.Fatalf("xi = %f instead of 2", xi)
	}
	for i, step := range d.steps {
		if step != uint64(i) {
			t.Fatalf("step %d received iteration %d", i, step)
		}
	}
	if exp := math.Pow(1-0.5*h, 120); !scalar.EqualWithinRel(d.x, exp, 1e-12) {
		t.Fatalf("x = %f instead of %f", d.x, exp)
	}
}

func TestFixedStepNoStep(t *testing.T) {
	d := &Decay1D{x: 1, k: 0.5, h: 1, max: 0}
	iterNum, xi, _ := NewFixedStep(3, 1, d).Solve()
	if iterNum != 0 || xi != 3 || d.x != 1 {
		t.Fatalf("stepped although stop was requested: iter=%d xi=%f x=%f", iterNum, xi, d.x)
	}
}

func TestFixedStepPanics(t *testing.T) {
	assertPanic(t, func() {
		NewFixedStep(0, 0, &Decay1D{})
	})
	assertPanic(t, func() {
		NewFixedStep(0, -1, &Decay1D{})
	})
	assertPanic(t, func() {
		NewFixedStep(0, 1, nil)
	})
}
