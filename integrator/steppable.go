package integrator

// Steppable defines something which is advanced by fixed discrete steps.
// WARNING: Implementation must manage its own state based on the iteration.
type Steppable interface {
	Step(i uint64)      // Advance the state by one step from iteration i.
	Stop(i uint64) bool // Return whether to stop the integration before iteration i.
}
