package integrator

// FixedStep drives a Steppable at a constant step size.
type FixedStep struct {
	X0       float64   // The initial x0.
	StepSize float64   // The step size.
	Stepper  Steppable // What is to be stepped.
}

// NewFixedStep returns a new FixedStep integrator instance.
func NewFixedStep(x0 float64, stepSize float64, s Steppable) (f *FixedStep) {
	if stepSize <= 0 {
		panic("config StepSize must be positive")
	}
	if s == nil {
		panic("config Stepper may not be nil")
	}
	f = &FixedStep{X0: x0, StepSize: stepSize, Stepper: s}
	return
}

// Solve runs the steps until the Steppable requests to stop.
// Returns the number of iterations performed and the last X_i, or an error.
func (f *FixedStep) Solve() (uint64, float64, error) {
	iterNum := uint64(0)
	xi := f.X0
	for !f.Stepper.Stop(iterNum) {
		f.Stepper.Step(iterNum)
		iterNum++ // Don't forget to increment the number of iterations.
		xi = f.X0 + float64(iterNum)*f.StepSize
	}
	return iterNum, xi, nil
}
