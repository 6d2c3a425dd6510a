package rcsim

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/landandair/RC-Autopilot-Sim/integrator"
)

const (
	// MaxTicks is the hard limit of a flight without a tick count: one simulated day.
	MaxTicks = 24 * 3600 * 60
	// statusEvery is the number of ticks between two status logs (one simulated minute).
	statusEvery = 60 * 60
)

/* Handles running an aircraft with a controller over many ticks. */

// Flight drives an aircraft with a controller for a number of ticks and streams its states.
type Flight struct {
	Aircraft           *Aircraft // As pointer because the aircraft changes during the flight.
	Ctrl               DescribedController
	StartDT, CurrentDT time.Time
	ticks              uint64 // zero means until stopped
	conf               ExportConfig
	logger             log.Logger
	stopChan           chan bool
	histChan           chan<- State
	diverged           bool
}

// NewFlight returns a new flight of the given number of ticks. A zero tick count flies until
// StopFlight is called, the route of the controller is completed, or MaxTicks is reached.
// The simulated clock starts at start.
func NewFlight(a *Aircraft, ctrl Controller, start time.Time, ticks uint64, conf ExportConfig, logger log.Logger) *Flight {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	// Must switch to UTC for the Julian dates.
	start = start.UTC()
	return &Flight{
		Aircraft:  a,
		Ctrl:      Describe(ctrl),
		StartDT:   start,
		CurrentDT: start,
		ticks:     ticks,
		conf:      conf,
		logger:    log.With(logger, "subsys", "flight"),
		stopChan:  make(chan bool, 1),
	}
}

// LogStatus logs the status of the flight and aircraft.
func (f *Flight) LogStatus() {
	f.logger.Log("level", "info", "dt", f.CurrentDT, "tick", f.Aircraft.Ticks(), "aircraft", f.Aircraft)
}

// Run flies until the tick count is reached or the flight is stopped. It blocks until all the
// states are exported, and returns the number of ticks flown.
func (f *Flight) Run() (uint64, error) {
	var (
		wg        sync.WaitGroup
		exportErr error
	)
	if !f.conf.IsUseless() {
		histChan := make(chan State, 1000) // a 1k entry buffer
		f.histChan = histChan
		wg.Add(1)
		go func() {
			defer wg.Done()
			exportErr = StreamStates(f.conf, histChan)
			if exportErr != nil {
				// Keep draining so the flight never blocks on a failed exporter.
				for range histChan {
				}
			}
		}()
		// Write the first data point.
		f.histChan <- f.state()
	}

	f.logger.Log("level", "notice", "status", "started", "controller", f.Ctrl.Type(), "reason", f.Ctrl.Reason())
	f.LogStatus()
	flown, _, err := integrator.NewFixedStep(0, dt, f).Solve() // Blocking.
	if f.histChan != nil {
		close(f.histChan)
		f.histChan = nil
	}
	wg.Wait() // Don't return until we're done writing all the files.
	f.logger.Log("level", "notice", "status", "finished", "ticks", flown, "duration", f.CurrentDT.Sub(f.StartDT))
	f.LogStatus()
	if err != nil {
		return flown, err
	}
	if exportErr != nil {
		return flown, fmt.Errorf("could not export flight: %w", exportErr)
	}
	return flown, nil
}

// StopFlight is used to stop the flight before it is completed.
func (f *Flight) StopFlight() {
	select {
	case f.stopChan <- true:
	default:
		// A stop is already pending.
	}
}

// Stop implements the integrator.Steppable interface. To stop the flight, call StopFlight().
func (f *Flight) Stop(i uint64) bool {
	select {
	case <-f.stopChan:
		f.logger.Log("level", "notice", "status", "stopped", "tick", i)
		return true
	default:
	}
	if f.ticks == 0 {
		// Check if any waypoint still needs to be reached.
		if r, ok := f.Ctrl.(interface{ Done() bool }); ok && r.Done() {
			f.logger.Log("level", "notice", "status", "route completed", "tick", i)
			return true
		}
		if i >= MaxTicks {
			f.logger.Log("level", "critical", "status", "killed", "tick", i)
			return true
		}
		return false
	}
	return i >= f.ticks
}

// Step implements the integrator.Steppable interface.
func (f *Flight) Step(i uint64) {
	f.Aircraft.Tick(f.Ctrl)
	f.CurrentDT = f.StartDT.Add(TicksDuration(i + 1))
	st := f.state()
	// The model does not guard against NaNs, but it's worth knowing when it happens.
	if !f.diverged && !(st.Position.IsFinite() && st.Velocity.IsFinite() && st.Attitude.IsFinite()) {
		f.diverged = true
		f.logger.Log("level", "critical", "subsys", "dynamics", "status", "non-finite state", "tick", st.Tick, "aircraft", f.Aircraft)
	}
	if (i+1)%statusEvery == 0 {
		f.LogStatus()
	}
	if f.histChan != nil {
		f.histChan <- st
	}
}

func (f *Flight) state() State {
	a := f.Aircraft
	return State{Tick: a.Ticks(), DT: f.CurrentDT, Position: a.ReferencePosition(), Velocity: a.ReferenceVelocity(),
		BodyVelocity: a.BodyVelocity(), Attitude: a.Attitude(), Thrust: a.Thrust()}
}

// State stores a flown state.
type State struct {
	Tick         uint64    `msgpack:"tick"`
	DT           time.Time `msgpack:"dt"`
	Position     Vec3      `msgpack:"r"`
	Velocity     Vec3      `msgpack:"v"`
	BodyVelocity Vec3      `msgpack:"vb"`
	Attitude     Attitude  `msgpack:"att"`
	Thrust       float64   `msgpack:"thrust"`
}
