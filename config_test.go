package rcsim

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeScenario(t *testing.T, content string) string {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "scenario.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadScenarioDefaults(t *testing.T) {
	dir := writeScenario(t, "[flight]\nticks = 30\n")
	sc, err := LoadScenario("scenario.toml", dir)
	if err != nil {
		t.Fatalf("err: %s", err)
	}
	def := DefaultParams()
	p := sc.Params
	if p.DragCoeff != def.DragCoeff || p.LiftCoeff != def.LiftCoeff || p.Mass != def.Mass || p.AileronGain != def.AileronGain ||
		p.ElevatorGain != def.ElevatorGain || p.ThrottleGain != def.ThrottleGain || p.Gravity != def.Gravity {
		t.Fatalf("params %+v are not the defaults", p)
	}
	if sc.Start != (Vec3{0.1, 0, 0}) || sc.BodyVelocity != (Vec3{1, 0, 0}) {
		t.Fatalf("start %+v / %+v", sc.Start, sc.BodyVelocity)
	}
	if sc.Ticks != 30 {
		t.Fatalf("ticks %d", sc.Ticks)
	}
	if sc.Controller.Type() != hold || sc.Controller.Command(Vec3{}, Attitude{}) != (Command{}) {
		t.Fatal("default controller should hold a zero command")
	}
	if !sc.Export.IsUseless() || sc.Export.Every != 1 {
		t.Fatalf("export %+v", sc.Export)
	}
	if !sc.StartDT.Equal(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("start date %s", sc.StartDT)
	}
	a := sc.NewAircraft()
	if a.ReferencePosition() != sc.Start || a.BodyVelocity() != sc.BodyVelocity {
		t.Fatal("aircraft does not match the scenario")
	}
}

func TestLoadScenarioSchedule(t *testing.T) {
	dir := writeScenario(t, `
[aircraft]
mass = 2.5
cd = 0.1
transform = "legacy"

[start]
position = [1, 2, 30]
velocity = [12.5, 0, 0]

[control]
law = "schedule"

[[control.segments]]
from = 5
throttle = 1.0
roll = 0.5

[[control.segments]]
from = 0
throttle = 0.25

[flight]
ticks = 600
start = 2024-03-01T08:00:00Z

[export]
filename = "sched"
csv = true
every = 60

[log]
file = "flight.log"
`)
	sc, err := LoadScenario("scenario", dir)
	if err != nil {
		t.Fatalf("err: %s", err)
	}
	if sc.Params.Mass != 2.5 || sc.Params.DragCoeff != 0.1 || sc.Params.LiftCoeff != DefaultLiftCoeff {
		t.Fatalf("params %+v", sc.Params)
	}
	if sc.Start != (Vec3{1, 2, 30}) || sc.BodyVelocity != (Vec3{12.5, 0, 0}) {
		t.Fatalf("start %+v / %+v", sc.Start, sc.BodyVelocity)
	}
	if sc.Controller.Type() != schedule {
		t.Fatalf("controller %s", sc.Controller.Type())
	}
	for i := 0; i < 5; i++ {
		if cmd := sc.Controller.Command(Vec3{}, Attitude{}); cmd != (Command{Throttle: 0.25}) {
			t.Fatalf("tick %d: %+v", i, cmd)
		}
	}
	if cmd := sc.Controller.Command(Vec3{}, Attitude{}); cmd != (Command{Throttle: 1, RollRate: 0.5}) {
		t.Fatalf("tick 5: %+v", cmd)
	}
	if !sc.StartDT.Equal(time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("start date %s", sc.StartDT)
	}
	if sc.Ticks != 600 || !sc.Export.AsCSV || sc.Export.AsMsgpack || sc.Export.Every != 60 || sc.Export.Filename != "sched" {
		t.Fatalf("flight/export %d %+v", sc.Ticks, sc.Export)
	}
	if sc.LogFile != "flight.log" || sc.LogMaxSize != 32 {
		t.Fatalf("log %s %d", sc.LogFile, sc.LogMaxSize)
	}
	// Legacy transform: positive pitch climbs.
	a := sc.NewAircraft()
	a.ApplyControls(Command{PitchRate: 10})
	a.toReference()
	if a.ReferenceVelocity()[2] <= 0 {
		t.Fatal("legacy transform not loaded")
	}
}

func TestLoadScenarioHeading(t *testing.T) {
	dir := writeScenario(t, `
[control]
law = "heading"
target = [100, 50, 0]
throttle = 0.6
gain = 2
max_rate = 0.75
`)
	sc, err := LoadScenario("scenario", dir)
	if err != nil {
		t.Fatalf("err: %s", err)
	}
	cl, ok := sc.Controller.(*HeadingHold)
	if !ok {
		t.Fatalf("controller is a %T", sc.Controller)
	}
	if cl.Target != (Vec3{100, 50, 0}) || cl.Throttle != 0.6 || cl.Kyaw != 2 || cl.Kroll != 2 || cl.Kpitch != 2 || cl.MaxRate != 0.75 {
		t.Fatalf("heading hold %+v", cl)
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	for name, content := range map[string]string{
		"law":       "[control]\nlaw = \"barrel-roll\"\n",
		"transform": "[aircraft]\ntransform = \"quaternion\"\n",
		"vector":    "[start]\nposition = [1, 2]\n",
		"target":    "[control]\nlaw = \"heading\"\n",
	} {
		dir := writeScenario(t, content)
		if _, err := LoadScenario("scenario", dir); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
	if _, err := LoadScenario("missing", t.TempDir()); err == nil {
		t.Fatal("expected an error for a missing scenario")
	}
}

func TestLoadScenarioRoute(t *testing.T) {
	dir := writeScenario(t, `[control]
law = "route"

[[control.waypoints]]
kind = "fly_to"
target = [40.0, 0.0]
radius = 2.0
throttle = 0.3

[[control.waypoints]]
kind = "loiter"
ticks = 3
throttle = 0.2
yaw = 1.0
`)
	sc, err := LoadScenario("scenario", dir)
	if err != nil {
		t.Fatalf("err: %s", err)
	}
	if sc.Controller.Type() != route {
		t.Fatalf("law %s", sc.Controller.Type())
	}
	r, ok := sc.Controller.(*Route)
	if !ok || len(r.WayPoints) != 2 {
		t.Fatalf("controller %+v", sc.Controller)
	}
	// Starting within the radius of the first waypoint clears it immediately.
	cmd := r.Command(Vec3{39, 0, 0}, Attitude{})
	if !r.WayPoints[0].Cleared() || cmd.Throttle != 0.3 {
		t.Fatalf("first waypoint not cleared: %+v", cmd)
	}
	exp := Command{Throttle: 0.2, YawRate: 1}
	for i := 0; i < 3; i++ {
		if cmd = r.Command(Vec3{}, Attitude{}); cmd != exp {
			t.Fatalf("#%d: %+v", i, cmd)
		}
	}
	if !r.Done() {
		t.Fatal("route should be done")
	}

	dir = writeScenario(t, "[control]\nlaw = \"route\"\n[[control.waypoints]]\nkind = \"circle\"\n")
	if _, err := LoadScenario("scenario", dir); err == nil {
		t.Fatal("unknown waypoint kind should fail")
	}
}
