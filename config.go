package rcsim

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Scenario is everything needed to fly: the aircraft, its controller, and how to export the flight.
type Scenario struct {
	Start        Vec3
	BodyVelocity Vec3
	Params       Params
	Controller   DescribedController
	StartDT      time.Time
	Ticks        uint64
	Export       ExportConfig
	LogFile      string // Empty means stdout.
	LogMaxSize   int    // MB
}

// waypointConf is a route waypoint as written in the scenario file.
type waypointConf struct {
	Kind     string    `mapstructure:"kind"`
	Target   []float64 `mapstructure:"target"`
	Radius   float64   `mapstructure:"radius"`
	Ticks    uint64    `mapstructure:"ticks"`
	Throttle float64   `mapstructure:"throttle"`
	Roll     float64   `mapstructure:"roll"`
	Pitch    float64   `mapstructure:"pitch"`
	Yaw      float64   `mapstructure:"yaw"`
}

// segmentConf is a schedule segment as written in the scenario file.
type segmentConf struct {
	From     uint64  `mapstructure:"from"`
	Throttle float64 `mapstructure:"throttle"`
	Roll     float64 `mapstructure:"roll"`
	Pitch    float64 `mapstructure:"pitch"`
	Yaw      float64 `mapstructure:"yaw"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("aircraft.cd", DefaultDragCoeff)
	v.SetDefault("aircraft.cl", DefaultLiftCoeff)
	v.SetDefault("aircraft.mass", DefaultMass)
	v.SetDefault("aircraft.aileron_gain", DefaultAileronGain)
	v.SetDefault("aircraft.elevator_gain", DefaultElevatorGain)
	v.SetDefault("aircraft.throttle_gain", DefaultThrottleGain)
	v.SetDefault("aircraft.gravity", StandardGravity)
	v.SetDefault("aircraft.transform", "euler")
	v.SetDefault("start.position", []float64{0.1, 0, 0})
	v.SetDefault("start.velocity", []float64{1, 0, 0})
	v.SetDefault("control.law", "hold")
	v.SetDefault("flight.ticks", 60*60)
	v.SetDefault("export.filename", "flight")
	v.SetDefault("export.every", 1)
	v.SetDefault("log.max_size", 32)
}

// LoadScenario reads the TOML scenario `name` (with or without extension) from the provided directory.
func LoadScenario(name, dir string) (Scenario, error) {
	v := viper.New()
	v.SetConfigName(strings.TrimSuffix(name, ".toml"))
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		return Scenario{}, fmt.Errorf("%s/%s: %w", dir, name, err)
	}
	return scenarioFromViper(v)
}

func scenarioFromViper(v *viper.Viper) (sc Scenario, err error) {
	setDefaults(v)

	sc.Params = Params{
		DragCoeff:    v.GetFloat64("aircraft.cd"),
		LiftCoeff:    v.GetFloat64("aircraft.cl"),
		Mass:         v.GetFloat64("aircraft.mass"),
		AileronGain:  v.GetFloat64("aircraft.aileron_gain"),
		ElevatorGain: v.GetFloat64("aircraft.elevator_gain"),
		ThrottleGain: v.GetFloat64("aircraft.throttle_gain"),
		Gravity:      v.GetFloat64("aircraft.gravity"),
	}
	switch transform := v.GetString("aircraft.transform"); transform {
	case "euler":
		sc.Params.Transform = EulerZYX
	case "legacy":
		sc.Params.Transform = Legacy
	default:
		return sc, fmt.Errorf("unknown frame transform `%s`", transform)
	}

	if sc.Start, err = readVec3(v, "start.position"); err != nil {
		return
	}
	if sc.BodyVelocity, err = readVec3(v, "start.velocity"); err != nil {
		return
	}
	if sc.Controller, err = readController(v); err != nil {
		return
	}

	sc.StartDT = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC) // J2000, for lack of a better epoch.
	if v.IsSet("flight.start") {
		sc.StartDT = v.GetTime("flight.start")
	}
	sc.Ticks = v.GetUint64("flight.ticks")
	sc.Export = ExportConfig{
		Filename:  v.GetString("export.filename"),
		OutputDir: v.GetString("export.dir"),
		AsCSV:     v.GetBool("export.csv"),
		AsMsgpack: v.GetBool("export.msgpack"),
		Timestamp: v.GetBool("export.timestamp"),
		Every:     v.GetUint64("export.every"),
	}
	sc.LogFile = v.GetString("log.file")
	sc.LogMaxSize = v.GetInt("log.max_size")
	return
}

func readVec3(v *viper.Viper, key string) (Vec3, error) {
	var vals []float64
	if err := v.UnmarshalKey(key, &vals); err != nil {
		return Vec3{}, fmt.Errorf("%s: %w", key, err)
	}
	if len(vals) != 3 {
		return Vec3{}, fmt.Errorf("%s: expected 3 components, got %d", key, len(vals))
	}
	return Vec3{vals[0], vals[1], vals[2]}, nil
}

func readController(v *viper.Viper) (DescribedController, error) {
	switch law := v.GetString("control.law"); law {
	case "hold":
		return NewHold(Command{v.GetFloat64("control.throttle"), v.GetFloat64("control.roll"), v.GetFloat64("control.pitch"), v.GetFloat64("control.yaw")}), nil
	case "schedule":
		var confs []segmentConf
		if err := v.UnmarshalKey("control.segments", &confs); err != nil {
			return nil, fmt.Errorf("control.segments: %w", err)
		}
		segs := make([]Segment, len(confs))
		for i, c := range confs {
			segs[i] = Segment{c.From, Command{c.Throttle, c.Roll, c.Pitch, c.Yaw}}
		}
		return NewSchedule(segs), nil
	case "heading":
		target, err := readVec3(v, "control.target")
		if err != nil {
			return nil, err
		}
		cl := NewHeadingHold(target, v.GetFloat64("control.throttle"))
		if v.IsSet("control.gain") {
			cl.Kyaw = v.GetFloat64("control.gain")
			cl.Kroll = cl.Kyaw
			cl.Kpitch = cl.Kyaw
		}
		if v.IsSet("control.max_rate") {
			cl.MaxRate = v.GetFloat64("control.max_rate")
		}
		return cl, nil
	case "route":
		var confs []waypointConf
		if err := v.UnmarshalKey("control.waypoints", &confs); err != nil {
			return nil, fmt.Errorf("control.waypoints: %w", err)
		}
		wps := make([]Waypoint, len(confs))
		for i, c := range confs {
			switch c.Kind {
			case "fly_to":
				if len(c.Target) < 2 {
					return nil, fmt.Errorf("control.waypoints[%d]: target needs x and y", i)
				}
				wps[i] = NewFlyTo(Vec3{c.Target[0], c.Target[1], 0}, c.Radius, c.Throttle)
			case "loiter":
				wps[i] = NewLoiter(c.Ticks, Command{c.Throttle, c.Roll, c.Pitch, c.Yaw})
			default:
				return nil, fmt.Errorf("control.waypoints[%d]: unknown kind `%s`", i, c.Kind)
			}
		}
		return NewRoute(wps...), nil
	default:
		return nil, fmt.Errorf("unknown control law `%s`", law)
	}
}

// NewAircraft returns the aircraft of this scenario.
func (sc Scenario) NewAircraft() *Aircraft {
	return NewCustomAircraft(sc.Start, sc.BodyVelocity, sc.Params)
}
