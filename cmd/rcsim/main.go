package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	kitlog "github.com/go-kit/kit/log"
	rcsim "github.com/landandair/RC-Autopilot-Sim"
	"gopkg.in/natefinch/lumberjack.v2"
)

// This code effectively only reads the scenario file and flies the aircraft.

const (
	defaultScenario = "~~unset~~"
)

var (
	scenario string
	verbose  bool
)

func init() {
	// Read flags
	flag.StringVar(&scenario, "scenario", defaultScenario, "flight scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "log every status of the flight to stdout")
}

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	sc, err := rcsim.LoadScenario(filepath.Base(scenario), filepath.Dir(scenario))
	if err != nil {
		log.Fatalf("could not load scenario: %s", err)
	}

	var w io.Writer = os.Stdout
	if sc.LogFile != "" {
		lj := &lumberjack.Logger{
			Filename:   sc.LogFile,
			MaxSize:    sc.LogMaxSize, // MB
			MaxBackups: 1,
		}
		defer lj.Close()
		w = lj
		if verbose {
			w = io.MultiWriter(lj, os.Stdout)
		}
	}
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
	logger = kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC, "scenario", scenario)

	if verbose {
		log.Printf("[conf] params: %+v\n", sc.Params)
		log.Printf("[conf] controller: %s (%s)\n", sc.Controller.Type(), sc.Controller.Reason())
		log.Printf("[conf] ticks: %d, export: %+v\n", sc.Ticks, sc.Export)
	}

	ac := sc.NewAircraft()
	flight := rcsim.NewFlight(ac, sc.Controller, sc.StartDT, sc.Ticks, sc.Export, logger)
	ticks, err := flight.Run()
	if err != nil {
		log.Fatalf("flight failed after %d ticks: %s", ticks, err)
	}
	att := ac.Attitude().Degrees()
	fmt.Printf("flew %d ticks (%s)\nposition (m): %+v\nattitude (deg): roll=%.3f pitch=%.3f yaw=%.3f\n",
		ticks, flight.CurrentDT.Sub(flight.StartDT), ac.ReferencePosition(), att.Roll, att.Pitch, att.Yaw)
}
