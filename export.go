package rcsim

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/vmihailenco/msgpack/v5"
)

// ExportConfig configures the exporting of the flight.
type ExportConfig struct {
	Filename  string
	OutputDir string // Defaults to the working directory.
	AsCSV     bool
	AsMsgpack bool
	Timestamp bool
	Every     uint64 // Only export one state every so many ticks (defaults to every tick).
}

// IsUseless returns whether this config doesn't actually do anything.
func (c ExportConfig) IsUseless() bool {
	return !c.AsCSV && !c.AsMsgpack
}

// path returns the file path of an export; created is only used for timestamped filenames.
func (c ExportConfig) path(kind, ext string, created time.Time) string {
	dir := c.OutputDir
	if dir == "" {
		dir = "."
	}
	filename := c.Filename
	if c.Timestamp {
		t := created
		filename = fmt.Sprintf("%s-%d-%02d-%02dT%02d.%02d.%02d", filename, t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
	}
	return filepath.Join(dir, fmt.Sprintf("%s-%s.%s", kind, filename, ext))
}

var csvHeader = []string{"tick", "jd", "x", "y", "z", "vx", "vy", "vz", "roll", "pitch", "yaw", "thrust"}

// createCSVFile returns a file which requires a defer close statement!
func createCSVFile(conf ExportConfig, created time.Time) (*os.File, error) {
	f, err := os.Create(conf.path("flight", "csv", created))
	if err != nil {
		return nil, err
	}
	// Header
	if _, err := fmt.Fprintf(f, `# Creation date (UTC): %s
# Records are one state every %d tick(s) of %s
#   Time is a UTC Julian date
#   Position in m, velocity in m/s (reference frame)
#   Attitude in radians (unwrapped), thrust in N
`, created.UTC(), conf.every(), TimeStep); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func (c ExportConfig) every() uint64 {
	if c.Every == 0 {
		return 1
	}
	return c.Every
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// CSVRecord returns the CSV record of a state, in the order of the CSV header.
func (s State) CSVRecord() []string {
	record := []string{strconv.FormatUint(s.Tick, 10), strconv.FormatFloat(julian.TimeToJD(s.DT), 'f', 9, 64)}
	for _, v := range [][3]float64{s.Position, s.Velocity, {s.Attitude.Roll, s.Attitude.Pitch, s.Attitude.Yaw}} {
		for _, c := range v {
			record = append(record, formatFloat(c))
		}
	}
	return append(record, formatFloat(s.Thrust))
}

// StreamStates streams the output of the channel to the files of the configuration.
// It returns once the channel is closed, or at the first error.
func StreamStates(conf ExportConfig, stateChan <-chan State) (err error) {
	var (
		csvW *csv.Writer
		mpW  *bufio.Writer
		mpE  *msgpack.Encoder
	)
	created := time.Now()
	if conf.AsCSV {
		fCSV, ferr := createCSVFile(conf, created)
		if ferr != nil {
			return fmt.Errorf("could not create CSV file: %w", ferr)
		}
		defer func() {
			if cerr := fCSV.Close(); err == nil {
				err = cerr
			}
		}()
		csvW = csv.NewWriter(fCSV)
		if err = csvW.Write(csvHeader); err != nil {
			return err
		}
	}
	if conf.AsMsgpack {
		fMP, ferr := os.Create(conf.path("flight", "msgpack", created))
		if ferr != nil {
			return fmt.Errorf("could not create msgpack file: %w", ferr)
		}
		defer func() {
			if cerr := fMP.Close(); err == nil {
				err = cerr
			}
		}()
		mpW = bufio.NewWriter(fMP)
		mpE = msgpack.NewEncoder(mpW)
	}

	every := conf.every()
	for state := range stateChan {
		if state.Tick%every != 0 {
			continue
		}
		if csvW != nil {
			if err := csvW.Write(state.CSVRecord()); err != nil {
				return err
			}
		}
		if mpE != nil {
			if err := mpE.Encode(&state); err != nil {
				return fmt.Errorf("could not encode state %d: %w", state.Tick, err)
			}
		}
	}
	// The channel is closed, hence the flight is over.
	if csvW != nil {
		csvW.Flush()
		if err := csvW.Error(); err != nil {
			return err
		}
	}
	if mpW != nil {
		if err := mpW.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// ReadMsgpackStates reads all the states of a msgpack flight export.
func ReadMsgpackStates(r io.Reader) ([]State, error) {
	dec := msgpack.NewDecoder(bufio.NewReader(r))
	var states []State
	for {
		var st State
		if err := dec.Decode(&st); err != nil {
			if errors.Is(err, io.EOF) {
				return states, nil
			}
			return states, err
		}
		states = append(states, st)
	}
}
