// Package recorder classifies telemetry lines and appends indexed samples to
// per-experiment log files.
package recorder

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"solartap/internal/logger"
	"solartap/internal/models"
)

// Wire prefixes of recordable telemetry. Anything else is display-only.
const (
	tempPrefix = "C: "
	rotPrefix  = "R: "
)

const (
	expDirName = "exp"
	tempFile   = "temp.txt"
	rotFile    = "rot.txt"
	dateLayout = "2006-01-02"
)

// Classify maps a telemetry line to its channel and value text. Lines with
// an unknown prefix or a value that does not parse as the channel's numeric
// type are not recordable. The value is returned as the device framed it so
// the log keeps the firmware's formatting.
func Classify(line string) (models.Channel, string, bool) {
	if v, ok := strings.CutPrefix(line, tempPrefix); ok {
		v = strings.TrimSpace(v)
		if _, err := strconv.ParseFloat(v, 64); err == nil {
			return models.ChannelTemperature, v, true
		}
		return 0, "", false
	}
	if v, ok := strings.CutPrefix(line, rotPrefix); ok {
		v = strings.TrimSpace(v)
		if _, err := strconv.Atoi(v); err == nil {
			return models.ChannelRotation, v, true
		}
		return 0, "", false
	}
	return 0, "", false
}

// Recorder appends samples under <root>/exp/<date>/<experiment id>/.
type Recorder struct {
	root string
	log  *logger.Logger
	now  func() time.Time
}

func New(root string, log *logger.Logger) *Recorder {
	return &Recorder{root: root, log: log, now: time.Now}
}

// Offer records the line against the experiment if it is recordable. A nil
// experiment means no recording is active and nothing is touched. The
// returned error is a recording fault the caller reports and survives.
func (r *Recorder) Offer(line string, exp *models.Experiment) error {
	if exp == nil {
		return nil
	}
	ch, value, ok := Classify(line)
	if !ok {
		return nil
	}
	return r.record(ch, value, exp)
}

// record appends "<index>|<timestamp>|<value>" to the channel file, then
// increments the channel counter. The file is opened and closed per write so
// no handle outlives an iteration; a failed write leaves the counter alone.
func (r *Recorder) record(ch models.Channel, value string, exp *models.Experiment) error {
	now := r.now().UTC()
	dir := r.experimentDir(exp.ID, now)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create sample dir %q: %w", dir, err)
	}

	var counter *uint64
	var name string
	switch ch {
	case models.ChannelTemperature:
		counter, name = &exp.TempSampleCount, tempFile
	case models.ChannelRotation:
		counter, name = &exp.RotSampleCount, rotFile
	default:
		return nil
	}

	sample := models.Sample{
		Index:     *counter,
		Timestamp: now,
		Channel:   ch,
		Value:     value,
	}

	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open sample file %q: %w", path, err)
	}
	_, werr := fmt.Fprintf(f, "%d|%s|%s\n", sample.Index, sample.Timestamp.Format(time.RFC3339), sample.Value)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("append sample to %q: %w", path, werr)
	}
	if cerr != nil {
		return fmt.Errorf("close sample file %q: %w", path, cerr)
	}
	*counter++
	return nil
}

// SeedCounters initializes the experiment's counters from any samples already
// on disk for today, so re-enabling an id continues its index sequence
// instead of restarting at 0 over an append-only file.
func (r *Recorder) SeedCounters(exp *models.Experiment) {
	dir := r.experimentDir(exp.ID, r.now().UTC())
	exp.TempSampleCount = r.countLines(filepath.Join(dir, tempFile))
	exp.RotSampleCount = r.countLines(filepath.Join(dir, rotFile))
}

func (r *Recorder) experimentDir(id int, now time.Time) string {
	return filepath.Join(r.root, expDirName, now.Format(dateLayout), strconv.Itoa(id))
}

func (r *Recorder) countLines(path string) uint64 {
	f, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.Warnw("cannot read prior samples, restarting index at 0", "path", path, "err", err)
		}
		return 0
	}
	defer f.Close()

	var n uint64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		n++
	}
	if err := sc.Err(); err != nil {
		r.log.Warnw("cannot read prior samples, restarting index at 0", "path", path, "err", err)
		return 0
	}
	return n
}
