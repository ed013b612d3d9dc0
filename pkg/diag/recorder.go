package diag

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/younsl/spotbid/pkg/utils"
)

// Recorder is the append-only diagnostics trail for one run. Every
// gateway call, raw result and intermediate structure lands here
// before it is interpreted, so a failed run can be analyzed without a
// live repro. The file is created fresh per run and removed again by
// Close unless the caller asks to keep it.
//
// All methods are no-ops on a nil receiver.
type Recorder struct {
	log  *logrus.Logger
	file *os.File
	path string
}

// NewRecorder creates the per-run log file in dir
func NewRecorder(dir string) (*Recorder, error) {
	f, err := os.CreateTemp(dir, "spotbid-*.log")
	if err != nil {
		return nil, fmt.Errorf("error creating diagnostics log: %w", err)
	}

	log := logrus.New()
	log.SetOutput(f)
	log.SetLevel(logrus.DebugLevel)
	log.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
	})

	return &Recorder{log: log, file: f, path: f.Name()}, nil
}

// Path returns the log file location, surfaced to the operator on failure
func (r *Recorder) Path() string {
	if r == nil {
		return ""
	}
	return r.path
}

// Call records a gateway call and its parameters before it is issued
func (r *Recorder) Call(op string, input interface{}) {
	if r == nil {
		return
	}
	r.log.WithField("op", op).Infof("call %s", render(input))
}

// Result records the raw outcome of a gateway call before interpretation
func (r *Recorder) Result(op string, output interface{}, err error) {
	if r == nil {
		return
	}
	entry := r.log.WithField("op", op)
	if err != nil {
		entry.WithError(err).Error("call failed")
		return
	}
	entry.Infof("result %s", render(output))
}

// Note records an intermediate computed structure
func (r *Recorder) Note(stage string, v interface{}) {
	if r == nil {
		return
	}
	r.log.WithField("stage", stage).Debug(render(v))
}

// Close flushes and closes the log file, removing it unless keep is set
func (r *Recorder) Close(keep bool) error {
	if r == nil {
		return nil
	}
	if err := r.file.Close(); err != nil {
		return err
	}
	if keep {
		return nil
	}
	return os.Remove(r.path)
}

func render(v interface{}) string {
	if v == nil {
		return "{}"
	}
	s, err := utils.FormatJSON(v)
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return s
}
