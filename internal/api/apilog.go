package api

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger writes one JSON object per line to the API log file. It is nil
// until InitAPILogger is called; all Log* functions are no-ops while nil.
var Logger *logrus.Logger

var loggerOnce sync.Once

// InitAPILogger opens (or creates) the API log file at logPath. A failure
// leaves logging disabled; requests are unaffected.
func InitAPILogger(logPath string) error {
	var initErr error
	loggerOnce.Do(func() {
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			initErr = fmt.Errorf("api logger: mkdir %s: %w", filepath.Dir(logPath), err)
			return
		}
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			initErr = fmt.Errorf("api logger: open %s: %w", logPath, err)
			return
		}
		l := logrus.New()
		l.SetOutput(f)
		l.SetLevel(logrus.InfoLevel)
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: "ts",
				logrus.FieldKeyMsg:  "event",
			},
		})
		Logger = l
	})
	return initErr
}

// LogRequest records a completed HTTP request (success or API-level error).
func LogRequest(label string, statusCode int, duration time.Duration, attempt int, circState string, reqErr error) {
	if Logger == nil {
		return
	}
	event := "request"
	if attempt > 0 {
		event = "retry"
	}
	entry := Logger.WithFields(logrus.Fields{
		"label":         label,
		"status_code":   statusCode,
		"duration_ms":   duration.Milliseconds(),
		"attempt":       attempt,
		"circuit_state": circState,
	})
	if reqErr != nil {
		entry.WithError(reqErr).Warn(event)
		return
	}
	entry.Info(event)
}

// LogItemSkipped records a list item that could not be decoded.
func LogItemSkipped(label string, index int, err error) {
	if Logger == nil {
		return
	}
	Logger.WithFields(logrus.Fields{
		"label": label,
		"item":  index,
	}).WithError(err).Warn("item_skipped")
}

// LogRateLimitWait records that a request was delayed by the rate limiter.
func LogRateLimitWait(label string, waited time.Duration) {
	if Logger == nil {
		return
	}
	Logger.WithFields(logrus.Fields{
		"label":           label,
		"rate_limited_ms": waited.Milliseconds(),
	}).Info("rate_limit_wait")
}

// LogCircuitStateChange records a circuit breaker state transition.
func LogCircuitStateChange(event, label, fromState, toState string) {
	if Logger == nil {
		return
	}
	Logger.WithFields(logrus.Fields{
		"label":         label,
		"circuit_state": toState,
		"from_state":    fromState,
	}).Warn(event)
}

// LogCircuitRejected records a request rejected because the breaker is open.
func LogCircuitRejected(label string) {
	if Logger == nil {
		return
	}
	Logger.WithFields(logrus.Fields{
		"label":         label,
		"circuit_state": circuitOpen.String(),
	}).WithError(ErrCircuitOpen).Warn("circuit_rejected")
}
