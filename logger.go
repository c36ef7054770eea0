package lshindex

import "log/slog"

// logger wraps *slog.Logger with the handful of structured events an
// index emits: a thin domain wrapper over slog rather than scattering
// With() calls through the index logic.
type logger struct {
	l *slog.Logger
}

func newLogger(l *slog.Logger) logger {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	return logger{l: l}
}

func (lg logger) buildStart(nPoints, dimension, l int) {
	lg.l.Debug("lshindex: build start", "points", nPoints, "dimension", dimension, "L", l)
}

func (lg logger) buildDone(nPoints int) {
	lg.l.Info("lshindex: build done", "points", nPoints)
}

func (lg logger) insert(pointID uint32, nPoints int) {
	lg.l.Debug("lshindex: insert", "pointID", pointID, "nPoints", nPoints)
}

func (lg logger) query(candidates, accepted int) {
	lg.l.Debug("lshindex: query", "candidates", candidates, "accepted", accepted)
}

func (lg logger) invalidParameter(reason string) {
	lg.l.Warn("lshindex: invalid parameter", "reason", reason)
}
