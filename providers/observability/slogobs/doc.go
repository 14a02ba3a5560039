// Package slogobs implements observability.Provider on top of log/slog.
//
// Spans, counters and histograms are all rendered as structured log records,
// which keeps the CLI free of any collector while still exposing per-call
// timing. [New] builds an Observer from functional options; when none are
// given the format and level come from LPP_LOG_FORMAT / LPP_LOG_LEVEL (or the
// unprefixed LOG_FORMAT / LOG_LEVEL).
package slogobs
