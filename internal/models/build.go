package models

import (
	"strings"
	"time"
)

// BuildStatus is the lifecycle state of a Concourse build
type BuildStatus string

const (
	BuildStatusPending   BuildStatus = "pending"
	BuildStatusStarted   BuildStatus = "started"
	BuildStatusSucceeded BuildStatus = "succeeded"
	BuildStatusFailed    BuildStatus = "failed"
	BuildStatusErrored   BuildStatus = "errored"
	BuildStatusAborted   BuildStatus = "aborted"
	BuildStatusPaused    BuildStatus = "paused"
)

var buildStatuses = []BuildStatus{
	BuildStatusPending,
	BuildStatusStarted,
	BuildStatusSucceeded,
	BuildStatusFailed,
	BuildStatusErrored,
	BuildStatusAborted,
	BuildStatusPaused,
}

// ParseBuildStatus matches s against the known statuses after trimming
// whitespace and lowercasing it.
func ParseBuildStatus(s string) (BuildStatus, bool) {
	normalized := BuildStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, status := range buildStatuses {
		if status == normalized {
			return status, true
		}
	}
	return "", false
}

// Running reports whether a build in this status has not finished yet
func (s BuildStatus) Running() bool {
	return s == BuildStatusPending || s == BuildStatusStarted
}

func (s BuildStatus) String() string {
	return string(s)
}

// Build represents a Concourse build
type Build struct {
	ID           int         `json:"id" yaml:"id"`
	Name         string      `json:"name" yaml:"name"`
	TeamName     string      `json:"team_name" yaml:"team_name"`
	JobName      string      `json:"job_name" yaml:"job_name"`
	Status       BuildStatus `json:"status" yaml:"status"`
	PipelineName string      `json:"pipeline_name" yaml:"pipeline_name"`
	StartTime    *uint64     `json:"start_time,omitempty" yaml:"start_time,omitempty"`
	EndTime      *uint64     `json:"end_time,omitempty" yaml:"end_time,omitempty"`
}

// Started returns the time the build started, if one was recorded
func (b Build) Started() (time.Time, bool) {
	return unixTime(b.StartTime)
}

// Ended returns the time the build finished, if one was recorded
func (b Build) Ended() (time.Time, bool) {
	return unixTime(b.EndTime)
}

// Duration returns how long the build ran. A build without an end time is
// measured up to now. The second value is false when no start time is known.
func (b Build) Duration(now time.Time) (time.Duration, bool) {
	start, ok := b.Started()
	if !ok {
		return 0, false
	}
	end, ok := b.Ended()
	if !ok {
		end = now
	}
	if end.Before(start) {
		return 0, true
	}
	return end.Sub(start), true
}

func unixTime(seconds *uint64) (time.Time, bool) {
	if seconds == nil {
		return time.Time{}, false
	}
	return time.Unix(int64(*seconds), 0), true
}
