package service

import (
	"sync/atomic"
	"time"

	"social-content-service/internal/domain"
)

// Outcome classifies how a single platform generation ended.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFallback Outcome = "fallback"
	OutcomeFailed   Outcome = "failed"
)

// Stats aggregates generation counters. The per-platform map is built once
// at construction and never written afterwards, so all updates are atomic
// adds and no lock is needed.
type Stats struct {
	requests       atomic.Int64
	successful     atomic.Int64
	fallbacks      atomic.Int64
	failed         atomic.Int64
	processingTime atomic.Int64 // nanoseconds

	platforms map[domain.Platform]*platformCounters
}

type platformCounters struct {
	successful atomic.Int64
	fallbacks  atomic.Int64
	failed     atomic.Int64
}

// NewStats creates zeroed counters for every known platform.
func NewStats() *Stats {
	s := &Stats{platforms: make(map[domain.Platform]*platformCounters, len(domain.AllPlatforms))}
	for _, p := range domain.AllPlatforms {
		s.platforms[p] = &platformCounters{}
	}
	return s
}

// RecordRequest counts one generation request (single or batch) and its
// wall time.
func (s *Stats) RecordRequest(d time.Duration) {
	s.requests.Add(1)
	s.processingTime.Add(int64(d))
}

// RecordOutcome counts one platform result.
func (s *Stats) RecordOutcome(p domain.Platform, o Outcome) {
	pc := s.platforms[p]
	switch o {
	case OutcomeSuccess:
		s.successful.Add(1)
		if pc != nil {
			pc.successful.Add(1)
		}
	case OutcomeFallback:
		s.fallbacks.Add(1)
		if pc != nil {
			pc.fallbacks.Add(1)
		}
	default:
		s.failed.Add(1)
		if pc != nil {
			pc.failed.Add(1)
		}
	}
}

// StatsSnapshot is a point-in-time copy of the counters.
type StatsSnapshot struct {
	TotalRequests         int64                             `json:"total_requests"`
	TotalSuccessful       int64                             `json:"total_successful"`
	TotalFallbacks        int64                             `json:"total_fallbacks"`
	TotalFailed           int64                             `json:"total_failed"`
	AverageProcessingTime float64                           `json:"average_processing_seconds"`
	OverallSuccessRate    float64                           `json:"overall_success_rate"`
	Platforms             map[domain.Platform]PlatformStats `json:"platform_performance"`
}

// PlatformStats summarizes one platform. Fallback results count as
// delivered but not as successful.
type PlatformStats struct {
	TotalRequests int64   `json:"total_requests"`
	Successful    int64   `json:"successful"`
	Fallbacks     int64   `json:"fallbacks"`
	Failed        int64   `json:"failed"`
	SuccessRate   float64 `json:"success_rate"`
}

// Snapshot computes averages and rates. Platforms without results are
// omitted.
func (s *Stats) Snapshot() StatsSnapshot {
	snap := StatsSnapshot{
		TotalRequests:   s.requests.Load(),
		TotalSuccessful: s.successful.Load(),
		TotalFallbacks:  s.fallbacks.Load(),
		TotalFailed:     s.failed.Load(),
		Platforms:       make(map[domain.Platform]PlatformStats),
	}

	if snap.TotalRequests > 0 {
		snap.AverageProcessingTime = time.Duration(s.processingTime.Load() / snap.TotalRequests).Seconds()
	}
	if total := snap.TotalSuccessful + snap.TotalFallbacks + snap.TotalFailed; total > 0 {
		snap.OverallSuccessRate = float64(snap.TotalSuccessful) / float64(total)
	}

	for p, pc := range s.platforms {
		ps := PlatformStats{
			Successful: pc.successful.Load(),
			Fallbacks:  pc.fallbacks.Load(),
			Failed:     pc.failed.Load(),
		}
		ps.TotalRequests = ps.Successful + ps.Fallbacks + ps.Failed
		if ps.TotalRequests == 0 {
			continue
		}
		ps.SuccessRate = float64(ps.Successful) / float64(ps.TotalRequests)
		snap.Platforms[p] = ps
	}

	return snap
}
