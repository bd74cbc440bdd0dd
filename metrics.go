package goCred

import "sync/atomic"

// MetricID identifies one engine counter.
type MetricID uint16

const (
	// MetricGenerated counts policy-compliant passwords produced.
	MetricGenerated MetricID = iota
	// MetricAnalyzed counts strength analyses performed.
	MetricAnalyzed
	// MetricStoreSuccess counts credentials stored or rotated.
	MetricStoreSuccess
	// MetricStorePolicyRejected counts store attempts failing structural
	// policy checks.
	MetricStorePolicyRejected
	// MetricStoreReuseRejected counts store attempts rejected for reuse.
	MetricStoreReuseRejected
	// MetricVerifySuccess counts successful verifications.
	MetricVerifySuccess
	// MetricVerifyFailure counts failed verifications.
	MetricVerifyFailure
	// MetricLockout counts credentials crossing the lockout threshold.
	MetricLockout
	// MetricRevoked counts revocations.
	MetricRevoked
	// MetricExpiredPurged counts lazy purges of expired credentials.
	MetricExpiredPurged
	// MetricIntegrityFailure counts records failing authenticated
	// decryption or decoding.
	MetricIntegrityFailure
	// MetricBreachHit counts analyses matching the breach registry.
	MetricBreachHit

	metricCount
)

var metricNames = map[MetricID]string{
	MetricGenerated:           "generated",
	MetricAnalyzed:            "analyzed",
	MetricStoreSuccess:        "store_success",
	MetricStorePolicyRejected: "store_policy_rejected",
	MetricStoreReuseRejected:  "store_reuse_rejected",
	MetricVerifySuccess:       "verify_success",
	MetricVerifyFailure:       "verify_failure",
	MetricLockout:             "lockout",
	MetricRevoked:             "revoked",
	MetricExpiredPurged:       "expired_purged",
	MetricIntegrityFailure:    "integrity_failure",
	MetricBreachHit:           "breach_hit",
}

// String returns the snake_case counter name.
func (id MetricID) String() string {
	if name, ok := metricNames[id]; ok {
		return name
	}
	return "unknown"
}

// Metrics holds the engine's atomic counters.
type Metrics struct {
	counters [metricCount]atomic.Uint64
}

func newMetrics(cfg MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return nil
	}
	return &Metrics{}
}

// Inc adds one to a counter. Safe on a nil receiver (metrics disabled).
func (m *Metrics) Inc(id MetricID) {
	if m == nil || id >= metricCount {
		return
	}
	m.counters[id].Add(1)
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot copies every counter. Safe on a nil receiver.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricCount)}
	if m == nil {
		return snap
	}
	for id := MetricID(0); id < metricCount; id++ {
		snap.Counters[id] = m.counters[id].Load()
	}
	return snap
}
