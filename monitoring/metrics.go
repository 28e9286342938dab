// Package monitoring 记录SCAN结果统计
package monitoring

import (
	"runtime"
	"sync"
	"time"
)

// Outcome SCAN或预测请求的结果类型
type Outcome string

const (
	OutcomeDiseaseIndicated   Outcome = "disease_indicated"
	OutcomeNoDiseaseIndicated Outcome = "no_disease_indicated"
	OutcomeIncompleteInput    Outcome = "incomplete_input"
	OutcomeNumericFormat      Outcome = "numeric_format"
	OutcomeClassifierFailure  Outcome = "classifier_failure"
)

// Outcomes 返回所有结果类型，顺序固定
func Outcomes() []Outcome {
	return []Outcome{
		OutcomeDiseaseIndicated,
		OutcomeNoDiseaseIndicated,
		OutcomeIncompleteInput,
		OutcomeNumericFormat,
		OutcomeClassifierFailure,
	}
}

// Snapshot 某一时刻的统计快照
type Snapshot struct {
	UptimeSeconds float64            `json:"uptime_seconds"`
	Goroutines    int                `json:"goroutines"`
	Outcomes      map[Outcome]uint64 `json:"outcomes"`
	Classified    uint64             `json:"classified"`
	AvgLatencyMs  float64            `json:"avg_latency_ms"`
}

// Collector 结果计数器，可并发使用
type Collector struct {
	mu        sync.RWMutex
	outcomes  map[Outcome]uint64
	latency   time.Duration
	timed     uint64
	startTime time.Time
}

// NewCollector 创建计数器
func NewCollector() *Collector {
	return &Collector{
		outcomes:  make(map[Outcome]uint64),
		startTime: time.Now(),
	}
}

// Record 记录一次结果；elapsed 只对完成分类的请求计入平均耗时
func (c *Collector) Record(outcome Outcome, elapsed time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.outcomes[outcome]++
	if outcome == OutcomeDiseaseIndicated || outcome == OutcomeNoDiseaseIndicated {
		c.latency += elapsed
		c.timed++
	}
}

// Snapshot 返回当前统计
func (c *Collector) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snap := Snapshot{
		UptimeSeconds: time.Since(c.startTime).Seconds(),
		Goroutines:    runtime.NumGoroutine(),
		Outcomes:      make(map[Outcome]uint64, len(c.outcomes)),
		Classified:    c.timed,
	}
	for _, o := range Outcomes() {
		snap.Outcomes[o] = c.outcomes[o]
	}
	if c.timed > 0 {
		snap.AvgLatencyMs = float64(c.latency.Microseconds()) / float64(c.timed) / 1000
	}
	return snap
}
