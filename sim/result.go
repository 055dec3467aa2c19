package sim

import (
	"sort"
	"time"

	"github.com/go-faster/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/pretty"
	"go.uber.org/zap"
)

var (
	ErrNoStatevector = errors.New("result has no state vector")
	ErrNoCounts      = errors.New("result has no counts")
)

var jsonIter = jsoniter.ConfigCompatibleWithStandardLibrary

// Counts maps a classical register read-out to the number of shots that produced it.
type Counts map[string]int

func (c Counts) String() string {
	st, err := jsonIter.Marshal(c)
	if err != nil {
		zap.L().Error("Failed to marshal sim.Counts")
		return ""
	}
	return string(st)
}

// Total returns the number of shots recorded.
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Keys returns the outcomes in ascending order.
func (c Counts) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Frequencies returns count/total for every outcome.
func (c Counts) Frequencies() map[string]float64 {
	total := float64(c.Total())
	freqs := make(map[string]float64, len(c))
	if total == 0 {
		return freqs
	}
	for k, v := range c {
		freqs[k] = float64(v) / total
	}
	return freqs
}

// MostFrequent returns the outcome seen most often. Ties go to the smaller key.
func (c Counts) MostFrequent() (string, int) {
	best, bestN := "", -1
	for _, k := range c.Keys() {
		if c[k] > bestN {
			best, bestN = k, c[k]
		}
	}
	if bestN < 0 {
		return "", 0
	}
	return best, bestN
}

// Result is what a finished job hands back.
type Result struct {
	JobID         string             `json:"job_id"`
	Backend       string             `json:"backend"`
	Shots         int                `json:"shots"`
	Seed          uint64             `json:"seed"`
	Counts        Counts             `json:"counts,omitempty"`
	Probabilities map[string]float64 `json:"probabilities,omitempty"`
	ExecutionTime time.Duration      `json:"execution_time"`

	State *StateVector `json:"-"`
}

// Statevector returns the final state of an exact simulation.
func (r *Result) Statevector() (*StateVector, error) {
	if r.State == nil {
		return nil, ErrNoStatevector
	}
	return r.State, nil
}

// GetCounts returns the measurement histogram.
func (r *Result) GetCounts() (Counts, error) {
	if len(r.Counts) == 0 {
		return nil, ErrNoCounts
	}
	return r.Counts, nil
}

func (r *Result) ToString() string {
	st, err := jsonIter.Marshal(r)
	if err != nil {
		zap.L().Error("Failed to marshal sim.Result")
		return ""
	}
	st = pretty.Pretty(st)
	return string(st)
}
