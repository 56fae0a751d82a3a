// Package answer decides whether a typed answer matches a subject's meanings
// or readings.
package answer

import "fmt"

// NearMatchPolicy decides what happens to an answer that is close to, but
// not exactly, an accepted one.
type NearMatchPolicy int

const (
	Accept NearMatchPolicy = iota
	AcceptNotify
	Retry
	Reject
)

var policyNames = map[NearMatchPolicy]string{
	Accept:       "accept",
	AcceptNotify: "accept_notify",
	Retry:        "retry",
	Reject:       "reject",
}

func (p NearMatchPolicy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("NearMatchPolicy(%d)", int(p))
}

// ParsePolicy parses a policy name as stored in settings.
func ParsePolicy(s string) (NearMatchPolicy, error) {
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}
	return Retry, fmt.Errorf("unknown near match policy %q", s)
}

// Reason explains a retry on a reading question.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonNearMatch        Reason = "near_match"
	ReasonDigraph          Reason = "digraph"
	ReasonWrongReadingType Reason = "wrong_reading_type"
	ReasonNotKana          Reason = "not_kana"
)

// Verdict is the outcome of checking one answer.
type Verdict struct {
	OK        bool     `json:"ok"`
	Retry     bool     `json:"retry"`
	Given     string   `json:"given"`
	Match     string   `json:"match,omitempty"`
	NearMatch bool     `json:"near_match,omitempty"`
	Digraph   *Digraph `json:"digraph,omitempty"`
	Reason    Reason   `json:"reason,omitempty"`
}
