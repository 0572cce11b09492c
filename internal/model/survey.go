package model

import (
	"strconv"
	"time"
)

// Submission is the payload handed to the submission sink
type Submission struct {
	SessionID   string         `json:"sessionId"`
	Answers     map[int]Answer `json:"answers"`
	SubmittedAt time.Time      `json:"submittedAt"`
}

// Values flattens the answers to question id -> string | int
func (s *Submission) Values() map[string]interface{} {
	out := make(map[string]interface{}, len(s.Answers))
	for id, a := range s.Answers {
		out[strconv.Itoa(id)] = a.Value()
	}
	return out
}
