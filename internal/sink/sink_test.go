package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"audiosurvey/internal/model"

	"github.com/rs/zerolog"
)

func TestLogSinkWritesAnswers(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSink(zerolog.New(&buf))

	sub := &model.Submission{
		SessionID: "s1",
		Answers: map[int]model.Answer{
			1: model.TextAnswer("hello"),
			2: model.RatingAnswer(4),
		},
		SubmittedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := s.Emit(context.Background(), sub); err != nil {
		t.Fatalf("emit: %v", err)
	}

	var entry struct {
		SessionID string                 `json:"sessionId"`
		Answered  int                    `json:"answered"`
		Answers   map[string]interface{} `json:"answers"`
		Component string                 `json:"component"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if entry.SessionID != "s1" || entry.Answered != 2 || entry.Component != "sink" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if entry.Answers["1"] != "hello" {
		t.Fatalf("expected text answer, got %v", entry.Answers["1"])
	}
	if entry.Answers["2"] != float64(4) {
		t.Fatalf("expected rating 4, got %v", entry.Answers["2"])
	}
}
