package web

import (
	"bytes"
	"strings"
	"testing"

	"audiosurvey/internal/catalog"
	"audiosurvey/internal/model"
	"audiosurvey/internal/survey"
)

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(catalog.Questions())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func TestRenderIncompleteDisablesSubmit(t *testing.T) {
	r := newTestRenderer(t)
	html, err := r.RenderSurvey(survey.Snapshot{
		SessionID: "s1",
		Answers:   map[int]model.Answer{1: model.TextAnswer("hello <world>")},
		Answered:  1,
		Total:     catalog.Size,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(html, `id="submit" type="button" disabled`) {
		t.Fatalf("expected disabled submit button")
	}
	if !strings.Contains(html, "Please answer all 30 questions before submitting.") {
		t.Fatalf("expected completeness hint")
	}
	if strings.Count(html, `<section class="q"`) != catalog.Size {
		t.Fatalf("expected %d question sections", catalog.Size)
	}
	if !strings.Contains(html, "hello &lt;world&gt;") {
		t.Fatalf("expected escaped transcript in textarea")
	}
	if strings.Count(html, "<textarea") != 10 {
		t.Fatalf("expected 10 transcription inputs, got %d", strings.Count(html, "<textarea"))
	}
}

func TestRenderHighlightsSelectionAndPlayback(t *testing.T) {
	r := newTestRenderer(t)
	html, err := r.RenderSurvey(survey.Snapshot{
		Answers:   map[int]model.Answer{2: model.RatingAnswer(4)},
		PlayingID: 7,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	if !strings.Contains(html, `data-question="2" data-value="4" class="selected"`) {
		t.Fatalf("expected rating 4 highlighted for question 2")
	}
	if strings.Count(html, `class="selected"`) != 1 {
		t.Fatalf("expected exactly one highlighted rating")
	}
	if !strings.Contains(html, `class="play playing" data-action="toggle" data-question="7"`) {
		t.Fatalf("expected question 7 shown as playing")
	}
	if strings.Count(html, "play playing") != 1 {
		t.Fatalf("expected a single playing control")
	}
}

func TestRenderComplete(t *testing.T) {
	r := newTestRenderer(t)
	html, _ := r.RenderSurvey(survey.Snapshot{Answered: catalog.Size, Total: catalog.Size, Complete: true})

	if strings.Contains(html, `id="submit" type="button" disabled`) {
		t.Fatalf("expected submit enabled")
	}
	if !strings.Contains(html, `class="hint" hidden`) {
		t.Fatalf("expected hint hidden")
	}
}

func TestRenderSubmitted(t *testing.T) {
	r := newTestRenderer(t)
	html, _ := r.RenderSurvey(survey.Snapshot{Submitted: true})

	if !strings.Contains(html, "The survey is now complete.") {
		t.Fatalf("expected completion screen")
	}
	if !strings.Contains(html, `id="restart"`) || !strings.Contains(html, `id="back-to-top"`) {
		t.Fatalf("expected restart and back-to-top controls")
	}
	if strings.Contains(html, `<section class="q"`) {
		t.Fatalf("expected no questions after submission")
	}
}

func TestRenderPageCarriesSession(t *testing.T) {
	r := newTestRenderer(t)
	var buf bytes.Buffer
	if err := r.RenderPage(&buf, survey.Snapshot{SessionID: "abc"}, "tok"); err != nil {
		t.Fatalf("render page: %v", err)
	}

	html := buf.String()
	if !strings.Contains(html, `data-session="abc" data-token="tok"`) {
		t.Fatalf("expected session attributes on body")
	}
	if strings.Count(html, "<audio") != 1 {
		t.Fatalf("expected exactly one audio element")
	}
	if !strings.Contains(html, "a total of 30 questions") {
		t.Fatalf("expected intro copy")
	}
}
