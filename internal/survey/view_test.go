package survey

import (
	"context"
	"errors"
	"testing"

	"audiosurvey/internal/catalog"
	"audiosurvey/internal/model"

	"github.com/rs/zerolog"
)

type fakePlayer struct {
	played  []string
	stops   int
	onEnded func()
}

func (p *fakePlayer) Play(path string) error {
	p.played = append(p.played, path)
	return nil
}

func (p *fakePlayer) Stop() error {
	p.stops++
	return nil
}

func (p *fakePlayer) OnEnded(fn func()) {
	p.onEnded = fn
}

type fakeSink struct {
	subs []*model.Submission
	err  error
}

func (s *fakeSink) Emit(_ context.Context, sub *model.Submission) error {
	s.subs = append(s.subs, sub)
	return s.err
}

func newTestView() (*View, *fakePlayer, *fakeSink) {
	p := &fakePlayer{}
	sk := &fakeSink{}
	return NewView("s1", catalog.Questions(), p, sk, zerolog.Nop()), p, sk
}

func TestViewRecordAnswerReadBack(t *testing.T) {
	v, _, _ := newTestView()

	if err := v.RecordAnswer(2, model.RatingAnswer(3)); err != nil {
		t.Fatalf("record rating: %v", err)
	}
	if err := v.RecordAnswer(1, model.TextAnswer("hello")); err != nil {
		t.Fatalf("record text: %v", err)
	}

	snap := v.Snapshot()
	if snap.Answers[2].Value() != 3 {
		t.Fatalf("expected 3, got %v", snap.Answers[2].Value())
	}
	if snap.Answers[1].Value() != "hello" {
		t.Fatalf("expected hello, got %v", snap.Answers[1].Value())
	}
	if snap.Answered != 2 || snap.Total != catalog.Size || snap.Complete {
		t.Fatalf("unexpected progress: %+v", snap)
	}
}

func TestViewUnknownQuestion(t *testing.T) {
	v, p, _ := newTestView()

	if err := v.RecordAnswer(31, model.TextAnswer("x")); !errors.Is(err, model.ErrUnknownQuestion) {
		t.Fatalf("expected ErrUnknownQuestion, got %v", err)
	}
	if err := v.TogglePlayback(0); !errors.Is(err, model.ErrUnknownQuestion) {
		t.Fatalf("expected ErrUnknownQuestion, got %v", err)
	}
	if len(p.played) != 0 {
		t.Fatalf("expected no playback")
	}
}

func TestViewPlaybackExclusive(t *testing.T) {
	v, p, _ := newTestView()

	v.TogglePlayback(5)
	v.TogglePlayback(7)
	if v.Snapshot().PlayingID != 7 {
		t.Fatalf("expected 7 playing, got %d", v.Snapshot().PlayingID)
	}
	if len(p.played) != 2 || p.played[1] != "/audio/q7.mp3" {
		t.Fatalf("unexpected plays: %v", p.played)
	}
	if p.stops != 0 {
		t.Fatalf("expected switching without an explicit stop, got %d stops", p.stops)
	}

	v.TogglePlayback(7)
	if v.Snapshot().PlayingID != NotPlaying || p.stops != 1 {
		t.Fatalf("expected stop, got id=%d stops=%d", v.Snapshot().PlayingID, p.stops)
	}
}

func TestViewPlaybackEndedFromPlayer(t *testing.T) {
	v, p, _ := newTestView()

	v.TogglePlayback(5)
	if p.onEnded == nil {
		t.Fatalf("expected view to register an end callback")
	}
	p.onEnded()
	if v.Snapshot().PlayingID != NotPlaying {
		t.Fatalf("expected nothing playing after end of media")
	}
}

func TestViewSubmitIncompleteIsNoop(t *testing.T) {
	v, _, sk := newTestView()
	for id := 1; id < catalog.Size; id++ {
		q, _ := catalog.Lookup(id)
		a := model.TextAnswer("x")
		if q.Type.IsRating() {
			a = model.RatingAnswer(1)
		}
		v.RecordAnswer(id, a)
	}

	if v.CanSubmit() {
		t.Fatalf("expected submit disabled at 29/30")
	}
	if err := v.Submit(context.Background()); !errors.Is(err, model.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if v.Snapshot().Submitted || len(sk.subs) != 0 {
		t.Fatalf("expected no submission")
	}
}

func TestViewEndToEnd(t *testing.T) {
	v, _, sk := newTestView()

	numeric, text := 0, 0
	for _, q := range v.Questions() {
		if q.Type.IsRating() {
			v.RecordAnswer(q.ID, model.RatingAnswer(4))
			numeric++
		} else {
			v.RecordAnswer(q.ID, model.TextAnswer("test"))
			text++
		}
	}
	if numeric != 20 || text != 10 {
		t.Fatalf("expected 20 rating and 10 text questions, got %d and %d", numeric, text)
	}
	if !v.CanSubmit() {
		t.Fatalf("expected submit enabled")
	}

	if err := v.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !v.Snapshot().Submitted {
		t.Fatalf("expected submitted")
	}
	if len(sk.subs) != 1 {
		t.Fatalf("expected one submission, got %d", len(sk.subs))
	}
	sub := sk.subs[0]
	if sub.SessionID != "s1" || len(sub.Answers) != catalog.Size {
		t.Fatalf("unexpected submission: %s with %d answers", sub.SessionID, len(sub.Answers))
	}
	for _, q := range v.Questions() {
		want := interface{}("test")
		if q.Type.IsRating() {
			want = 4
		}
		if got := sub.Answers[q.ID].Value(); got != want {
			t.Fatalf("question %d: expected %v, got %v", q.ID, want, got)
		}
	}
}

func TestViewSubmitSurvivesSinkError(t *testing.T) {
	v, _, sk := newTestView()
	sk.err = errors.New("sink down")
	for _, q := range v.Questions() {
		a := model.TextAnswer("t")
		if q.Type.IsRating() {
			a = model.RatingAnswer(2)
		}
		v.RecordAnswer(q.ID, a)
	}

	if err := v.Submit(context.Background()); err != nil {
		t.Fatalf("expected submit to stand, got %v", err)
	}
	if !v.Snapshot().Submitted {
		t.Fatalf("expected submitted")
	}
}

func TestViewRestartStopsAudio(t *testing.T) {
	v, p, _ := newTestView()
	v.TogglePlayback(3)

	v.Restart()
	if p.stops != 1 {
		t.Fatalf("expected restart to stop playing audio, got %d stops", p.stops)
	}
	if v.Snapshot().PlayingID != NotPlaying {
		t.Fatalf("expected nothing playing")
	}

	v.Restart()
	if p.stops != 1 {
		t.Fatalf("expected no stop when nothing is playing, got %d", p.stops)
	}
}

func TestViewSubmitThenRestart(t *testing.T) {
	v, _, _ := newTestView()
	for _, q := range v.Questions() {
		a := model.TextAnswer("t")
		if q.Type.IsRating() {
			a = model.RatingAnswer(5)
		}
		v.RecordAnswer(q.ID, a)
	}
	v.Submit(context.Background())

	v.Restart()
	snap := v.Snapshot()
	if snap.Submitted || len(snap.Answers) != 0 || v.CanSubmit() {
		t.Fatalf("expected fresh survey after restart, got %+v", snap)
	}
}
