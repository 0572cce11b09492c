package survey

import (
	"context"
	"fmt"
	"time"

	"audiosurvey/internal/audio"
	"audiosurvey/internal/model"
	"audiosurvey/internal/sink"

	"github.com/rs/zerolog"
)

// Snapshot is a read-only copy of a view's state
type Snapshot struct {
	SessionID string               `json:"sessionId"`
	Answers   map[int]model.Answer `json:"answers"`
	PlayingID int                  `json:"playingId"`
	Submitted bool                 `json:"submitted"`
	Answered  int                  `json:"answered"`
	Total     int                  `json:"total"`
	Complete  bool                 `json:"complete"`
}

// View owns one session's state, its audio output and the sink its answers go
// to. It is not safe for concurrent use.
type View struct {
	id        string
	questions []model.Question
	index     map[int]model.Question
	state     *State
	player    audio.Player
	sink      sink.Sink
	log       zerolog.Logger
	now       func() time.Time
}

// NewView creates a view over questions and binds it to player's end signal
func NewView(id string, questions []model.Question, player audio.Player, sk sink.Sink, log zerolog.Logger) *View {
	index := make(map[int]model.Question, len(questions))
	for _, q := range questions {
		index[q.ID] = q
	}

	v := &View{
		id:        id,
		questions: questions,
		index:     index,
		state:     NewState(len(questions)),
		player:    player,
		sink:      sk,
		log:       log.With().Str("component", "survey").Str("sessionId", id).Logger(),
		now:       time.Now,
	}
	player.OnEnded(v.PlaybackEnded)
	return v
}

// ID returns the session id the view belongs to
func (v *View) ID() string {
	return v.id
}

// Questions returns the catalog the view renders
func (v *View) Questions() []model.Question {
	return v.questions
}

func (v *View) question(id int) (model.Question, error) {
	q, ok := v.index[id]
	if !ok {
		return model.Question{}, fmt.Errorf("question %d: %w", id, model.ErrUnknownQuestion)
	}
	return q, nil
}

// RecordAnswer stores the answer for question id, replacing any earlier one
func (v *View) RecordAnswer(id int, a model.Answer) error {
	q, err := v.question(id)
	if err != nil {
		return err
	}
	if err := v.state.RecordAnswer(q, a); err != nil {
		return fmt.Errorf("question %d: %w", id, err)
	}
	return nil
}

// TogglePlayback plays question id's clip, or stops it if it is already playing
func (v *View) TogglePlayback(id int) error {
	q, err := v.question(id)
	if err != nil {
		return err
	}
	cmd, err := v.state.Toggle(q)
	if err != nil {
		return err
	}

	switch cmd {
	case StartPlayback:
		if err := v.player.Play(q.AudioPath); err != nil {
			v.log.Warn().Err(err).Int("questionId", id).Msg("play failed")
		}
	case StopPlayback:
		if err := v.player.Stop(); err != nil {
			v.log.Warn().Err(err).Int("questionId", id).Msg("stop failed")
		}
	}
	return nil
}

// PlaybackEnded handles the output's end-of-media signal
func (v *View) PlaybackEnded() {
	v.state.PlaybackEnded()
}

// CanSubmit reports whether every question has been answered
func (v *View) CanSubmit() bool {
	return !v.state.Submitted && v.state.Complete()
}

// Submit closes the survey and hands the answers to the sink. An incomplete
// survey is refused without any change.
func (v *View) Submit(ctx context.Context) error {
	if err := v.state.Submit(); err != nil {
		return err
	}

	sub := &model.Submission{
		SessionID:   v.id,
		Answers:     v.state.Clone().Answers,
		SubmittedAt: v.now(),
	}
	if err := v.sink.Emit(ctx, sub); err != nil {
		v.log.Error().Err(err).Msg("emit submission")
	}
	v.log.Info().Int("answered", len(sub.Answers)).Msg("survey submitted")
	return nil
}

// Restart clears everything and silences the output if a clip is playing
func (v *View) Restart() {
	wasPlaying := v.state.PlayingID != NotPlaying
	v.state.Restart()
	if wasPlaying {
		if err := v.player.Stop(); err != nil {
			v.log.Warn().Err(err).Msg("stop on restart failed")
		}
	}
	v.log.Debug().Msg("survey restarted")
}

func (v *View) Snapshot() Snapshot {
	st := v.state.Clone()
	return Snapshot{
		SessionID: v.id,
		Answers:   st.Answers,
		PlayingID: st.PlayingID,
		Submitted: st.Submitted,
		Answered:  st.Answered(),
		Total:     st.Total,
		Complete:  st.Complete(),
	}
}
