package service

import (
	"context"
	"fmt"
	"time"

	"audiosurvey/internal/model"
	"audiosurvey/internal/session"
	"audiosurvey/internal/survey"

	"github.com/rs/zerolog"
)

// SurveyService applies participant events to sessions and pushes the
// resulting view to the attached browser
type SurveyService struct {
	store       session.Store
	tokens      *TokenService
	broadcaster Broadcaster
	renderer    Renderer
	log         zerolog.Logger
}

// NewSurveyService creates a new survey service
func NewSurveyService(store session.Store, tokens *TokenService, log zerolog.Logger) *SurveyService {
	return &SurveyService{
		store:  store,
		tokens: tokens,
		log:    log.With().Str("component", "survey_service").Logger(),
	}
}

// SetBroadcaster injects the push channel
func (s *SurveyService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetRenderer injects the HTML renderer used for pushes
func (s *SurveyService) SetRenderer(r Renderer) {
	s.renderer = r
}

// Open starts a new session and issues its token
func (s *SurveyService) Open(ctx context.Context) (*model.SessionCreateResponse, error) {
	sess, err := s.store.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	token, err := s.tokens.Issue(sess.ID)
	if err != nil {
		s.store.Delete(ctx, sess.ID)
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &model.SessionCreateResponse{SessionID: sess.ID, Token: token}, nil
}

// Snapshot returns the state of a session
func (s *SurveyService) Snapshot(ctx context.Context, sessionID string) (survey.Snapshot, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return survey.Snapshot{}, err
	}
	sess.Touch(time.Now())
	return sess.Snapshot(), nil
}

// Attach marks the session as having a browser. It fails for unknown ids.
func (s *SurveyService) Attach(ctx context.Context, sessionID string) error {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	sess.MarkAttached(time.Now())
	return nil
}

// Answer records a response. Ratings re-render the body; text only updates
// progress so the browser keeps focus in the textarea.
func (s *SurveyService) Answer(ctx context.Context, sessionID string, questionID int, a model.Answer) (survey.Snapshot, error) {
	snap, err := s.apply(ctx, sessionID, func(v *survey.View) error {
		return v.RecordAnswer(questionID, a)
	})
	if err != nil {
		return snap, err
	}

	s.push(sessionID, model.MsgProgress, model.ProgressPayload{
		Answered: snap.Answered,
		Total:    snap.Total,
		Complete: snap.Complete,
	})
	if a.Kind == model.AnswerRating {
		s.pushRender(snap)
	}
	return snap, nil
}

// TogglePlayback plays or stops a question's clip. Playback changes only
// flip the play controls, so a transcription being typed is left alone.
func (s *SurveyService) TogglePlayback(ctx context.Context, sessionID string, questionID int) (survey.Snapshot, error) {
	snap, err := s.apply(ctx, sessionID, func(v *survey.View) error {
		return v.TogglePlayback(questionID)
	})
	if err != nil {
		return snap, err
	}
	s.pushPlaying(snap)
	return snap, nil
}

// PlaybackEnded handles the browser's end-of-media report
func (s *SurveyService) PlaybackEnded(ctx context.Context, sessionID string) (survey.Snapshot, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return survey.Snapshot{}, err
	}
	var snap survey.Snapshot
	sess.Do(func(v *survey.View) error {
		sess.Player.Ended()
		snap = v.Snapshot()
		return nil
	})
	s.pushPlaying(snap)
	return snap, nil
}

// Submit closes the survey if every question is answered
func (s *SurveyService) Submit(ctx context.Context, sessionID string) (survey.Snapshot, error) {
	snap, err := s.apply(ctx, sessionID, func(v *survey.View) error {
		return v.Submit(ctx)
	})
	if err != nil {
		return snap, err
	}
	s.pushRender(snap)
	s.push(sessionID, model.MsgScrollTop, nil)
	return snap, nil
}

// Restart clears the session back to an empty survey
func (s *SurveyService) Restart(ctx context.Context, sessionID string) (survey.Snapshot, error) {
	snap, err := s.apply(ctx, sessionID, func(v *survey.View) error {
		v.Restart()
		return nil
	})
	if err != nil {
		return snap, err
	}
	s.pushRender(snap)
	s.push(sessionID, model.MsgScrollTop, nil)
	return snap, nil
}

// Close drops a session once its browser is gone
func (s *SurveyService) Close(ctx context.Context, sessionID string) error {
	if s.broadcaster != nil {
		s.broadcaster.DisconnectSession(sessionID)
	}
	return s.store.Delete(ctx, sessionID)
}

func (s *SurveyService) apply(ctx context.Context, sessionID string, fn func(v *survey.View) error) (survey.Snapshot, error) {
	sess, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return survey.Snapshot{}, err
	}

	var snap survey.Snapshot
	err = sess.Do(func(v *survey.View) error {
		if err := fn(v); err != nil {
			return err
		}
		snap = v.Snapshot()
		return nil
	})
	return snap, err
}

func (s *SurveyService) push(sessionID, msgType string, payload interface{}) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.SendToSession(sessionID, msgType, payload)
}

func (s *SurveyService) pushPlaying(snap survey.Snapshot) {
	s.push(snap.SessionID, model.MsgPlaying, model.PlayingPayload{QuestionID: snap.PlayingID})
}

func (s *SurveyService) pushRender(snap survey.Snapshot) {
	if s.broadcaster == nil || s.renderer == nil {
		return
	}
	html, err := s.renderer.RenderSurvey(snap)
	if err != nil {
		s.log.Error().Err(err).Str("sessionId", snap.SessionID).Msg("render survey")
		return
	}
	s.broadcaster.SendToSession(snap.SessionID, model.MsgRender, model.RenderPayload{HTML: html})
}
