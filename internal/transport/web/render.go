// Package web renders the survey page from a session snapshot.
package web

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"audiosurvey/internal/model"
	"audiosurvey/internal/survey"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders the survey page and its body
type Renderer struct {
	tmpl      *template.Template
	questions []model.Question
}

// NewRenderer parses the embedded templates for the given catalog
func NewRenderer(questions []model.Question) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl, questions: questions}, nil
}

type questionView struct {
	model.Question
	Number     int
	IsRating   bool
	Playing    bool
	Selected   int
	Transcript string
	Scale      []int
}

type pageData struct {
	SessionID string
	Token     string
	Total     int
	Answered  int
	Complete  bool
	Submitted bool
	Questions []questionView
}

var scale = []int{1, 2, 3, 4, 5}

func (r *Renderer) data(snap survey.Snapshot) pageData {
	d := pageData{
		SessionID: snap.SessionID,
		Total:     len(r.questions),
		Answered:  snap.Answered,
		Complete:  snap.Complete,
		Submitted: snap.Submitted,
	}
	if snap.Submitted {
		return d
	}

	d.Questions = make([]questionView, len(r.questions))
	for i, q := range r.questions {
		qv := questionView{
			Question: q,
			Number:   i + 1,
			IsRating: q.Type.IsRating(),
			Playing:  snap.PlayingID == q.ID,
			Scale:    scale,
		}
		if a, ok := snap.Answers[q.ID]; ok {
			qv.Selected = a.Rating
			qv.Transcript = a.Text
		}
		d.Questions[i] = qv
	}
	return d
}

// RenderSurvey renders the part of the page that changes with state
func (r *Renderer) RenderSurvey(snap survey.Snapshot) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "survey", r.data(snap)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderPage renders the full document for a session
func (r *Renderer) RenderPage(w io.Writer, snap survey.Snapshot, token string) error {
	d := r.data(snap)
	d.Token = token
	return r.tmpl.ExecuteTemplate(w, "page", d)
}
