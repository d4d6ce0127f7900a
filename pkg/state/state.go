// Package state models the application's UI state as an immutable snapshot
// advanced by a pure reducer.
//
// Every change is an [Event] passed to [Reduce], which returns the next
// [State] without touching the previous one:
//
//	s := state.New(i18n.English, weeks.Total)
//	s = state.Reduce(s, state.Loaded{Query: "?lang=de&date=MjAyMC0wMS0wMQ", Now: now})
//	s = state.Reduce(s, state.ViewportResized{Box: grid.Box{Width: 1280, Height: 800}})
//	layout := s.Layout(weeks.Total, grid.DefaultConstraints())
//
// Time is always carried by the event, so reducing the same events always
// yields the same state.
package state

import (
	"time"

	"github.com/matzehuels/weeks/pkg/grid"
	"github.com/matzehuels/weeks/pkg/i18n"
	"github.com/matzehuels/weeks/pkg/share"
	"github.com/matzehuels/weeks/pkg/weeks"
)

// View is the screen being shown.
type View int

const (
	// Intake asks for a birth date.
	Intake View = iota
	// Visualization shows the grid.
	Visualization
)

func (v View) String() string {
	if v == Visualization {
		return "visualization"
	}
	return "intake"
}

// CopyStatus is the transient result of the last copy-to-clipboard action.
type CopyStatus int

const (
	CopyIdle CopyStatus = iota
	CopyCopied
	CopyFailed
)

// CopyStatusDuration is how long a copy result stays visible.
const CopyStatusDuration = 2 * time.Second

// State is an immutable snapshot of the UI.
type State struct {
	View      View
	Language  i18n.Language
	BirthDate string
	// DateError is the validation error of the last date entry, if any.
	DateError error
	Lived     int
	Total     int

	Viewport  grid.Box
	Container grid.Box

	Copy      CopyStatus
	CopyUntil time.Time
}

// New returns the initial state: intake view, no date.
func New(lang i18n.Language, total int) State {
	if !lang.Valid() {
		lang = i18n.Default
	}
	return State{View: Intake, Language: lang, Total: total}
}

// CanVisualize reports whether the visualize action is enabled.
func (s State) CanVisualize() bool {
	return s.BirthDate != "" && s.DateError == nil
}

// Share returns the shareable part of s. The date is only shared while the
// grid is shown.
func (s State) Share() share.State {
	st := share.State{Language: s.Language}
	if s.View == Visualization && s.BirthDate != "" {
		st.BirthDate = s.BirthDate
	}
	return st
}

// Query returns the URL query that reproduces s.
func (s State) Query() string {
	return s.Share().Query()
}

// ShareURL returns base with the query of s.
func (s State) ShareURL(base string) (string, error) {
	return s.Share().URL(base)
}

// Bounds resolves the layout box from the viewport and the measured container.
func (s State) Bounds(c grid.Constraints) grid.Box {
	return grid.Resolve(s.Viewport, s.Container, c)
}

// Layout computes the grid for itemCount cells in the current bounds.
func (s State) Layout(itemCount int, c grid.Constraints) grid.Result {
	return grid.Compute(itemCount, s.Bounds(c), c)
}

// Remaining returns the weeks still ahead.
func (s State) Remaining() int {
	return weeks.Remaining(s.Lived, s.Total)
}

// Messages returns the message table of the current language.
func (s State) Messages() *i18n.Messages {
	return s.Language.Messages()
}

// ErrorText returns the localized validation message, or "" when the date is
// valid.
func (s State) ErrorText() string {
	if s.DateError == nil {
		return ""
	}
	return s.Messages().DateError
}

// CopyLabel returns the label of the copy action for the current status.
func (s State) CopyLabel() string {
	m := s.Messages()
	switch s.Copy {
	case CopyCopied:
		return m.Copied
	case CopyFailed:
		return m.CopyFailed
	}
	return m.Copy
}
