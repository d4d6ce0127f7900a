package state

import (
	"time"

	"github.com/matzehuels/weeks/pkg/grid"
	"github.com/matzehuels/weeks/pkg/share"
	"github.com/matzehuels/weeks/pkg/weeks"
)

// Event is a discrete input to [Reduce].
type Event interface {
	event()
}

// Loaded restores state from a URL query on startup.
type Loaded struct {
	Query string
	Now   time.Time
}

// DateEntered carries raw date input (ISO date or empty).
type DateEntered struct {
	Value string
	Now   time.Time
}

// Visualize switches to the grid if a valid date is present.
type Visualize struct {
	Now time.Time
}

// Back returns to the intake view.
type Back struct{}

// LanguageToggled switches between the supported languages.
type LanguageToggled struct{}

// ViewportResized reports a new viewport size.
type ViewportResized struct {
	Box grid.Box
}

// ContainerMeasured reports a new measured container size.
type ContainerMeasured struct {
	Box grid.Box
}

// CopyFinished reports the outcome of a copy-to-clipboard action.
type CopyFinished struct {
	Err error
	Now time.Time
}

// Tick advances the clock: expired copy statuses revert to idle and the
// weeks lived follow the calendar.
type Tick struct {
	Now time.Time
}

func (Loaded) event()            {}
func (DateEntered) event()       {}
func (Visualize) event()         {}
func (Back) event()              {}
func (LanguageToggled) event()   {}
func (ViewportResized) event()   {}
func (ContainerMeasured) event() {}
func (CopyFinished) event()      {}
func (Tick) event()              {}

// Reduce returns the state that follows s after e. Unknown events leave s
// unchanged.
func Reduce(s State, e Event) State {
	switch e := e.(type) {
	case Loaded:
		return s.load(e)
	case DateEntered:
		return s.enterDate(e.Value, e.Now)
	case Visualize:
		if !s.CanVisualize() {
			return s
		}
		s.Lived = s.elapsed(e.Now)
		s.View = Visualization
	case Back:
		s.View = Intake
	case LanguageToggled:
		s.Language = s.Language.Toggle()
	case ViewportResized:
		s.Viewport = e.Box
	case ContainerMeasured:
		s.Container = e.Box
	case CopyFinished:
		s.Copy = CopyCopied
		if e.Err != nil {
			s.Copy = CopyFailed
		}
		s.CopyUntil = e.Now.Add(CopyStatusDuration)
	case Tick:
		if s.Copy != CopyIdle && !e.Now.Before(s.CopyUntil) {
			s.Copy, s.CopyUntil = CopyIdle, time.Time{}
		}
		if s.View == Visualization && s.BirthDate != "" {
			s.Lived = s.elapsed(e.Now)
		}
	}
	return s
}

func (s State) load(e Loaded) State {
	st, _ := share.ParseQuery(e.Query, s.Language)
	s.Language = st.Language
	if st.BirthDate == "" {
		return s
	}

	s = s.enterDate(st.BirthDate, e.Now)
	if !s.CanVisualize() {
		s.View = Intake
		return s
	}
	s.Lived = s.elapsed(e.Now)
	s.View = Visualization
	return s
}

func (s State) enterDate(value string, now time.Time) State {
	if value == "" {
		s.BirthDate, s.DateError = "", nil
		return s
	}
	if err := weeks.ValidateBirthDate(value, now); err != nil {
		s.BirthDate, s.DateError = "", err
		return s
	}
	s.BirthDate, s.DateError = value, nil
	return s
}

func (s State) elapsed(now time.Time) int {
	total := s.Total
	if total <= 0 {
		total = weeks.Total
	}
	lived, err := weeks.ElapsedSince(s.BirthDate, now, total)
	if err != nil {
		return 0
	}
	return lived
}
