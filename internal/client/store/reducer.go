package store

import "github.com/dmitrijs2005/caseadmin/internal/client/models"

// EntityState is the slice of state kept per entity kind.
type EntityState struct {
	IsCloseModal bool
	Items        any // []T of the kind; nil when invalidated
	Selected     any // T of the kind; nil when unset
	Metadata     *models.RequestMetadata
	Page         *models.ResponseMetadata
}

// Alert is the global banner.
type Alert struct {
	Error   string
	Success string
}

// State is the whole store.
type State struct {
	Entities map[models.Kind]EntityState
	Alert    Alert
	// InFlight counts lifecycles between REQUEST and COMPLETE; the spinner
	// shows while it is positive.
	InFlight int
}

// parents lists, per child kind, the kinds whose selected record embeds the
// child and must be reset when the child is mutated.
var parents = map[models.Kind][]models.Kind{
	models.KindJudge:           {models.KindCourt},
	models.KindCourtCase:       {models.KindClient},
	models.KindHearingCalendar: {models.KindCourtCase},
	models.KindTaskCalendar:    {models.KindCourtCase, models.KindHearingCalendar},
	models.KindForm:            {models.KindCourtCase, models.KindTaskCalendar},
	models.KindCaseCollection:  {models.KindCourtCase},
	models.KindCashCollection:  {models.KindCaseCollection},
	models.KindAppRole:         {models.KindAppUser},
	models.KindAppPermission:   {models.KindAppRole},
}

// Parents returns the kinds invalidated by a mutation of kind.
func Parents(kind models.Kind) []models.Kind {
	return parents[kind]
}

// Reduce is the pure transition function. The input state is not modified.
func Reduce(state State, action Action) State {
	next := State{
		Entities: make(map[models.Kind]EntityState, len(state.Entities)),
		Alert:    state.Alert,
		InFlight: state.InFlight,
	}
	for k, v := range state.Entities {
		next.Entities[k] = v
	}

	switch a := action.(type) {
	case Lifecycle:
		reduceLifecycle(&next, a)
	case SetSelected:
		es := next.Entities[a.Kind]
		es.Selected = a.Record
		next.Entities[a.Kind] = es
	case Unmount:
		es := next.Entities[a.Kind]
		es.Selected = nil
		next.Entities[a.Kind] = es
	case ClearAlert:
		next.Alert = Alert{}
	case Logout:
		return State{Entities: map[models.Kind]EntityState{}}
	}
	return next
}

func reduceLifecycle(next *State, a Lifecycle) {
	es := next.Entities[a.Kind]

	switch a.Phase {
	case PhaseRequest:
		es.IsCloseModal = false
		next.InFlight++
	case PhaseSuccess:
		es.IsCloseModal = true
		if a.Op == models.OpRead {
			es.Items = a.Items
			es.Metadata = a.Metadata
			es.Page = a.Page
			break
		}
		es.Items = nil
		es.Metadata = nil
		es.Page = nil
		es.Selected = nil
		next.Alert = Alert{Success: a.Message}
		for _, p := range parents[a.Kind] {
			ps := next.Entities[p]
			ps.Selected = nil
			next.Entities[p] = ps
		}
	case PhaseFailure:
		next.Alert = Alert{Error: a.Message}
	case PhaseComplete:
		if next.InFlight > 0 {
			next.InFlight--
		}
	}

	next.Entities[a.Kind] = es
}
