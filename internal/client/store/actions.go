// Package store holds the client-side state: one slice per entity kind plus
// the global alert and spinner. State changes only by dispatching one of the
// actions declared here through Reduce.
package store

import (
	"fmt"

	"github.com/dmitrijs2005/caseadmin/internal/client/models"
)

// Phase is the step of an action lifecycle.
type Phase uint8

const (
	PhaseRequest Phase = iota + 1
	PhaseSuccess
	PhaseFailure
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseRequest:
		return "REQUEST"
	case PhaseSuccess:
		return "SUCCESS"
	case PhaseFailure:
		return "FAILURE"
	case PhaseComplete:
		return "COMPLETE"
	}
	return fmt.Sprintf("PHASE(%d)", uint8(p))
}

// Action is the closed set of messages the store understands.
type Action interface {
	// Type renders the action name used in logs, e.g. CLIENT_CREATE_REQUEST.
	Type() string
	isAction()
}

// Lifecycle is one step of an entity's CRUD lifecycle.
type Lifecycle struct {
	Kind    models.Kind
	Op      models.Op
	Phase   Phase
	Message string

	// Items, Metadata and Page are set on READ SUCCESS only. Items holds a
	// []T for the kind.
	Items    any
	Metadata *models.RequestMetadata
	Page     *models.ResponseMetadata
}

func (a Lifecycle) Type() string { return fmt.Sprintf("%s_%s_%s", a.Kind, a.Op, a.Phase) }

// SetSelected stores the record shown on a detail view.
type SetSelected struct {
	Kind   models.Kind
	Record any
}

func (a SetSelected) Type() string { return "SET_SELECTED_" + a.Kind.String() }

// Unmount resets the selected record when a view is torn down.
type Unmount struct {
	Kind models.Kind
}

func (a Unmount) Type() string { return a.Kind.String() + "_UNMOUNT" }

type ClearAlert struct{}

func (ClearAlert) Type() string { return "CLEAR_ALERT" }

// Logout resets every slice of state.
type Logout struct{}

func (Logout) Type() string { return "LOGOUT" }

func (Lifecycle) isAction()   {}
func (SetSelected) isAction() {}
func (Unmount) isAction()     {}
func (ClearAlert) isAction()  {}
func (Logout) isAction()      {}
