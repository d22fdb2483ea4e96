package actions

import (
	"github.com/dmitrijs2005/caseadmin/internal/client/models"
	"github.com/dmitrijs2005/caseadmin/internal/client/validate"
)

// Set holds one resource per entity kind.
type Set struct {
	Clients           *Resource[models.Client]
	Courts            *Resource[models.Court]
	Judges            *Resource[models.Judge]
	CourtCases        *Resource[models.CourtCase]
	HearingCalendars  *Resource[models.HearingCalendar]
	TaskCalendars     *Resource[models.TaskCalendar]
	Forms             *Resource[models.Form]
	CaseCollections   *Resource[models.CaseCollection]
	CashCollections   *Resource[models.CashCollection]
	AppUsers          *Resource[models.AppUser]
	AppRoles          *Resource[models.AppRole]
	AppPermissions    *Resource[models.AppPermission]
	ComponentStatuses *Resource[models.ComponentStatus]
	CaseTypes         *Resource[models.CaseType]
	FilingTypes       *Resource[models.FilingType]
	HearingTypes      *Resource[models.HearingType]
	TaskTypes         *Resource[models.TaskType]
	CollectionMethods *Resource[models.CollectionMethod]

	byKind map[models.Kind]Untyped
}

func refValidator[T interface{ Ref() models.RefType }](rec T) error {
	return validate.RefType(rec.Ref())
}

// NewSet wires a resource for every kind.
func NewSet(deps Deps) *Set {
	s := &Set{
		Clients:           NewResource(Descriptor[models.Client]{Kind: models.KindClient, Validate: validate.Client}, deps),
		Courts:            NewResource(Descriptor[models.Court]{Kind: models.KindCourt, Validate: validate.Court}, deps),
		Judges:            NewResource(Descriptor[models.Judge]{Kind: models.KindJudge, Validate: validate.Judge}, deps),
		CourtCases:        NewResource(Descriptor[models.CourtCase]{Kind: models.KindCourtCase, Validate: validate.CourtCase}, deps),
		HearingCalendars:  NewResource(Descriptor[models.HearingCalendar]{Kind: models.KindHearingCalendar, Validate: validate.HearingCalendar}, deps),
		TaskCalendars:     NewResource(Descriptor[models.TaskCalendar]{Kind: models.KindTaskCalendar, Validate: validate.TaskCalendar}, deps),
		Forms:             NewResource(Descriptor[models.Form]{Kind: models.KindForm, Validate: validate.Form}, deps),
		CaseCollections:   NewResource(Descriptor[models.CaseCollection]{Kind: models.KindCaseCollection, Validate: validate.CaseCollection}, deps),
		CashCollections:   NewResource(Descriptor[models.CashCollection]{Kind: models.KindCashCollection, Validate: validate.CashCollection}, deps),
		AppUsers:          NewResource(Descriptor[models.AppUser]{Kind: models.KindAppUser, Validate: validate.AppUser}, deps),
		AppRoles:          NewResource(Descriptor[models.AppRole]{Kind: models.KindAppRole, Validate: validate.AppRole}, deps),
		AppPermissions:    NewResource(Descriptor[models.AppPermission]{Kind: models.KindAppPermission, Validate: validate.AppPermission}, deps),
		ComponentStatuses: NewResource(Descriptor[models.ComponentStatus]{Kind: models.KindComponentStatus, Validate: validate.ComponentStatus}, deps),
		CaseTypes:         NewResource(Descriptor[models.CaseType]{Kind: models.KindCaseType, Validate: refValidator[models.CaseType]}, deps),
		FilingTypes:       NewResource(Descriptor[models.FilingType]{Kind: models.KindFilingType, Validate: refValidator[models.FilingType]}, deps),
		HearingTypes:      NewResource(Descriptor[models.HearingType]{Kind: models.KindHearingType, Validate: refValidator[models.HearingType]}, deps),
		TaskTypes:         NewResource(Descriptor[models.TaskType]{Kind: models.KindTaskType, Validate: refValidator[models.TaskType]}, deps),
		CollectionMethods: NewResource(Descriptor[models.CollectionMethod]{Kind: models.KindCollectionMethod, Validate: refValidator[models.CollectionMethod]}, deps),
	}

	s.byKind = make(map[models.Kind]Untyped)
	for _, u := range []Untyped{
		s.Clients, s.Courts, s.Judges, s.CourtCases, s.HearingCalendars, s.TaskCalendars,
		s.Forms, s.CaseCollections, s.CashCollections, s.AppUsers, s.AppRoles, s.AppPermissions,
		s.ComponentStatuses, s.CaseTypes, s.FilingTypes, s.HearingTypes, s.TaskTypes, s.CollectionMethods,
	} {
		s.byKind[u.Kind()] = u
	}
	return s
}

// For returns the kind-erased resource for kind.
func (s *Set) For(kind models.Kind) (Untyped, bool) {
	u, ok := s.byKind[kind]
	return u, ok
}
