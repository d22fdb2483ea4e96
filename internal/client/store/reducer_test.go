package store

import (
	"testing"

	"github.com/dmitrijs2005/caseadmin/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lc(kind models.Kind, op models.Op, phase Phase) Lifecycle {
	return Lifecycle{Kind: kind, Op: op, Phase: phase}
}

func TestLifecycle_Type(t *testing.T) {
	assert.Equal(t, "CLIENT_CREATE_REQUEST", lc(models.KindClient, models.OpCreate, PhaseRequest).Type())
	assert.Equal(t, "HEARING_CALENDAR_READ_SUCCESS", lc(models.KindHearingCalendar, models.OpRead, PhaseSuccess).Type())
	assert.Equal(t, "SET_SELECTED_JUDGE", SetSelected{Kind: models.KindJudge}.Type())
	assert.Equal(t, "COURT_UNMOUNT", Unmount{Kind: models.KindCourt}.Type())
}

func TestReduce_RequestKeepsModalOpen(t *testing.T) {
	s := State{Entities: map[models.Kind]EntityState{models.KindClient: {IsCloseModal: true}}}

	for _, op := range models.AllOps() {
		next := Reduce(s, lc(models.KindClient, op, PhaseRequest))
		assert.False(t, next.Entities[models.KindClient].IsCloseModal, op.String())
		assert.Equal(t, 1, next.InFlight)
	}
	assert.True(t, s.Entities[models.KindClient].IsCloseModal, "input state must not change")
}

func TestReduce_ReadSuccessReplacesList(t *testing.T) {
	md := &models.RequestMetadata{Page: 1}
	items := []models.Client{{Name: "Jane"}}

	next := Reduce(State{}, Lifecycle{Kind: models.KindClient, Op: models.OpRead, Phase: PhaseSuccess, Items: items, Metadata: md})

	es := next.Entities[models.KindClient]
	assert.True(t, es.IsCloseModal)
	assert.Equal(t, items, es.Items)
	assert.Same(t, md, es.Metadata)
	assert.Empty(t, next.Alert)
}

func TestReduce_MutationSuccessInvalidates(t *testing.T) {
	for _, op := range []models.Op{models.OpCreate, models.OpUpdate, models.OpDelete} {
		t.Run(op.String(), func(t *testing.T) {
			s := State{Entities: map[models.Kind]EntityState{
				models.KindClient: {
					Items:    []models.Client{{Name: "Jane"}},
					Selected: models.Client{Name: "Jane"},
					Metadata: &models.RequestMetadata{},
				},
			}}

			next := Reduce(s, Lifecycle{Kind: models.KindClient, Op: op, Phase: PhaseSuccess, Message: "Client Added Successfully"})

			es := next.Entities[models.KindClient]
			assert.Nil(t, es.Items)
			assert.Nil(t, es.Selected)
			assert.Nil(t, es.Metadata)
			assert.True(t, es.IsCloseModal)
			assert.Equal(t, Alert{Success: "Client Added Successfully"}, next.Alert)
		})
	}
}

func TestReduce_CrossEntityInvalidation(t *testing.T) {
	s := State{Entities: map[models.Kind]EntityState{
		models.KindCourtCase:       {Selected: models.CourtCase{}},
		models.KindHearingCalendar: {Selected: models.HearingCalendar{}},
		models.KindClient:          {Selected: models.Client{}},
	}}

	next := Reduce(s, lc(models.KindTaskCalendar, models.OpUpdate, PhaseSuccess))

	assert.Nil(t, next.Entities[models.KindCourtCase].Selected)
	assert.Nil(t, next.Entities[models.KindHearingCalendar].Selected)
	assert.NotNil(t, next.Entities[models.KindClient].Selected, "unrelated parent keeps its selection")

	next = Reduce(s, lc(models.KindTaskCalendar, models.OpRead, PhaseSuccess))
	assert.NotNil(t, next.Entities[models.KindCourtCase].Selected, "reads never invalidate parents")
}

func TestReduce_FailureAndComplete(t *testing.T) {
	s := Reduce(State{}, lc(models.KindJudge, models.OpCreate, PhaseRequest))
	s = Reduce(s, Lifecycle{Kind: models.KindJudge, Op: models.OpCreate, Phase: PhaseFailure, Message: "Name is required"})
	assert.Equal(t, Alert{Error: "Name is required"}, s.Alert)
	assert.Equal(t, 1, s.InFlight)

	s = Reduce(s, lc(models.KindJudge, models.OpCreate, PhaseComplete))
	assert.Equal(t, 0, s.InFlight)

	s = Reduce(s, lc(models.KindJudge, models.OpCreate, PhaseComplete))
	assert.Equal(t, 0, s.InFlight, "never negative")

	s = Reduce(s, ClearAlert{})
	assert.Empty(t, s.Alert)
}

func TestReduce_SelectUnmountLogout(t *testing.T) {
	s := Reduce(State{}, SetSelected{Kind: models.KindCourt, Record: models.Court{Name: "C"}})
	require.Equal(t, models.Court{Name: "C"}, s.Entities[models.KindCourt].Selected)

	s = Reduce(s, Unmount{Kind: models.KindCourt})
	assert.Nil(t, s.Entities[models.KindCourt].Selected)

	s = Reduce(s, Lifecycle{Kind: models.KindCourt, Op: models.OpRead, Phase: PhaseSuccess, Items: []models.Court{{}}})
	s.Alert = Alert{Error: "x"}
	s = Reduce(s, Logout{})
	assert.Empty(t, s.Entities)
	assert.Empty(t, s.Alert)
}
