package validate

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/caseadmin/internal/client/models"
	"github.com/dmitrijs2005/caseadmin/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fields(t *testing.T, err error) Errors {
	t.Helper()
	var ve Errors
	require.True(t, errors.As(err, &ve), "want validate.Errors, got %v", err)
	return ve
}

func TestErrors(t *testing.T) {
	e := Errors{}
	assert.NoError(t, e.Err())

	e.Add("name", "Name is required")
	e.Add("email", "Email is required")
	e.Add("name", "ignored")

	err := e.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, "Email is required; Name is required", err.Error())
}

func TestClient(t *testing.T) {
	ok := models.Client{Name: "Jane Doe", Email: "jane@x.com", PhoneNumber: "5551234567"}
	assert.NoError(t, Client(ok))

	tests := []struct {
		name  string
		mut   func(c *models.Client)
		field string
	}{
		{"missing name", func(c *models.Client) { c.Name = " " }, "name"},
		{"bad email", func(c *models.Client) { c.Email = "jane" }, "email"},
		{"short phone", func(c *models.Client) { c.PhoneNumber = "555" }, "phoneNumber"},
		{"alpha phone", func(c *models.Client) { c.PhoneNumber = "555123456a" }, "phoneNumber"},
		{"zip", func(c *models.Client) { c.ZipCode = "1234" }, "zipCode"},
		{"comments", func(c *models.Client) { c.Comments = strings.Repeat("x", models.MaxCommentsLength+1) }, "comments"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ok
			tt.mut(&c)
			assert.Contains(t, fields(t, Client(c)), tt.field)
		})
	}
}

func TestForeignKeysAndDates(t *testing.T) {
	assert.Contains(t, fields(t, Judge(models.Judge{Name: "J"})), "courtId")
	assert.Contains(t, fields(t, HearingCalendar(models.HearingCalendar{})), "hearingDate")
	assert.Contains(t, fields(t, TaskCalendar(models.TaskCalendar{})), "taskTypeId")

	submit := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	receipt := submit.AddDate(0, 0, -1)
	f := models.Form{FormTypeID: 1, CourtCaseID: 2, SubmitDate: &submit, ReceiptDate: &receipt}
	assert.Contains(t, fields(t, Form(f)), "receiptDate")

	assert.Contains(t, fields(t, CashCollection(models.CashCollection{CollectedAmount: -1})), "collectedAmount")
	assert.NoError(t, CaseCollection(models.CaseCollection{QuoteAmount: 100, CourtCaseID: 1}))
}

func TestAppUser_PasswordOnlyOnCreate(t *testing.T) {
	u := models.AppUser{Email: "a@b.co", FullName: "A B"}
	assert.Contains(t, fields(t, AppUser(u)), "password")

	u.ID = 4
	assert.NoError(t, AppUser(u))

	u.Password = "short"
	assert.Contains(t, fields(t, AppUser(u)), "password")
}

func TestRefTables(t *testing.T) {
	assert.Contains(t, fields(t, ComponentStatus(models.ComponentStatus{ComponentName: "CLIENTS"})), "statusName")
	assert.Contains(t, fields(t, RefType(models.RefType{})), "name")
	assert.NoError(t, AppRole(models.AppRole{Name: "admin"}))
	assert.Error(t, AppPermission(models.AppPermission{}))
	assert.NoError(t, Court(models.Court{Name: "C"}))
	assert.Error(t, CourtCase(models.CourtCase{}))
}
