package validate

import "github.com/dmitrijs2005/caseadmin/internal/client/models"

func Client(c models.Client) error {
	e := Errors{}
	required(e, "name", "Name", c.Name)
	required(e, "email", "Email", c.Email)
	email(e, "email", c.Email)
	required(e, "phoneNumber", "Phone Number", c.PhoneNumber)
	phone(e, "phoneNumber", c.PhoneNumber)
	if c.ZipCode != "" && (!Digits(c.ZipCode) || len(c.ZipCode) != 5) {
		e.Add("zipCode", "Zip Code must be 5 digits")
	}
	comments(e, c.Base)
	return e.Err()
}

func Court(c models.Court) error {
	e := Errors{}
	required(e, "name", "Name", c.Name)
	phone(e, "phoneNumber", c.PhoneNumber)
	comments(e, c.Base)
	return e.Err()
}

func Judge(j models.Judge) error {
	e := Errors{}
	required(e, "name", "Name", j.Name)
	requiredID(e, "courtId", "Court", j.CourtID)
	comments(e, j.Base)
	return e.Err()
}

func CourtCase(c models.CourtCase) error {
	e := Errors{}
	requiredID(e, "clientId", "Client", c.ClientID)
	requiredID(e, "caseTypeId", "Case Type", c.CaseTypeID)
	comments(e, c.Base)
	return e.Err()
}

func HearingCalendar(h models.HearingCalendar) error {
	e := Errors{}
	if h.HearingDate == nil {
		e.Add("hearingDate", "Hearing Date is required")
	}
	requiredID(e, "hearingTypeId", "Hearing Type", h.HearingTypeID)
	requiredID(e, "courtCaseId", "Court Case", h.CourtCaseID)
	comments(e, h.Base)
	return e.Err()
}

func TaskCalendar(t models.TaskCalendar) error {
	e := Errors{}
	if t.TaskDate == nil {
		e.Add("taskDate", "Task Date is required")
	}
	requiredID(e, "taskTypeId", "Task Type", t.TaskTypeID)
	requiredID(e, "courtCaseId", "Court Case", t.CourtCaseID)
	comments(e, t.Base)
	return e.Err()
}

func Form(f models.Form) error {
	e := Errors{}
	requiredID(e, "formTypeId", "Form Type", f.FormTypeID)
	requiredID(e, "courtCaseId", "Court Case", f.CourtCaseID)
	if f.SubmitDate != nil && f.ReceiptDate != nil && f.ReceiptDate.Before(*f.SubmitDate) {
		e.Add("receiptDate", "Receipt Date cannot be before Submit Date")
	}
	if f.RFEDate != nil && f.RFESubmitDate != nil && f.RFESubmitDate.Before(*f.RFEDate) {
		e.Add("rfeSubmitDate", "RFE Submit Date cannot be before RFE Date")
	}
	comments(e, f.Base)
	return e.Err()
}

func CaseCollection(c models.CaseCollection) error {
	e := Errors{}
	nonNegative(e, "quoteAmount", "Quote Amount", c.QuoteAmount)
	requiredID(e, "courtCaseId", "Court Case", c.CourtCaseID)
	comments(e, c.Base)
	return e.Err()
}

func CashCollection(c models.CashCollection) error {
	e := Errors{}
	nonNegative(e, "collectedAmount", "Collected Amount", c.CollectedAmount)
	nonNegative(e, "waivedAmount", "Waived Amount", c.WaivedAmount)
	if c.CollectionDate == nil {
		e.Add("collectionDate", "Collection Date is required")
	}
	requiredID(e, "collectionMethodId", "Collection Method", c.CollectionMethodID)
	requiredID(e, "caseCollectionId", "Case Collection", c.CaseCollectionID)
	comments(e, c.Base)
	return e.Err()
}

// AppUser requires a password only for new users.
func AppUser(u models.AppUser) error {
	e := Errors{}
	required(e, "email", "Email", u.Email)
	email(e, "email", u.Email)
	required(e, "fullName", "Full Name", u.FullName)
	if !u.ID.Set() {
		required(e, "password", "Password", u.Password)
	}
	if u.Password != "" && len(u.Password) < 8 {
		e.Add("password", "Password must be at least 8 characters")
	}
	comments(e, u.Base)
	return e.Err()
}

func AppRole(r models.AppRole) error {
	e := Errors{}
	required(e, "name", "Name", r.Name)
	comments(e, r.Base)
	return e.Err()
}

func AppPermission(p models.AppPermission) error {
	e := Errors{}
	required(e, "name", "Name", p.Name)
	comments(e, p.Base)
	return e.Err()
}

func ComponentStatus(c models.ComponentStatus) error {
	e := Errors{}
	required(e, "componentName", "Component Name", c.ComponentName)
	required(e, "statusName", "Status Name", c.StatusName)
	comments(e, c.Base)
	return e.Err()
}

// RefType covers the (name, description) reference tables.
func RefType(r models.RefType) error {
	e := Errors{}
	required(e, "name", "Name", r.Name)
	comments(e, r.Base)
	return e.Err()
}
