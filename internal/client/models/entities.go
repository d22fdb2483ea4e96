package models

import "time"

type Client struct {
	Base
	Status
	Name        string               `json:"name"`
	AKA         string               `json:"aka,omitempty"`
	ANumber     string               `json:"aNumber,omitempty"`
	Email       string               `json:"email"`
	PhoneNumber string               `json:"phoneNumber"`
	Address     string               `json:"address,omitempty"`
	City        string               `json:"city,omitempty"`
	State       string               `json:"state,omitempty"`
	ZipCode     string               `json:"zipCode,omitempty"`
	JudgeID     ID                   `json:"judgeId,omitzero"`
	Judge       Relation[Judge]      `json:"judge,omitzero"`
	CourtCases  Relations[CourtCase] `json:"courtCases,omitzero"`
	History     []AuditEntry         `json:"historyClients,omitempty"`
	Notes       []Note               `json:"noteClients,omitempty"`
}

func (c Client) HasExtra() bool { return c.CourtCases.Loaded() }

type Court struct {
	Base
	Status
	Name        string           `json:"name"`
	DHSAddress  string           `json:"dhsAddress,omitempty"`
	Address     string           `json:"address,omitempty"`
	PhoneNumber string           `json:"phoneNumber,omitempty"`
	Judges      Relations[Judge] `json:"judges,omitzero"`
	History     []AuditEntry     `json:"historyCourts,omitempty"`
	Notes       []Note           `json:"noteCourts,omitempty"`
}

func (c Court) HasExtra() bool { return c.Judges.Loaded() }

type Judge struct {
	Base
	Status
	Name    string          `json:"name"`
	Webex   string          `json:"webex,omitempty"`
	CourtID ID              `json:"courtId,omitzero"`
	Court   Relation[Court] `json:"court,omitzero"`
	History []AuditEntry    `json:"historyJudges,omitempty"`
	Notes   []Note          `json:"noteJudges,omitempty"`
}

func (j Judge) HasExtra() bool { return j.Court.Loaded() }

type CourtCase struct {
	Base
	Status
	ClientID         ID                         `json:"clientId,omitzero"`
	CaseTypeID       ID                         `json:"caseTypeId,omitzero"`
	Client           Relation[Client]           `json:"client,omitzero"`
	CaseType         Relation[CaseType]         `json:"caseType,omitzero"`
	HearingCalendars Relations[HearingCalendar] `json:"hearingCalendars,omitzero"`
	TaskCalendars    Relations[TaskCalendar]    `json:"taskCalendars,omitzero"`
	Forms            Relations[Form]            `json:"forms,omitzero"`
	CaseCollections  Relations[CaseCollection]  `json:"caseCollections,omitzero"`
	History          []AuditEntry               `json:"historyCourtCases,omitempty"`
	Notes            []Note                     `json:"noteCourtCases,omitempty"`
}

func (c CourtCase) HasExtra() bool { return c.Client.Loaded() && c.CaseType.Loaded() }

type HearingCalendar struct {
	Base
	Status
	HearingDate   *time.Time              `json:"hearingDate,omitempty"`
	HearingTypeID ID                      `json:"hearingTypeId,omitzero"`
	CourtCaseID   ID                      `json:"courtCaseId,omitzero"`
	JudgeID       ID                      `json:"judgeId,omitzero"`
	HearingType   Relation[HearingType]   `json:"hearingType,omitzero"`
	CourtCase     Relation[CourtCase]     `json:"courtCase,omitzero"`
	TaskCalendars Relations[TaskCalendar] `json:"taskCalendars,omitzero"`
	History       []AuditEntry            `json:"historyHearingCalendars,omitempty"`
	Notes         []Note                  `json:"noteHearingCalendars,omitempty"`
}

func (h HearingCalendar) HasExtra() bool { return h.CourtCase.Loaded() }

type TaskCalendar struct {
	Base
	Status
	TaskDate          *time.Time                `json:"taskDate,omitempty"`
	TaskTypeID        ID                        `json:"taskTypeId,omitzero"`
	CourtCaseID       ID                        `json:"courtCaseId,omitzero"`
	HearingCalendarID ID                        `json:"hearingCalendarId,omitzero"`
	TaskType          Relation[TaskType]        `json:"taskType,omitzero"`
	CourtCase         Relation[CourtCase]       `json:"courtCase,omitzero"`
	HearingCalendar   Relation[HearingCalendar] `json:"hearingCalendar,omitzero"`
	History           []AuditEntry              `json:"historyTaskCalendars,omitempty"`
	Notes             []Note                    `json:"noteTaskCalendars,omitempty"`
}

func (t TaskCalendar) HasExtra() bool { return t.CourtCase.Loaded() }

// Form is a filing submitted for a court case.
type Form struct {
	Base
	Status
	FormTypeID     ID                     `json:"formTypeId,omitzero"`
	CourtCaseID    ID                     `json:"courtCaseId,omitzero"`
	TaskCalendarID ID                     `json:"taskCalendarId,omitzero"`
	SubmitDate     *time.Time             `json:"submitDate,omitempty"`
	ReceiptDate    *time.Time             `json:"receiptDate,omitempty"`
	ReceiptNumber  string                 `json:"receiptNumber,omitempty"`
	PriorityDate   *time.Time             `json:"priorityDate,omitempty"`
	RFEDate        *time.Time             `json:"rfeDate,omitempty"`
	RFESubmitDate  *time.Time             `json:"rfeSubmitDate,omitempty"`
	DecisionDate   *time.Time             `json:"decisionDate,omitempty"`
	FormType       Relation[FilingType]   `json:"formType,omitzero"`
	CourtCase      Relation[CourtCase]    `json:"courtCase,omitzero"`
	TaskCalendar   Relation[TaskCalendar] `json:"taskCalendar,omitzero"`
	History        []AuditEntry           `json:"historyForms,omitempty"`
	Notes          []Note                 `json:"noteForms,omitempty"`
}

func (f Form) HasExtra() bool { return f.CourtCase.Loaded() }

// CaseCollection is the amount quoted for a court case.
type CaseCollection struct {
	Base
	Status
	QuoteAmount     float64                   `json:"quoteAmount"`
	CourtCaseID     ID                        `json:"courtCaseId,omitzero"`
	CourtCase       Relation[CourtCase]       `json:"courtCase,omitzero"`
	CashCollections Relations[CashCollection] `json:"cashCollections,omitzero"`
	History         []AuditEntry              `json:"historyCaseCollections,omitempty"`
	Notes           []Note                    `json:"noteCaseCollections,omitempty"`
}

func (c CaseCollection) HasExtra() bool { return c.CashCollections.Loaded() }

// CashCollection is one payment against a case collection.
type CashCollection struct {
	Base
	Status
	CollectedAmount    float64                    `json:"collectedAmount"`
	WaivedAmount       float64                    `json:"waivedAmount"`
	Memo               string                     `json:"memo,omitempty"`
	CollectionDate     *time.Time                 `json:"collectionDate,omitempty"`
	CollectionMethodID ID                         `json:"collectionMethodId,omitzero"`
	CaseCollectionID   ID                         `json:"caseCollectionId,omitzero"`
	CollectionMethod   Relation[CollectionMethod] `json:"collectionMethod,omitzero"`
	CaseCollection     Relation[CaseCollection]   `json:"caseCollection,omitzero"`
	History            []AuditEntry               `json:"historyCashCollections,omitempty"`
	Notes              []Note                     `json:"noteCashCollections,omitempty"`
}

func (c CashCollection) HasExtra() bool { return c.CaseCollection.Loaded() }

type AppUser struct {
	Base
	Email       string             `json:"email"`
	FullName    string             `json:"fullName"`
	Password    string             `json:"password,omitempty"`
	IsValidated bool               `json:"isValidated"`
	LastLogin   *time.Time         `json:"lastLogin,omitempty"`
	AppRoles    Relations[AppRole] `json:"appRoles,omitzero"`
}

func (u AppUser) HasExtra() bool { return u.AppRoles.Loaded() }

type AppRole struct {
	Base
	Name           string                   `json:"name"`
	Description    string                   `json:"description,omitempty"`
	AppPermissions Relations[AppPermission] `json:"appPermissions,omitzero"`
}

func (r AppRole) HasExtra() bool { return r.AppPermissions.Loaded() }

type AppPermission struct {
	Base
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (AppPermission) HasExtra() bool { return true }

// ComponentStatus is the status row referenced by componentStatusId. Unlike
// the other reference types it is keyed by (componentName, statusName).
type ComponentStatus struct {
	Base
	ComponentName string `json:"componentName"`
	StatusName    string `json:"statusName"`
	IsActive      bool   `json:"isActive"`
}

func (ComponentStatus) HasExtra() bool { return true }

// RefType holds the (name, description) pair shared by the simple
// reference tables.
type RefType struct {
	Base
	Status
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (RefType) HasExtra() bool { return true }

type (
	CaseType         struct{ RefType }
	FilingType       struct{ RefType }
	HearingType      struct{ RefType }
	TaskType         struct{ RefType }
	CollectionMethod struct{ RefType }
)

// Ref returns the shared reference-table fields; it is promoted to every
// type embedding RefType.
func (r RefType) Ref() RefType { return r }

// RefRecord is the flat union of the reference-table layouts: the
// (name, description) pair of the simple tables and the component status
// columns.
type RefRecord struct {
	Base
	ComponentStatusID ID     `json:"componentStatusId,omitzero"`
	Name              string `json:"name,omitempty"`
	Description       string `json:"description,omitempty"`
	ComponentName     string `json:"componentName,omitempty"`
	StatusName        string `json:"statusName,omitempty"`
	IsActive          bool   `json:"isActive,omitempty"`
}
