package models

import (
	"encoding/json"
	"time"
)

// UnsetID marks a record that has not been persisted yet.
const UnsetID ID = -1

// MaxCommentsLength caps free-text comments on the client side.
const MaxCommentsLength = 8888

// ID is a backend-assigned identifier. Non-positive values mean "unset" and
// are dropped from request bodies.
type ID int64

func (id ID) IsZero() bool { return id <= 0 }

func (id ID) Set() bool { return id > 0 }

// Base carries the fields shared by every entity.
type Base struct {
	ID         ID         `json:"id,omitzero"`
	IsDeleted  bool       `json:"isDeleted"`
	Comments   string     `json:"comments,omitempty"`
	CreatedBy  string     `json:"createdBy,omitempty"`
	Created    *time.Time `json:"created,omitempty"`
	ModifiedBy string     `json:"modifiedBy,omitempty"`
	Modified   *time.Time `json:"modified,omitempty"`
}

func (b Base) GetID() ID { return b.ID }

func (b Base) SoftDeleted() bool { return b.IsDeleted }

func (b Base) GetComments() string { return b.Comments }

// Status links a record to its component status row.
type Status struct {
	ComponentStatusID ID                        `json:"componentStatusId,omitzero"`
	ComponentStatus   Relation[ComponentStatus] `json:"componentStatus,omitzero"`
}

// Entity is implemented by every record type handled by the CRUD lifecycle.
type Entity interface {
	GetID() ID
	SoftDeleted() bool
	GetComments() string
	// HasExtra reports whether the nested relations requested with
	// is_include_extra are present on this record.
	HasExtra() bool
}

// AuditEntry is one row of an entity's history trail. Besides the author and
// timestamp it keeps the snapshot of the entity's fields as sent by the
// backend.
type AuditEntry struct {
	ID       ID
	UserName string
	Modified *time.Time
	Fields   map[string]any
}

func (a AuditEntry) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(a.Fields)+3)
	for k, v := range a.Fields {
		m[k] = v
	}
	if a.ID.Set() {
		m["id"] = a.ID
	}
	m["userName"] = a.UserName
	if a.Modified != nil {
		m["modified"] = a.Modified
	}
	return json.Marshal(m)
}

func (a *AuditEntry) UnmarshalJSON(b []byte) error {
	var head struct {
		ID       ID         `json:"id"`
		UserName string     `json:"userName"`
		Modified *time.Time `json:"modified"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return err
	}
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	delete(fields, "id")
	delete(fields, "userName")
	delete(fields, "modified")

	*a = AuditEntry{ID: head.ID, UserName: head.UserName, Modified: head.Modified, Fields: fields}
	return nil
}

// Note is a free-text note attached to an entity.
type Note struct {
	ID       ID         `json:"id,omitzero"`
	UserName string     `json:"userName"`
	Note     string     `json:"note"`
	Modified *time.Time `json:"modified,omitempty"`
}
