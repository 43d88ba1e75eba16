// Package models defines the content data model shared by the transport,
// reconciliation and storage layers.
package models

import "time"

// Status is the editorial workflow state of a content item.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Partial is a content item whose non-identity fields are all optional.
// It is the shape of records coming off the wire (any field may be null or
// absent) and of override records (only the fields the user changed are set).
// A nil pointer means "not supplied".
type Partial struct {
	ID               string     `json:"id"`
	Title            *string    `json:"title,omitempty"`
	BodyHTML         *string    `json:"bodyHtml,omitempty"`
	Category         *string    `json:"category,omitempty"`
	State            *string    `json:"state,omitempty"`
	District         *string    `json:"district,omitempty"`
	FeaturedImageURL *string    `json:"featuredImageUrl,omitempty"`
	Status           *Status    `json:"status,omitempty"`
	IsFeatured       *bool      `json:"isFeatured,omitempty"`
	SubmittedAt      *time.Time `json:"submittedAt,omitempty"`
	ApprovedAt       *time.Time `json:"approvedAt,omitempty"`
	SubmittedBy      *string    `json:"submittedByRef,omitempty"`
	ApprovedBy       *string    `json:"approvedByRef,omitempty"`
}

// Item is a fully reconciled content item, the view model handed to callers.
// Every field holds a concrete value; timestamps stay nullable because a
// pending item legitimately has no approval time.
type Item struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	BodyHTML         string     `json:"bodyHtml"`
	Category         string     `json:"category"`
	State            string     `json:"state"`
	District         string     `json:"district"`
	FeaturedImageURL string     `json:"featuredImageUrl"`
	Status           Status     `json:"status"`
	IsFeatured       bool       `json:"isFeatured"`
	SubmittedAt      *time.Time `json:"submittedAt,omitempty"`
	ApprovedAt       *time.Time `json:"approvedAt,omitempty"`
	SubmittedBy      string     `json:"submittedByRef"`
	ApprovedBy       string     `json:"approvedByRef"`
}

// Override is a locally applied, not-yet-confirmed edit for one item.
// The record is singular per id: a new write replaces the stored partial
// wholesale, populated only with the fields being changed at write time.
type Override struct {
	Fields    Partial   `json:"fields"`
	WrittenAt time.Time `json:"writtenAt"`
}

// Draft is the payload of a create or update submission. Attachment bytes
// travel separately from the JSON body and may be stripped by later
// submission steps.
type Draft struct {
	ID               string `json:"id,omitempty"`
	Title            string `json:"title" validate:"required,min=3"`
	BodyHTML         string `json:"bodyHtml" validate:"required"`
	Category         string `json:"category" validate:"required"`
	State            string `json:"state,omitempty"`
	District         string `json:"district,omitempty"`
	AttachmentName   string `json:"-"`
	Attachment       []byte `json:"-"`
}

// HasAttachment reports whether the draft carries binary data that needs the
// extended upload timeout budget.
func (d Draft) HasAttachment() bool {
	return len(d.Attachment) > 0
}
