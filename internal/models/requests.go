package models

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// CreateItemRequest is the caller-facing payload for creating a review item.
// Scheduling fields are not accepted here; they are initialized by the engine.
type CreateItemRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"max=20000"`
}

// Validate checks the request against its declared constraints.
func (r CreateItemRequest) Validate() error {
	return validate.Struct(r)
}

// GradeRequest is the caller-facing payload for grading the current item.
// Quality range is deliberately not constrained here: the calculator owns
// that check and reports InvalidGrade itself.
type GradeRequest struct {
	ItemID  string `json:"item_id" validate:"required,uuid4"`
	Quality int    `json:"quality"`
}

// Validate checks the request against its declared constraints.
func (r GradeRequest) Validate() error {
	return validate.Struct(r)
}
