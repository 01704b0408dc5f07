package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type Validater interface {
	Validate() map[string]string
}

// ProcessOpinionParams is the request body for processing a court opinion
// directly from its public URL.
type ProcessOpinionParams struct {
	URL      string            `json:"url" validate:"required,url"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// ListDocumentsParams carries pagination for the document listing.
type ListDocumentsParams struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

func Validate(v Validater) map[string]string {
	return v.Validate()
}

func (params *ProcessOpinionParams) Validate() map[string]string {
	return validateStruct(params)
}

func (params *ListDocumentsParams) Validate() map[string]string {
	return validateStruct(params)
}

func validateStruct(s any) map[string]string {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		errs := err.(validator.ValidationErrors)
		errors := make(map[string]string)
		for _, e := range errs {
			errors[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return errors
	}
	return nil
}
