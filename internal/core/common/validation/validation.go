package validation

import (
	"strings"

	errors "github.com/vnphone/staff-portal/internal"
)

const (
	MsgRequired   = "จำเป็นต้องกรอก"
	MsgNotAllowed = "ค่าไม่ถูกต้อง"
)

type ValidatorFunc func(value string) *errors.ValidationError

type FieldValidator struct {
	FieldName  string
	Value      string
	Validators []ValidatorFunc
}

// ValidationBuilder collects per-field checks and reports every failing field at once.
type ValidationBuilder struct {
	fields []*FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{fields: make([]*FieldValidator, 0)}
}

func (v *ValidationBuilder) Field(name, value string) *FieldValidator {
	fv := &FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return fv
}

// Required fails on empty or whitespace-only values.
func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value string) *errors.ValidationError {
		if strings.TrimSpace(value) == "" {
			return &errors.ValidationError{Field: fv.FieldName, Message: MsgRequired, Code: "required"}
		}
		return nil
	})
	return fv
}

// OneOf fails unless the value equals one of allowed. Empty values pass; pair with Required.
func (fv *FieldValidator) OneOf(allowed ...string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value string) *errors.ValidationError {
		if value == "" {
			return nil
		}
		for _, a := range allowed {
			if value == a {
				return nil
			}
		}
		return &errors.ValidationError{Field: fv.FieldName, Message: MsgNotAllowed, Code: "not_allowed"}
	})
	return fv
}

func (fv *FieldValidator) Custom(validator ValidatorFunc) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

// Validate returns a copy of base carrying the failing fields as details, or nil.
// Only the first failure of each field is reported.
func (v *ValidationBuilder) Validate(base *errors.AppError) *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			if err := validator(field.Value); err != nil {
				validationErrors = append(validationErrors, *err)
				break
			}
		}
	}

	if len(validationErrors) > 0 {
		return base.WithDetails(errors.ValidationErrors{Errors: validationErrors})
	}
	return nil
}
