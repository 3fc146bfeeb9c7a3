package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
	ErrorTypeExternal     ErrorType = "EXTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed   ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidRequestBody ErrorCode = "INVALID_REQUEST_BODY"
	ErrCodeMissingIdentifier  ErrorCode = "MISSING_IDENTIFIER"
	ErrCodeMissingFields      ErrorCode = "MISSING_FIELDS"
	ErrCodeInvalidCompany     ErrorCode = "INVALID_COMPANY"
	ErrCodeInvalidStatus      ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidRole        ErrorCode = "INVALID_ROLE"
	ErrCodeNothingToUpdate    ErrorCode = "NOTHING_TO_UPDATE"
	ErrCodeRoleRequiresActive ErrorCode = "ROLE_REQUIRES_ACTIVE"
	ErrCodeInvalidAction      ErrorCode = "INVALID_ACTION"
	ErrCodeInvalidQuantity    ErrorCode = "INVALID_QUANTITY"
	ErrCodeUnknownProduct     ErrorCode = "UNKNOWN_PRODUCT"
	ErrCodeEmptyQuote         ErrorCode = "EMPTY_QUOTE"

	ErrCodeAccountNotFound ErrorCode = "ACCOUNT_NOT_FOUND"
	ErrCodeStaffNotFound   ErrorCode = "STAFF_NOT_FOUND"

	ErrCodeNotAuthenticated ErrorCode = "NOT_AUTHENTICATED"
	ErrCodeAccountPending   ErrorCode = "ACCOUNT_PENDING"
	ErrCodeAccountInactive  ErrorCode = "ACCOUNT_INACTIVE"
	ErrCodeAdminOnly        ErrorCode = "ADMIN_ONLY"

	ErrCodeEmailTaken ErrorCode = "EMAIL_TAKEN"
	ErrCodePhoneTaken ErrorCode = "PHONE_TAKEN"

	ErrCodeRegistrationFailed ErrorCode = "REGISTRATION_FAILED"
	ErrCodeCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			messages := make([]string, len(validationErrors.Errors))
			for i, err := range validationErrors.Errors {
				messages[i] = err.Message
			}
			return strings.Join(messages, "; ")
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCause returns a copy carrying cause, so shared sentinels are never mutated.
func (e *AppError) WithCause(cause error) *AppError {
	cp := *e
	cp.Cause = cause
	return &cp
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// Is matches on error code so wrapped copies of a sentinel still compare equal.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Type == t.Type
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// NewExternalError reports a failed upstream dependency (database, spreadsheet).
func NewExternalError(message string, code ErrorCode, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeExternal,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// User-facing messages are Thai; the staff using the portal read nothing else.
const (
	MsgGenericFailure     = "เกิดข้อผิดพลาด"
	MsgInvalidRequestBody = "ข้อมูลไม่ถูกต้อง"
)

var (
	ErrMissingIdentifier = NewValidationError("กรุณากรอกอีเมลหรือเบอร์โทร", ErrCodeMissingIdentifier)
	ErrMissingFields     = NewValidationError("กรุณากรอกข้อมูลให้ครบ", ErrCodeMissingFields)
	ErrInvalidCompany    = NewValidationError("บริษัทไม่ถูกต้อง", ErrCodeInvalidCompany)
	ErrInvalidStatus     = NewValidationError("สถานะไม่ถูกต้อง", ErrCodeInvalidStatus)
	ErrInvalidRole       = NewValidationError("สิทธิ์ไม่ถูกต้อง", ErrCodeInvalidRole)
	ErrNothingToUpdate   = NewValidationError("ไม่มีข้อมูลที่จะอัปเดต", ErrCodeNothingToUpdate)
	ErrRoleNeedsActive   = NewValidationError("เปลี่ยนสิทธิ์ได้เฉพาะบัญชีที่ใช้งานอยู่", ErrCodeRoleRequiresActive)
	ErrInvalidAction     = NewValidationError("ประเภทกิจกรรมไม่ถูกต้อง", ErrCodeInvalidAction)
	ErrInvalidBody       = NewValidationError(MsgInvalidRequestBody, ErrCodeInvalidRequestBody)
	ErrEmptyQuote        = NewValidationError("ยังไม่มีสินค้าในรายการ", ErrCodeEmptyQuote)
	ErrInvalidQuantity   = NewValidationError("จำนวนสินค้าไม่ถูกต้อง", ErrCodeInvalidQuantity)
	ErrUnknownProduct    = NewValidationError("ไม่พบสินค้านี้ในรายการราคา", ErrCodeUnknownProduct)

	ErrAccountNotFound = NewNotFoundError("ไม่พบบัญชีนี้ในระบบ", ErrCodeAccountNotFound)
	ErrStaffNotFound   = NewNotFoundError("ไม่พบพนักงาน", ErrCodeStaffNotFound)

	ErrNotAuthenticated = NewUnauthorizedError("ไม่ได้เข้าสู่ระบบ", ErrCodeNotAuthenticated)
	ErrAccountPending   = NewForbiddenError("บัญชีรออนุมัติจาก admin", ErrCodeAccountPending)
	ErrAccountInactive  = NewForbiddenError("บัญชีถูกปิดใช้งาน", ErrCodeAccountInactive)
	ErrAdminOnly        = NewForbiddenError("เฉพาะผู้ดูแลระบบเท่านั้น", ErrCodeAdminOnly)

	ErrEmailTaken = NewConflictError("อีเมลนี้ถูกใช้แล้ว", ErrCodeEmailTaken)
	ErrPhoneTaken = NewConflictError("เบอร์โทรนี้ถูกใช้แล้ว", ErrCodePhoneTaken)

	ErrRegistrationFailed = NewExternalError("ไม่สามารถสมัครได้ กรุณาลองใหม่", ErrCodeRegistrationFailed, nil)
	ErrCatalogUnavailable = NewExternalError("ไม่สามารถโหลดข้อมูลสินค้าได้", ErrCodeCatalogUnavailable, nil)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
