package usecase

import "errors"

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeLeadNotFound = "LEAD_NOT_FOUND"
	CodeInvalidStage = "INVALID_STAGE"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeStoreError   = "STORE_ERROR"
	CodeDatabase     = "DATABASE_ERROR"
	CodeCacheError   = "CACHE_ERROR"
)

// DomainError é erro de regra de negócio: vira 4xx na borda HTTP.
type DomainError struct {
	Code    string
	Message string
	Fields  []ValidationError
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError é falha de infraestrutura (banco, fila, cache): vira 5xx.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func validationFailed(fields []ValidationError) *DomainError {
	return &DomainError{
		Code:    CodeValidation,
		Message: "dados inválidos",
		Fields:  fields,
	}
}

func storeError(msg string, err error) *TechnicalError {
	return &TechnicalError{Code: CodeStoreError, Message: msg, Err: err}
}
