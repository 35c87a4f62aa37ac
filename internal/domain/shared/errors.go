package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound             = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists        = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput         = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState         = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock    = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrInsufficientBalance  = NewDomainError("INSUFFICIENT_BALANCE", "Insufficient balance available")
	ErrLimitExceeded        = NewDomainError("LIMIT_EXCEEDED", "Credit limit exceeded")
	ErrSessionClosed        = NewDomainError("SESSION_CLOSED", "POS session is not open")
	ErrPinInvalid           = NewDomainError("PIN_INVALID", "PIN verification failed")
	ErrPinLocked            = NewDomainError("PIN_LOCKED", "PIN is locked due to repeated failures")
	ErrAccountNotConfigured = NewDomainError("ACCOUNT_NOT_CONFIGURED", "Chart of accounts is missing a required account code")
)
