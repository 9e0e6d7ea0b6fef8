package shared

// DomainError is an error the API can translate into a stable
// machine-readable code. Sentinels below are compared by identity
// with errors.Is.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError builds a DomainError with the given code
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Sentinel errors shared across aggregates
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Sentinel errors specific to inventory and subscription rules
var (
	ErrQuotaExceeded    = NewDomainError("QUOTA_EXCEEDED", "Subscription plan quota exceeded")
	ErrDuplicateBarcode = NewDomainError("DUPLICATE_BARCODE", "Barcode is already registered to another product")
	ErrProtectedDelete  = NewDomainError("PROTECTED_DELETE", "Resource has dependent records and cannot be deleted")
)
