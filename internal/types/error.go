package types

import "fmt"

// CustomError carries an HTTP status and a machine-readable type through
// the Fiber error handler.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// Forbidden builds a 403 CustomError of the given type.
func Forbidden(errorType, format string, args ...any) *CustomError {
	return &CustomError{
		Code:    403,
		Message: fmt.Sprintf(format, args...),
		Type:    errorType,
	}
}
