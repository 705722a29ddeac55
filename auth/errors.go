package auth

import "fmt"

// AuthorizationError indicates a principal lacks permission for an operation.
// It is a client fault: retrying does not help, and callers must not conflate
// it with an internal failure.
type AuthorizationError struct {
	PrincipalID string
	Action      string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("familyforest: principal %s is not authorized to %s", e.PrincipalID, e.Action)
}

// NewAuthorizationError builds an AuthorizationError for the given action.
func NewAuthorizationError(principalID, action string) *AuthorizationError {
	return &AuthorizationError{PrincipalID: principalID, Action: action}
}
