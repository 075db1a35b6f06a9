package auth

import "unicode/utf8"

// State is the current session. The zero value is the unauthenticated state.
// Token and User are expected to be set together; callers supply both or neither.
type State struct {
	Token string    `json:"token"`
	User  *UserInfo `json:"user"`
}

// Authenticated reports whether a token is present.
func (s State) Authenticated() bool {
	return len(s.Token) > 0
}

// Equal compares two states by value.
func (s State) Equal(other State) bool {
	if s.Token != other.Token {
		return false
	}

	if s.User == nil || other.User == nil {
		return s.User == nil && other.User == nil
	}

	return *s.User == *other.User
}

// copy returns a State that shares no memory with s.
func (s State) copy() State {
	if s.User == nil {
		return State{Token: s.Token}
	}

	user := *s.User
	return State{Token: s.Token, User: &user}
}

// valid reports whether every string survives a JSON round trip unchanged.
func (s State) valid() bool {
	if !utf8.ValidString(s.Token) {
		return false
	}

	if s.User == nil {
		return true
	}

	return utf8.ValidString(s.User.Name) && utf8.ValidString(s.User.Email)
}
