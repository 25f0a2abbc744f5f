package service

import "errors"

// TokenSource supplies the session token sent with every API request.  An empty token means there is no session.
type TokenSource interface {
	Token() string
}

// ErrNoToken is returned by service calls made without a session token
var ErrNoToken = errors.New("no session token available")
