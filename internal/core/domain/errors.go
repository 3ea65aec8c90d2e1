package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrSessionExpired = errors.New("session expired")
var ErrNetworkUnavailable = errors.New("metro api unreachable")
var ErrNotFound = errors.New("resource not found")
var ErrConflict = errors.New("resource already exists")
