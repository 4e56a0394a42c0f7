package repository

import "errors"

var (
	ErrTokenNotFound = errors.New("token not found")
	ErrTokenCorrupt  = errors.New("token file is not a valid token")
)
