package subscriber

import "errors"

var (
	ErrAlreadyExists = errors.New("subscriber already exists")
	ErrNotFound      = errors.New("subscriber not found")
)
