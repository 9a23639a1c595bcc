package repository

import "errors"

var (
	ErrNotFound = errors.New("note not found")
	ErrDeleted  = errors.New("note is deleted")
)
