package service

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrEmptyMessage        = errors.New("message is empty")
	ErrTooManyPending      = errors.New("too many replies in flight")
	ErrInvalidVersion      = errors.New("version must be main or local")
	ErrSectionNotFound     = errors.New("section not found")
	ErrUnsupportedFileType = errors.New("only PDF, DOC, DOCX and TXT files are allowed")
	ErrNoFiles             = errors.New("no files provided")
)

// ErrNotStored is returned for content requests when object storage is disabled
var ErrNotStored = errors.New("file content is not stored")
