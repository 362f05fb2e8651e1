package file

import "errors"

// MaxFileSize is the upload size limit.
const MaxFileSize = 10 * 1024 * 1024 // 10 MB

var (
	ErrFileNotFound    = errors.New("file not found")
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file size exceeds 10MB limit")
	ErrInvalidMimeType = errors.New("only PDF files are allowed")
)
