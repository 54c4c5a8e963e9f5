package storage

import "errors"

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrFetchProperties  = errors.New("failed to fetch properties")
	ErrPostNotFound     = errors.New("blog post not found")
	ErrLeadNotFound     = errors.New("lead not found")
	ErrTagNotFound      = errors.New("tag not found")
	ErrBarrioNotFound   = errors.New("barrio not found")
	ErrSlugExists       = errors.New("slug already exists")
	ErrorNoSuchKey      = errors.New("no such key")
)

var (
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileNotFound    = errors.New("file not found")
)
