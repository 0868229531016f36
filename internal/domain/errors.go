package domain

import "errors"

var (
	ErrFileNotFound = errors.New("file not found")
	ErrJobNotFound  = errors.New("conversion job not found")
	ErrJobExists    = errors.New("conversion job already exists")
	ErrQueueFull    = errors.New("conversion queue is full")
)
