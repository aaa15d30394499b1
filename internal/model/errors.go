package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInUse    = errors.New("still referenced by reservations")

	ErrCourtInUse  = fmt.Errorf("court %w", ErrInUse)
	ErrClientInUse = fmt.Errorf("client %w", ErrInUse)
)
