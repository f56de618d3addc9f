package usecase

import (
	"errors"

	"github.com/riskibarqy/season-engine/internal/domain/season"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrMatchState            = errors.New("match state conflict")
	ErrSeasonComplete        = season.ErrSeasonComplete
)
