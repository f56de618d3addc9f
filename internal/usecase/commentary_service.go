package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/riskibarqy/season-engine/internal/domain/commentary"
	"github.com/riskibarqy/season-engine/internal/platform/logging"
)

type CommentaryStatus string

const (
	CommentaryNone     CommentaryStatus = "none"
	CommentaryPending  CommentaryStatus = "pending"
	CommentaryReady    CommentaryStatus = "ready"
	CommentaryFallback CommentaryStatus = "fallback"
)

type CommentaryConfig struct {
	Enabled bool
	Timeout time.Duration
}

// CommentaryService wraps the text generator so that no failure of it
// ever reaches the caller: every path ends in some text.
type CommentaryService struct {
	generator commentary.Generator
	cfg       CommentaryConfig
	logger    *logging.Logger
}

func NewCommentaryService(generator commentary.Generator, cfg CommentaryConfig, logger *logging.Logger) *CommentaryService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if generator == nil {
		cfg.Enabled = false
	}
	return &CommentaryService{
		generator: generator,
		cfg:       cfg,
		logger:    logger,
	}
}

// MatchRecap returns a post-match recap or a fallback text.
func (s *CommentaryService) MatchRecap(ctx context.Context, summary commentary.MatchSummary) (string, CommentaryStatus) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CommentaryService.MatchRecap")
	defer span.End()

	if !s.cfg.Enabled {
		return commentary.FallbackNotConfigured, CommentaryFallback
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	text, err := s.generator.MatchCommentary(ctx, summary)
	switch {
	case errors.Is(err, commentary.ErrNotConfigured):
		return commentary.FallbackNotConfigured, CommentaryFallback
	case err != nil:
		s.logger.WarnContext(ctx, "match commentary failed", "error", err)
		return commentary.FallbackMatch, CommentaryFallback
	case strings.TrimSpace(text) == "":
		return commentary.FallbackMatch, CommentaryFallback
	}
	return text, CommentaryReady
}

// ScoutReport returns an assessment of a player profile. ok is false when
// the fallback text was used.
func (s *CommentaryService) ScoutReport(ctx context.Context, profile string) (text string, ok bool) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CommentaryService.ScoutReport")
	defer span.End()

	if !s.cfg.Enabled {
		return commentary.FallbackScout, false
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	text, err := s.generator.ScoutReport(ctx, profile)
	if err != nil {
		if !errors.Is(err, commentary.ErrNotConfigured) {
			s.logger.WarnContext(ctx, "scout report failed", "error", err)
		}
		return commentary.FallbackScout, false
	}
	if strings.TrimSpace(text) == "" {
		return commentary.FallbackScout, false
	}
	return text, true
}
