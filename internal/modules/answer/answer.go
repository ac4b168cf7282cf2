// Package answer calls the configured generative backend with a prompt that
// pins the model to a single resolved document. Everything here is external,
// long-latency work: calls are bounded by the configured timeout and failures
// surface as ErrGeneration, never as a hang.
package answer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gamdel/core/internal/config"
	"go.uber.org/zap"
)

// ErrGeneration wraps any failure or timeout of the answering backend.
var ErrGeneration = errors.New("answer generation failed")

// Answerer is the generative-answering contract consumed by the ask flow.
type Answerer interface {
	Answer(ctx context.Context, docName, docText, question string) (string, error)
}

// Service answers questions through the configured AI provider.
type Service struct {
	provider config.AIProvider
	timeout  time.Duration
	log      *zap.Logger
}

func NewService(provider config.AIProvider, log *zap.Logger) *Service {
	timeout := time.Duration(provider.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{provider: provider, timeout: timeout, log: log}
}

// Answer generates an answer constrained to the given document. The document
// text must already be capped by the caller.
func (s *Service) Answer(ctx context.Context, docName, docText, question string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	systemPrompt := buildSystemPrompt(docName)
	prompt := buildUserPrompt(docText, question)

	start := time.Now()
	text, err := s.call(ctx, systemPrompt, prompt)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: timed out after %s", ErrGeneration, s.timeout)
		}
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	s.log.Debug("answer generated",
		zap.String("doc", docName),
		zap.Duration("latency", time.Since(start)),
	)
	return text, nil
}
