package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"orbit-scheduler/pkg/gemini"
	"orbit-scheduler/pkg/logger"
	"orbit-scheduler/services/scheduler/internal/entity"
)

var ErrEmptyTopic = errors.New("topic must not be empty")

type AssistUseCase interface {
	GenerateCaption(ctx context.Context, provider, topic string) (string, error)
}

type assistUseCase struct {
	gemini *gemini.Client
	logger *logger.Logger
}

func NewAssistUseCase(geminiClient *gemini.Client, log *logger.Logger) AssistUseCase {
	return &assistUseCase{
		gemini: geminiClient,
		logger: log,
	}
}

// GenerateCaption asks the text-completion service for a platform-tailored
// caption. Failures surface to the caller; nothing is persisted.
func (uc *assistUseCase) GenerateCaption(ctx context.Context, provider, topic string) (string, error) {
	if strings.TrimSpace(topic) == "" {
		return "", ErrEmptyTopic
	}

	prov := entity.Provider(strings.ToLower(provider))
	if !prov.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidProvider, provider)
	}

	prompt := fmt.Sprintf(
		"You are a social media expert. Write an engaging post for %s about the following topic: \"%s\". "+
			"Match the platform's tone and length conventions, include relevant hashtags where the platform uses them, "+
			"and return only the post text with no preamble.",
		prov.DisplayName(), topic,
	)

	caption, err := uc.gemini.Complete(ctx, prompt)
	if err != nil {
		uc.logger.Error("Caption generation failed for %s: %v", prov, err)
		return "", fmt.Errorf("failed to generate caption: %w", err)
	}

	return strings.TrimSpace(caption), nil
}
