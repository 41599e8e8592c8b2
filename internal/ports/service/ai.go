package service

import "context"

// IAIService интерфейс генеративной модели для текстовых разборов
type IAIService interface {
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}
