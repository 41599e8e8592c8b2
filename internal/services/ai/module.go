package ai

import (
	"context"
	"fmt"

	aiAdapter "github.com/bilgisen/natal/internal/adapters/secondary/ai"
	"github.com/bilgisen/natal/internal/ports/service"
)

// Service реализует IAIService поверх клиента генеративной модели
type Service struct {
	client *aiAdapter.Client
}

// New создаёт новый сервис генерации текстов
func New(client *aiAdapter.Client) service.IAIService {
	return &Service{
		client: client,
	}
}

// Generate генерирует текст по промпту с ограничением на длину ответа
func (s *Service) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	text, err := s.client.Generate(ctx, prompt, maxTokens)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	return text, nil
}
