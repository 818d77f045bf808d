// Package anthropic реализует вызов диалоговой модели через Anthropic API.
package anthropic

import (
	"context"
	"errors"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/saferoute-assistant/internal/config"
	"github.com/saferoute-assistant/internal/domain"
	"github.com/saferoute-assistant/internal/domain/repository"
	apperrors "github.com/saferoute-assistant/internal/pkg/errors"
)

const systemPrompt = `You are a route safety assistant for a city mapping application. ` +
	`Answer questions about crime, lighting and emergency infrastructure along the user's route. ` +
	`Ground every claim in the provided context facts and say so when data is missing. ` +
	`Wrap your conversational answer in <response></response>. ` +
	`When you mention specific named locations, add a <places>[{"name", "type", "lat", "lng"}]</places> JSON array. ` +
	`When asked about crime levels, add a <crime>{...}</crime> JSON object. ` +
	`When asked about lighting, add a <lighting>{...}</lighting> JSON object.`

type client struct {
	api       sdk.Client
	model     sdk.Model
	maxTokens int64
	logger    *zap.Logger
}

// NewClient создает репозиторий модели поверх Anthropic SDK
func NewClient(cfg *config.ModelConfig, logger *zap.Logger) repository.ModelRepository {
	return &client{
		api:       sdk.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     sdk.Model(cfg.Model),
		maxTokens: int64(cfg.MaxTokens),
		logger:    logger,
	}
}

// Complete отправляет журнал диалога и возвращает текст ответа.
// Системные записи журнала собираются в системный промпт вызова.
func (c *client) Complete(ctx context.Context, messages []domain.Message) (string, error) {
	system := []sdk.TextBlockParam{{Text: systemPrompt}}
	payload := make([]sdk.MessageParam, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case domain.RoleSystem:
			system = append(system, sdk.TextBlockParam{Text: msg.Content})
		case domain.RoleAssistant:
			payload = append(payload, sdk.NewAssistantMessage(sdk.NewTextBlock(msg.Content)))
		default:
			payload = append(payload, sdk.NewUserMessage(sdk.NewTextBlock(msg.Content)))
		}
	}

	resp, err := c.api.Messages.New(ctx, sdk.MessageNewParams{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    system,
		Messages:  payload,
	})
	if err != nil {
		return "", c.mapError(err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	c.logger.Debug("Model reply received",
		zap.Int("messages", len(payload)),
		zap.Int("reply_len", sb.Len()))

	return sb.String(), nil
}

// mapError переводит отказ API в категоризированную ошибку
func (c *client) mapError(err error) error {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == 429:
			c.logger.Warn("Model rate limited", zap.Error(err))
			return apperrors.ErrModelRateLimited
		case apiErr.StatusCode == 402 ||
			strings.Contains(strings.ToLower(apiErr.Error()), "credit") ||
			strings.Contains(strings.ToLower(apiErr.Error()), "quota"):
			c.logger.Warn("Model quota exceeded", zap.Error(err))
			return apperrors.ErrModelQuotaExceeded
		}
	}
	c.logger.Error("Model call failed", zap.Error(err))
	return apperrors.ErrModelUnavailable
}
