package llm

import (
	"context"
	"fmt"
	"strings"

	einomodel "github.com/cloudwego/eino/components/model"
	contractx "github.com/tanpawarit/research-commerce-assistant/agent/contract"
	groqx "github.com/tanpawarit/research-commerce-assistant/pkg/groq"
)

// Validate reports missing provider settings as configuration errors.
func Validate(c groqx.Config) error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: GROQ_API_KEY is not set", contractx.ErrConfiguration)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: GROQ_MODEL is not set", contractx.ErrConfiguration)
	}
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("%w: GROQ_BASE_URL is not set", contractx.ErrConfiguration)
	}
	return nil
}

func NewChatModel(ctx context.Context, c groqx.Config) (einomodel.ToolCallingChatModel, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	m, err := c.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: create chat model: %v", contractx.ErrUpstream, err)
	}
	return m, nil
}
