package completion

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

const completionModelNodeKey = "completion_chat_model"

// ArkGenerator runs prompts through an eino chain ending in a chat model.
type ArkGenerator struct {
	runnable compose.Runnable[string, string]
}

func NewArkGenerator(ctx context.Context, chatModel model.BaseChatModel, systemPrompt string) (*ArkGenerator, error) {
	if chatModel == nil {
		return nil, fmt.Errorf("chat model is required")
	}

	chain := compose.NewChain[string, string]()

	chain.AppendLambda(compose.InvokableLambda(func(_ context.Context, prompt string) ([]*schema.Message, error) {
		messages := make([]*schema.Message, 0, 2)
		if systemPrompt != "" {
			messages = append(messages, schema.SystemMessage(systemPrompt))
		}
		return append(messages, schema.UserMessage(prompt)), nil
	}))

	chain.AppendChatModel(chatModel, compose.WithNodeKey(completionModelNodeKey))

	chain.AppendLambda(compose.InvokableLambda(func(_ context.Context, msg *schema.Message) (string, error) {
		if msg == nil {
			return "", ErrEmptyCompletion
		}
		text := strings.TrimSpace(msg.Content)
		if text == "" {
			return "", ErrEmptyCompletion
		}
		return text, nil
	}))

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, err
	}
	return &ArkGenerator{runnable: runnable}, nil
}

func (g *ArkGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.runnable == nil {
		return "", fmt.Errorf("ark generator unavailable")
	}
	return g.runnable.Invoke(ctx, prompt)
}
