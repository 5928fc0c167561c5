package completion

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeChatModel struct {
	reply    string
	err      error
	received []*schema.Message
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.received = input
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func TestArkGenerator(t *testing.T) {
	ctx := context.Background()
	cm := &fakeChatModel{reply: "  The Pixel 9 is a great pick.  "}

	g, err := NewArkGenerator(ctx, cm, "You are a shopping assistant.")
	require.NoError(t, err)

	text, err := g.Generate(ctx, "which phone?")
	require.NoError(t, err)
	assert.Equal(t, "The Pixel 9 is a great pick.", text)

	require.Len(t, cm.received, 2)
	assert.Equal(t, schema.System, cm.received[0].Role)
	assert.Equal(t, schema.User, cm.received[1].Role)
	assert.Equal(t, "which phone?", cm.received[1].Content)
}

func TestArkGenerator_Failures(t *testing.T) {
	ctx := context.Background()

	_, err := NewArkGenerator(ctx, nil, "")
	assert.Error(t, err)

	g, err := NewArkGenerator(ctx, &fakeChatModel{reply: "   "}, "")
	require.NoError(t, err)
	_, err = g.Generate(ctx, "hi")
	assert.ErrorContains(t, err, ErrEmptyCompletion.Error())

	boom := errors.New("upstream 503")
	g, err = NewArkGenerator(ctx, &fakeChatModel{err: boom}, "")
	require.NoError(t, err)
	_, err = g.Generate(ctx, "hi")
	assert.ErrorContains(t, err, "upstream 503")

	var nilGen *ArkGenerator
	_, err = nilGen.Generate(ctx, "hi")
	assert.Error(t, err)
}

type fakeModels struct {
	resp     *genai.GenerateContentResponse
	err      error
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model, f.contents, f.config = model, contents, config
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText(text, genai.RoleModel)}},
	}
}

func TestGeminiGenerator(t *testing.T) {
	fake := &fakeModels{resp: textResponse("Try the MacBook Air.\n")}
	g := newGeminiGenerator(fake, GeminiOptions{Temperature: 0.4, MaxOutputTokens: 256})

	text, err := g.Generate(context.Background(), "light laptop")
	require.NoError(t, err)
	assert.Equal(t, "Try the MacBook Air.", text)
	assert.Equal(t, DefaultGeminiModel, fake.model)
	require.Len(t, fake.contents, 1)
	assert.Equal(t, "light laptop", fake.contents[0].Parts[0].Text)
	assert.Equal(t, float32(0.4), *fake.config.Temperature)
	assert.Equal(t, int32(256), fake.config.MaxOutputTokens)
}

func TestGeminiGenerator_Failures(t *testing.T) {
	ctx := context.Background()

	_, err := NewGeminiGenerator(ctx, GeminiOptions{})
	assert.Error(t, err)

	g := newGeminiGenerator(&fakeModels{err: errors.New("quota exceeded")}, GeminiOptions{Model: "gemini-2.0-flash"})
	_, err = g.Generate(ctx, "x")
	assert.ErrorContains(t, err, "quota exceeded")

	g = newGeminiGenerator(&fakeModels{resp: &genai.GenerateContentResponse{}}, GeminiOptions{})
	_, err = g.Generate(ctx, "x")
	assert.ErrorIs(t, err, ErrEmptyCompletion)

	g = newGeminiGenerator(&fakeModels{}, GeminiOptions{})
	_, err = g.Generate(ctx, "x")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}
