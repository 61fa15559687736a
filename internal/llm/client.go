// ABOUTME: OpenAI client for relationship pattern analysis
// ABOUTME: Wraps chat completions with retry, timeout, and JSON parsing
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/flagbook/flagbook/internal/models"
	"github.com/flagbook/flagbook/internal/util"
)

// DefaultChatModel is the default model for chat completions
const DefaultChatModel = "gpt-4o-mini"

// ClientConfig holds configuration for the insights client
type ClientConfig struct {
	APIKey     string
	ChatModel  string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
	MinLogs    int // minimum log history required; MinLogsForInsights when zero
}

// DefaultConfig returns the default client configuration
func DefaultConfig(apiKey string) *ClientConfig {
	chatModel := os.Getenv("FLAGBOOK_OPENAI_MODEL")
	if chatModel == "" {
		chatModel = DefaultChatModel
	}

	return &ClientConfig{
		APIKey:     apiKey,
		ChatModel:  chatModel,
		Timeout:    30 * time.Second,
		MaxRetries: 3,
		RetryDelay: time.Second * 2,
		MinLogs:    MinLogsForInsights,
	}
}

// Insights is the structured analysis returned for a log history
type Insights struct {
	Patterns        []string `json:"patterns"`
	Risks           []string `json:"risks"`
	Recommendations []string `json:"recommendations"`
}

// InsightsClient wraps the OpenAI API client with retry logic
type InsightsClient struct {
	client     *openai.Client
	chatModel  string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	minLogs    int
}

// NewInsightsClient creates a new insights client with default configuration
func NewInsightsClient(apiKey string) (*InsightsClient, error) {
	return NewInsightsClientWithConfig(DefaultConfig(apiKey))
}

// NewInsightsClientWithConfig creates a new insights client with custom configuration
func NewInsightsClientWithConfig(config *ClientConfig) (*InsightsClient, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	minLogs := config.MinLogs
	if minLogs <= 0 {
		minLogs = MinLogsForInsights
	}

	return &InsightsClient{
		client:     openai.NewClient(config.APIKey),
		chatModel:  config.ChatModel,
		timeout:    timeout,
		maxRetries: config.MaxRetries,
		retryDelay: config.RetryDelay,
		minLogs:    minLogs,
	}, nil
}

// AnalyzeLogs asks the model for patterns, risks, and recommendations
// over a profile's log history. The minimum-log precondition is enforced
// before any network call.
func (c *InsightsClient) AnalyzeLogs(profileName string, logs []models.LogEntry) (*Insights, error) {
	if len(logs) < c.minLogs {
		return nil, fmt.Errorf("at least %d logged flags are required for analysis, have %d", c.minLogs, len(logs))
	}

	systemPrompt := `You are a relationship pattern analyst. Given a dated transcript of flagged behaviors (GREEN = positive, YELLOW = caution, RED = negative, each with a 1-10 severity), identify:
1. patterns: recurring behavior patterns (array of strings)
2. risks: concerning trends worth attention (array of strings)
3. recommendations: constructive suggestions (array of strings)

Return ONLY a JSON object with these three fields. No additional text.`

	userPrompt := fmt.Sprintf("Behavior log for %s:\n\n%s", profileName, FormatTranscript(logs))

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)

		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
			Temperature: 0.3,
		})

		if err != nil {
			cancel()
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if len(resp.Choices) == 0 {
			cancel()
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		var insights Insights
		if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &insights); err != nil {
			cancel()
			lastErr = fmt.Errorf("attempt %d: failed to parse JSON: %w", attempt+1, err)
			continue
		}

		cancel()
		return &insights, nil
	}

	return nil, fmt.Errorf("failed to analyze logs after %d attempts: %w", c.maxRetries+1, lastErr)
}

// Chat answers a free-text question grounded in the log transcript
func (c *InsightsClient) Chat(question string, logs []models.LogEntry) (string, error) {
	if len(logs) < c.minLogs {
		return "", fmt.Errorf("at least %d logged flags are required for analysis, have %d", c.minLogs, len(logs))
	}

	systemPrompt := `You are a supportive relationship journal assistant. Answer the user's question using only the behavior log transcript provided. Be concise and concrete.`

	userPrompt := fmt.Sprintf("Behavior log:\n\n%s\nQuestion: %s", FormatTranscript(logs), question)

	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(util.CalculateBackoff(c.retryDelay, attempt))
		}

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)

		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model: c.chatModel,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
				{Role: openai.ChatMessageRoleUser, Content: userPrompt},
			},
			Temperature: 0.7,
		})

		if err != nil {
			cancel()
			lastErr = fmt.Errorf("attempt %d: %w", attempt+1, err)
			continue
		}

		if len(resp.Choices) == 0 {
			cancel()
			lastErr = fmt.Errorf("attempt %d: no completion choices returned", attempt+1)
			continue
		}

		cancel()
		return resp.Choices[0].Message.Content, nil
	}

	return "", fmt.Errorf("failed to get chat reply after %d attempts: %w", c.maxRetries+1, lastErr)
}
