package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// Errors surfaced by the completion stage. The API layer maps these to
// HTTP statuses, so they carry the user-facing failure identity.
var (
	ErrMissingAPIKey = errors.New("openai api key is not configured")
	ErrUpstream      = errors.New("failed to fetch data from openai")
	ErrNoMessage     = errors.New("no message returned from openai")
)

const defaultModel = "gpt-3.5-turbo"

const systemPrompt = `You are a helpful assistant that helps people find books. You will be given a description of a book or books, and you will respond with the ISBN of the most relevant book. If no books match, respond with 'none'.
Return in the following format:
[
    {
        "ISBN": <ISBN>,
        "Title": <Book Title>,
        "Author": <Author>,
        "Summary": <Short Summary>
    }
]`

const userPromptFormat = `Find the ISBN of a book that matches this description: %s. Return the ISBN, Book Title, Author and a short summary of the three most relevant ones. If no books match, return "none".`

// Client talks to the OpenAI chat completions API
type Client struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewClient creates a completion client
// Reads the API key from the OPENAI_API_KEY environment variable
func NewClient() *Client {
	return NewClientWithKey(os.Getenv("OPENAI_API_KEY"))
}

// NewClientWithKey creates a completion client with an explicit API key
func NewClientWithKey(apiKey string) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL: "https://api.openai.com/v1",
		apiKey:  apiKey,
		model:   defaultModel,
	}
}

// IsConfigured returns true if an API key is set
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the fixed book-matching prompt with the user's query
// embedded and returns the first choice's message text verbatim. The query
// is expected to be validated non-empty by the caller.
func (c *Client) Complete(ctx context.Context, query string) (string, error) {
	if !c.IsConfigured() {
		return "", ErrMissingAPIKey
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf(userPromptFormat, query)},
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var chat chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(chat.Choices) == 0 || chat.Choices[0].Message.Content == "" {
		return "", ErrNoMessage
	}
	return chat.Choices[0].Message.Content, nil
}
