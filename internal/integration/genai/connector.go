package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/avast/retry-go/v4"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"

	"github.com/malithjkd/ai-project-manager/internal/config"
	"github.com/malithjkd/ai-project-manager/internal/entity"
	"github.com/malithjkd/ai-project-manager/internal/integration/common"
	pkghttp "github.com/malithjkd/ai-project-manager/pkg/http"
)

const chatSystemPrompt = `You are a helpful AI assistant designed to discuss project ideas with a user. ` +
	`Your goal is to understand their project, focusing on the problem they want to solve and their proposed solution. ` +
	`Engage in natural conversation, ask clarifying questions, and help them refine their thoughts. ` +
	`Keep responses concise and relevant to project ideation.`

const problemExtractionPrompt = `Analyze the conversation history between a user and an AI assistant discussing a project idea. ` +
	`Your task is to identify and extract the core problem the user is trying to address. ` +
	`Summarize this problem into a concise statement (1-3 sentences). Focus only on the problem itself, not the solution yet. ` +
	`Respond with a JSON object of the form {"problem_statement": "..."}.`

const solutionExtractionPrompt = `Analyze the conversation history between a user and an AI assistant. ` +
	`They have discussed a project idea, including the problem and potential solutions. ` +
	`Your task is to identify and extract the core solution being proposed by the user or discussed. ` +
	`Summarize this solution into a concise statement (1-3 sentences). Focus only on the proposed solution. ` +
	`Respond with a JSON object of the form {"solution_statement": "..."}.`

type Connector struct {
	config    config.GenAIConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.GenAIConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(
			cfg.HTTPClientConfig, logger,
			pkghttp.WithAuthHeader("x-goog-api-key", cfg.APIKey),
		),
		config: cfg,
		logger: logger,
	}
}

// Chat sends the whole conversation to the model and returns a single text
// reply. An empty string with a nil error means the model produced no usable
// text; the caller decides what the user sees in that case.
func (c *Connector) Chat(ctx context.Context, history []entity.ChatMessage) (string, error) {
	ctxzap.Info(ctx, "requesting dialogue reply", zap.Int("history_len", len(history)))

	req := &entity.GenAIGenerateRequest{
		SystemInstruction: &entity.GenAIContent{
			Parts: []entity.GenAIPart{{Text: chatSystemPrompt}},
		},
		Contents: historyToContents(history),
	}

	resp, err := c.generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrGenerationFailed, err)
	}

	text := resp.Text()
	if text == "" {
		ctxzap.Warn(ctx, "model returned no usable text for dialogue reply")
	}

	return text, nil
}

// Extract summarizes the conversation into a problem or solution statement.
// The model is forced into a JSON response shape; anything that does not
// parse into the expected object counts as a generation failure.
func (c *Connector) Extract(ctx context.Context, history []entity.ChatMessage, kind entity.ExtractionKind) (string, error) {
	ctxzap.Info(ctx, "requesting extraction",
		zap.String("kind", string(kind)),
		zap.Int("history_len", len(history)),
	)

	prompt := problemExtractionPrompt
	if kind == entity.ExtractionSolution {
		prompt = solutionExtractionPrompt
	}

	req := &entity.GenAIGenerateRequest{
		SystemInstruction: &entity.GenAIContent{
			Parts: []entity.GenAIPart{{Text: prompt}},
		},
		Contents: historyToContents(history),
		GenerationConfig: &entity.GenAIGenerationConfig{
			ResponseMIMEType: "application/json",
		},
	}

	resp, err := c.generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrGenerationFailed, err)
	}

	statement, err := parseExtraction(resp.Text(), kind)
	if err != nil {
		ctxzap.Warn(ctx, "extraction response violated expected shape", zap.Error(err))
		return "", fmt.Errorf("%w: %v", entity.ErrGenerationFailed, err)
	}

	return statement, nil
}

func (c *Connector) generate(ctx context.Context, req *entity.GenAIGenerateRequest) (*entity.GenAIGenerateResponse, error) {
	var resp entity.GenAIGenerateResponse

	opts := append(c.config.Retry.ToRetryOptions(), retry.Context(ctx), retry.RetryIf(isTransient))
	err := retry.Do(func() error {
		resp = entity.GenAIGenerateResponse{}
		return c.connector.DoRequest(ctx, http.MethodPost, c.config.GenerateEndpoint(), req, &resp)
	}, opts...)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// isTransient limits retries to network failures and provider 5xx. A 400
// class answer (malformed request, bad API key) will not change on a second
// attempt, retrying it only burns the budget.
func isTransient(err error) bool {
	var netErr *pkghttp.NetworkError
	if errors.As(err, &netErr) {
		return true
	}
	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500
	}
	return false
}

func historyToContents(history []entity.ChatMessage) []entity.GenAIContent {
	contents := make([]entity.GenAIContent, 0, len(history))
	for _, msg := range history {
		contents = append(contents, entity.GenAIContent{
			Role:  string(msg.Role),
			Parts: []entity.GenAIPart{{Text: msg.Content}},
		})
	}
	return contents
}

func parseExtraction(raw string, kind entity.ExtractionKind) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty extraction response")
	}

	var statement string
	switch kind {
	case entity.ExtractionSolution:
		var out entity.SolutionExtraction
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return "", fmt.Errorf("decode solution extraction: %w", err)
		}
		statement = out.SolutionStatement
	default:
		var out entity.ProblemExtraction
		if err := json.Unmarshal([]byte(raw), &out); err != nil {
			return "", fmt.Errorf("decode problem extraction: %w", err)
		}
		statement = out.ProblemStatement
	}

	statement = strings.TrimSpace(statement)
	if statement == "" {
		return "", fmt.Errorf("extraction produced an empty statement")
	}

	return statement, nil
}
