package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"gorm.io/datatypes"
)

var (
	// ErrExtraction wraps any non-recoverable failure of the structured
	// extraction, including exhausting the retry budget.
	ErrExtraction = errors.New("failed to extract resume data")
	// ErrBadResponse means the model's reply was not valid JSON. The one-shot
	// answer is not re-sent, so this is never retried.
	ErrBadResponse = errors.New("model response is not valid JSON")
	// ErrEmptyResponse means the model returned no usable choice.
	ErrEmptyResponse = errors.New("no response from model")
)

const (
	DefaultTimeout    = 60 * time.Second
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second
)

type Config struct {
	APIKey        string
	Model         string
	Temperature   float64
	Timeout       time.Duration // wall-clock budget per attempt
	MaxRetries    int
	RetryDelay    time.Duration // base delay, doubled each attempt
	MaxTextLength int
}

// Extractor turns résumé plain text into the schema-conforming JSON
// document by issuing a JSON-mode chat call with bounded retries.
type Extractor struct {
	model llms.Model
	cfg   Config
}

func NewExtractor(cfg Config) (*Extractor, error) {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.1
	}
	model, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("create openai client: %w", err)
	}
	return newExtractor(model, cfg), nil
}

func newExtractor(model llms.Model, cfg Config) *Extractor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.MaxTextLength <= 0 {
		cfg.MaxTextLength = DefaultMaxTextLength
	}
	return &Extractor{model: model, cfg: cfg}
}

// ExtractResumeData preprocesses text, calls the model and returns the
// normalized JSON document. Transient failures are retried with exponential
// backoff; credential, quota and rate-limit errors fail immediately.
func (e *Extractor) ExtractResumeData(ctx context.Context, text string) (datatypes.JSON, error) {
	processed := PreprocessText(text, e.cfg.MaxTextLength)
	log.Printf("llm.extract start text_len=%d processed_len=%d model=%s", len(text), len(processed), e.cfg.Model)

	var lastErr error
	for attempt := 0; attempt < e.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := e.cfg.RetryDelay * (1 << (attempt - 1))
			log.Printf("llm.extract retry attempt=%d delay=%s err=%v", attempt+1, delay, lastErr)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, fmt.Errorf("%w: %v", ErrExtraction, ctx.Err())
			}
		}

		doc, err := e.call(ctx, processed)
		if err == nil {
			return doc, nil
		}
		lastErr = err
		if !isRetryable(err) {
			return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrExtraction, lastErr)
}

func (e *Extractor) call(ctx context.Context, text string) (datatypes.JSON, error) {
	callCtx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt()),
		llms.TextParts(llms.ChatMessageTypeHuman, "Extract structured data from this resume:\n\n"+text),
	}

	resp, err := e.model.GenerateContent(callCtx, messages,
		llms.WithJSONMode(),
		llms.WithTemperature(e.cfg.Temperature),
	)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	content := cleanJSON(resp.Choices[0].Content)

	var data ResumeData
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	data.Normalize()

	doc, err := json.Marshal(&data)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(doc), nil
}

// isRetryable classifies failures. Parse failures and anything pointing at
// credentials or quota must not consume retry budget; timeouts and other
// transport errors may.
func isRetryable(err error) bool {
	if errors.Is(err, ErrBadResponse) || errors.Is(err, ErrEmptyResponse) {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{"invalid api key", "incorrect api key", "rate limit", "insufficient_quota", "quota"} {
		if strings.Contains(msg, marker) {
			return false
		}
	}
	return true
}
