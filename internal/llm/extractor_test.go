package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel scripts one reply or error per call, repeating the last entry
// once the script runs out.
type fakeModel struct {
	replies []string
	errs    []error
	calls   int
}

func (m *fakeModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	i := m.calls
	m.calls++
	if i < len(m.errs) && m.errs[i] != nil {
		return nil, m.errs[i]
	}
	reply := ""
	if len(m.replies) > 0 {
		if i >= len(m.replies) {
			i = len(m.replies) - 1
		}
		reply = m.replies[i]
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: reply}}}, nil
}

func (m *fakeModel) Call(_ context.Context, _ string, _ ...llms.CallOption) (string, error) {
	return "", errors.New("not implemented")
}

func testConfig() Config {
	return Config{
		Model:      "gpt-4o-mini",
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
		Timeout:    time.Second,
	}
}

const minimalReply = `{"profile":{"name":"John","surname":"Doe","email":"john@example.com"},"skills":["Go"]}`

func TestExtractResumeDataNormalizesDocument(t *testing.T) {
	model := &fakeModel{replies: []string{minimalReply}}
	e := newExtractor(model, testConfig())

	doc, err := e.ExtractResumeData(context.Background(), "John Doe resume text")
	require.NoError(t, err)
	assert.Equal(t, 1, model.calls)

	var parsed map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc, &parsed))

	// Every top-level key is present even when absent from the reply.
	for _, key := range []string{
		"profile", "workExperiences", "educations", "skills",
		"licenses", "languages", "achievements", "publications", "honors",
	} {
		assert.Contains(t, parsed, key)
	}
	assert.JSONEq(t, `["Go"]`, string(parsed["skills"]))
	assert.JSONEq(t, `[]`, string(parsed["workExperiences"]))
}

func TestExtractResumeDataStripsCodeFences(t *testing.T) {
	model := &fakeModel{replies: []string{"```json\n" + minimalReply + "\n```"}}
	e := newExtractor(model, testConfig())

	doc, err := e.ExtractResumeData(context.Background(), "resume")
	require.NoError(t, err)

	var data ResumeData
	require.NoError(t, json.Unmarshal(doc, &data))
	assert.Equal(t, "John", data.Profile.Name)
}

func TestExtractResumeDataRetriesTransientErrors(t *testing.T) {
	model := &fakeModel{
		errs:    []error{errors.New("connection reset"), errors.New("gateway timeout")},
		replies: []string{minimalReply, minimalReply, minimalReply},
	}
	e := newExtractor(model, testConfig())

	_, err := e.ExtractResumeData(context.Background(), "resume")
	require.NoError(t, err)
	assert.Equal(t, 3, model.calls)
}

func TestExtractResumeDataExhaustsRetryBudget(t *testing.T) {
	boom := errors.New("connection reset")
	model := &fakeModel{errs: []error{boom, boom, boom}}
	e := newExtractor(model, testConfig())

	_, err := e.ExtractResumeData(context.Background(), "resume")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtraction)
	assert.Equal(t, 3, model.calls)
}

func TestExtractResumeDataDoesNotRetryCredentialErrors(t *testing.T) {
	model := &fakeModel{errs: []error{errors.New("Incorrect API key provided")}}
	e := newExtractor(model, testConfig())

	_, err := e.ExtractResumeData(context.Background(), "resume")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtraction)
	assert.Equal(t, 1, model.calls)
}

func TestExtractResumeDataDoesNotRetryBadJSON(t *testing.T) {
	model := &fakeModel{replies: []string{"this is not json"}}
	e := newExtractor(model, testConfig())

	_, err := e.ExtractResumeData(context.Background(), "resume")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtraction)
	assert.Equal(t, 1, model.calls)
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{errors.New("connection reset"), true},
		{context.DeadlineExceeded, true},
		{errors.New("Invalid API key"), false},
		{errors.New("Rate limit exceeded"), false},
		{errors.New("insufficient_quota: billing hard cap"), false},
		{ErrBadResponse, false},
		{ErrEmptyResponse, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, isRetryable(tc.err), "err: %v", tc.err)
	}
}
