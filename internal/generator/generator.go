// Package generator is a thin client for the external text-generation
// API behind the resume, job-description, quiz, and summary features.
//
// The prompts are opaque payloads assembled here from typed request
// structs; the upstream contract is a single POST returning generated
// text. Calls carry a bounded timeout and are never retried — a slow or
// failing upstream surfaces to the caller immediately as an Upstream
// error rather than stalling the request.
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/skillhub/internal/apperror"
)

const defaultTimeout = 60 * time.Second

// Client talks to the text-generation endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a Client. baseURL is the full URL of the generation
// endpoint; apiKey may be empty when the upstream is unauthenticated.
func New(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logger,
	}
}

// ResumeRequest carries the profile fields the resume prompt is built from.
type ResumeRequest struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Education  string   `json:"education"`
	Skills     []string `json:"skills"`
	Experience string   `json:"experience"`
	Projects   string   `json:"projects"`
}

// JobDescriptionRequest describes the role to generate a posting for.
type JobDescriptionRequest struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Skills       []string `json:"skills"`
	Experience   string   `json:"experience"`
	Requirements string   `json:"requirements"`
}

// QuizRequest asks for an assessment quiz on a topic.
type QuizRequest struct {
	Topic         string `json:"topic"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"questionCount"`
}

// SummaryRequest asks for a summary of a course.
type SummaryRequest struct {
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

// GenerateResume produces resume text from the given profile.
func (c *Client) GenerateResume(ctx context.Context, req *ResumeRequest) (string, error) {
	prompt := fmt.Sprintf(
		"Write a professional resume for %s (%s). Education: %s. Skills: %v. Experience: %s. Projects: %s.",
		req.Name, req.Email, req.Education, req.Skills, req.Experience, req.Projects,
	)
	return c.generate(ctx, "resume", prompt)
}

// GenerateJobDescription produces a job posting for the given role.
func (c *Client) GenerateJobDescription(ctx context.Context, req *JobDescriptionRequest) (string, error) {
	prompt := fmt.Sprintf(
		"Write a job description for the role %q at %s. Required skills: %v. Experience level: %s. Requirements: %s.",
		req.Title, req.Company, req.Skills, req.Experience, req.Requirements,
	)
	return c.generate(ctx, "job-description", prompt)
}

// GenerateQuiz produces an assessment quiz on the given topic.
func (c *Client) GenerateQuiz(ctx context.Context, req *QuizRequest) (string, error) {
	count := req.QuestionCount
	if count <= 0 {
		count = 5
	}
	prompt := fmt.Sprintf(
		"Create a %s-difficulty quiz with %d questions on %s, with answers.",
		req.Difficulty, count, req.Topic,
	)
	return c.generate(ctx, "quiz", prompt)
}

// GenerateSummary produces a short summary of a course.
func (c *Client) GenerateSummary(ctx context.Context, req *SummaryRequest) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize the course %q (subject: %s) in a few paragraphs. Description: %s.",
		req.Title, req.Subject, req.Description,
	)
	return c.generate(ctx, "summary", prompt)
}

// generate POSTs one prompt upstream and returns the generated text.
func (c *Client) generate(ctx context.Context, kind, prompt string) (string, error) {
	if c.baseURL == "" {
		return "", apperror.Unavailable("text generation is not configured")
	}

	body, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return "", fmt.Errorf("generator: encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("generator: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("generation request failed",
			slog.String("kind", kind),
			slog.String("error", err.Error()),
		)
		return "", apperror.Upstream("text generation failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("generation upstream returned non-200",
			slog.String("kind", kind),
			slog.Int("status", resp.StatusCode),
		)
		return "", apperror.Upstream("text generation failed")
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperror.Upstream("text generation returned an unreadable response")
	}

	c.logger.Info("generated text",
		slog.String("kind", kind),
		slog.Duration("duration", time.Since(start)),
	)

	return out.Text, nil
}
