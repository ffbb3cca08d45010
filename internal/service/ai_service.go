package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"forgeboard/internal/config"
	"forgeboard/internal/model"
	"forgeboard/pkg/circuitbreaker"
	"forgeboard/pkg/metrics"
)

// AIService produces natural-language analysis for the dashboard: project
// health summaries and risk mitigation suggestions. Outbound calls go through
// a circuit breaker; when no API key is configured, or the breaker is open,
// answers come from the deterministic local generator so the endpoints always
// respond.
type AIService struct {
	cfg     config.AIConfig
	client  *http.Client
	breaker *circuitbreaker.CircuitBreaker
	logger  *zap.Logger
}

func NewAIService(cfg config.AIConfig, logger *zap.Logger) *AIService {
	return &AIService{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout.Std()},
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig()),
		logger:  logger,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// SummarizeProject produces a short health narrative for a project and its
// EVM snapshot.
func (s *AIService) SummarizeProject(ctx context.Context, p *model.Project, e *model.ProjectEVM) (string, error) {
	prompt := fmt.Sprintf(
		"Summarize the health of project %q in 3 sentences. Status: %s. Budget %.0f, spent %.0f, %.0f%% complete. CPI %.2f, SPI %.2f, EVM status %s.",
		p.Name, p.Status, p.Budget, p.Spent, p.CompletionPercentage,
		e.Current.CostPerformanceIndex, e.Current.SchedulePerformanceIndex, e.Status,
	)

	text, err := s.generate(ctx, "summarize_project", prompt)
	if err != nil {
		s.logger.Warn("AI summary fell back to local generator",
			zap.Int64("project_id", p.ID),
			zap.Error(err),
		)
		return localProjectSummary(p, e), nil
	}
	return text, nil
}

// SuggestMitigation produces a mitigation suggestion for a RAID entry.
func (s *AIService) SuggestMitigation(ctx context.Context, e *model.RAIDEntry) (string, error) {
	prompt := fmt.Sprintf(
		"Suggest one concrete mitigation for this %s: %q. Details: %s. Score %d (%s).",
		e.Type, e.Title, e.Description, e.Score, e.Band,
	)

	text, err := s.generate(ctx, "suggest_mitigation", prompt)
	if err != nil {
		s.logger.Warn("AI mitigation fell back to local generator",
			zap.Int64("entry_id", e.ID),
			zap.Error(err),
		)
		return localMitigation(e), nil
	}
	return text, nil
}

func (s *AIService) generate(ctx context.Context, operation, prompt string) (string, error) {
	if s.cfg.APIKey == "" {
		return "", fmt.Errorf("no api key configured")
	}

	var text string
	start := time.Now()
	err := s.breaker.Execute(func() error {
		var callErr error
		text, callErr = s.call(ctx, prompt)
		return callErr
	})

	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.RecordAICallLatency(operation, status, time.Since(start))

	return text, err
}

func (s *AIService) call(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a project management assistant. Be brief and concrete."},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call ai service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("ai service returned error: status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode ai response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("ai service returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

func localProjectSummary(p *model.Project, e *model.ProjectEVM) string {
	verdict := "is on track"
	switch e.Status {
	case "at_risk":
		verdict = "is at risk"
	case "critical":
		verdict = "is in critical condition"
	}
	return fmt.Sprintf(
		"Project %s %s. It is %.0f%% complete with %.0f of %.0f spent (CPI %.2f, SPI %.2f). Estimate at completion is %.0f.",
		p.Name, verdict, p.CompletionPercentage, p.Spent, p.Budget,
		e.Current.CostPerformanceIndex, e.Current.SchedulePerformanceIndex,
		e.Current.EstimateAtCompletion,
	)
}

func localMitigation(e *model.RAIDEntry) string {
	switch e.Band {
	case "high":
		return fmt.Sprintf("%s scores %d. Assign a dedicated owner, define a mitigation plan this week and review it at every standup.", e.Title, e.Score)
	case "medium":
		return fmt.Sprintf("%s scores %d. Document a mitigation plan and review it at the next project checkpoint.", e.Title, e.Score)
	default:
		return fmt.Sprintf("%s scores %d. Monitor it in the regular RAID review; no immediate action required.", e.Title, e.Score)
	}
}
