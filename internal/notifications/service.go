package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"presentcoach/internal/config"
)

const userAgent = "presentcoach/0.1.0"

// Event names a notification-worthy milestone.
type Event string

const (
	EventAnalysisCompleted Event = "analysis_completed"
	EventAnalysisWarning   Event = "analysis_warning"
	EventAnalysisFailed    Event = "analysis_failed"
	EventTest              Event = "test"
)

// Payload carries event fields. Recognized keys: sessionID, finalScore,
// grade, warning, error.
type Payload map[string]any

// Service publishes events.
type Service interface {
	Publish(ctx context.Context, event Event, payload Payload) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	if cfg == nil {
		return noopService{}
	}
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint:  topic,
		client:    &http.Client{Timeout: timeout},
		onSuccess: cfg.Notifications.OnSuccess,
		onFailure: cfg.Notifications.OnFailure,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint  string
	client    *http.Client
	onSuccess bool
	onFailure bool
}

func (n *ntfyService) Publish(ctx context.Context, event Event, fields Payload) error {
	data, ok := n.format(event, fields)
	if !ok {
		return nil
	}
	return n.send(ctx, data)
}

func (n *ntfyService) format(event Event, fields Payload) (payload, bool) {
	session := stringField(fields, "sessionID")
	switch event {
	case EventAnalysisCompleted:
		if !n.onSuccess {
			return payload{}, false
		}
		return payload{
			title:   "presentcoach - Analysis Complete",
			message: fmt.Sprintf("Analysis complete for %s%s", session, scoreSuffix(fields)),
			tags:    []string{"presentcoach", "analysis", "completed"},
		}, true
	case EventAnalysisWarning:
		if !n.onSuccess {
			return payload{}, false
		}
		message := fmt.Sprintf("Analysis complete with limitations for %s%s", session, scoreSuffix(fields))
		if warning := stringField(fields, "warning"); warning != "" {
			message += "\n" + warning
		}
		return payload{
			title:   "presentcoach - Analysis Complete (limited)",
			message: message,
			tags:    []string{"presentcoach", "analysis", "warning"},
		}, true
	case EventAnalysisFailed:
		if !n.onFailure {
			return payload{}, false
		}
		reason := stringField(fields, "error")
		if reason == "" {
			reason = "unknown"
		}
		return payload{
			title:    "presentcoach - Analysis Failed",
			message:  fmt.Sprintf("Analysis failed for %s: %s", session, reason),
			tags:     []string{"presentcoach", "analysis", "error"},
			priority: "high",
		}, true
	case EventTest:
		return payload{
			title:    "presentcoach - Test",
			message:  "Notification system test",
			tags:     []string{"presentcoach", "test"},
			priority: "low",
		}, true
	default:
		return payload{}, false
	}
}

func scoreSuffix(fields Payload) string {
	score, ok := fields["finalScore"]
	if !ok || score == nil {
		return ""
	}
	var text string
	switch v := score.(type) {
	case float64:
		text = fmt.Sprintf("%.1f", v)
	case *float64:
		if v == nil {
			return ""
		}
		text = fmt.Sprintf("%.1f", *v)
	default:
		text = fmt.Sprint(v)
	}
	if grade := stringField(fields, "grade"); grade != "" {
		return fmt.Sprintf(": %s/100 (%s)", text, grade)
	}
	return fmt.Sprintf(": %s/100", text)
}

func stringField(fields Payload, key string) string {
	value, ok := fields[key]
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case *string:
		if v == nil {
			return ""
		}
		return strings.TrimSpace(*v)
	case error:
		return strings.TrimSpace(v.Error())
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) Publish(context.Context, Event, Payload) error { return nil }
