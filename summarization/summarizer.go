// Package summarization produces the AI situation summary: it reads the
// anomaly tree from the realtime store, asks the model for a short
// operational summary, derives the structured insights and recommendations,
// and publishes the result for the dashboard feed to pick up.
package summarization

import (
	"context"
	"fmt"
	"log"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	firebasedb "firebase.google.com/go/db"
	"github.com/sashabaranov/go-openai"

	"safetysight/types"
)

const maxPromptLength = 15000

// fallbackSummary is published when the model call fails, so the dashboard
// keeps showing a live (if degraded) snapshot instead of going stale.
const fallbackSummary = "Summary generation failed."

// Generator reads anomalies and publishes summaries.
type Generator struct {
	anomalies *firebasedb.Ref
	summary   *firebasedb.Ref
	client    *openai.Client
	now       func() time.Time

	mu   sync.Mutex
	last map[string]types.Anomaly
}

// New builds a generator over the given realtime paths.
func New(rtdb *firebasedb.Client, anomalyPath, summaryPath string, client *openai.Client) *Generator {
	return &Generator{
		anomalies: rtdb.NewRef(anomalyPath),
		summary:   rtdb.NewRef(summaryPath),
		client:    client,
		now:       time.Now,
	}
}

// Refresh regenerates the summary if the anomaly tree changed since the
// previous run. Unchanged data is skipped to avoid burning model calls.
func (g *Generator) Refresh(ctx context.Context) error {
	var anomalies map[string]types.Anomaly
	if err := g.anomalies.Get(ctx, &anomalies); err != nil {
		return fmt.Errorf("reading anomalies: %w", err)
	}

	g.mu.Lock()
	unchanged := reflect.DeepEqual(anomalies, g.last)
	g.mu.Unlock()
	if unchanged {
		return nil
	}

	summary := g.summarize(ctx, anomalies)

	snapshot := types.AISummary{
		Summary:         summary,
		Insights:        deriveInsights(anomalies),
		Recommendations: deriveRecommendations(anomalies),
		Timestamp:       g.now().UTC().Format(time.RFC3339),
	}
	if err := g.summary.Set(ctx, snapshot); err != nil {
		return fmt.Errorf("publishing summary: %w", err)
	}

	g.mu.Lock()
	g.last = anomalies
	g.mu.Unlock()

	log.Printf("Published summary covering %d anomalies", len(anomalies))
	return nil
}

func (g *Generator) summarize(ctx context.Context, anomalies map[string]types.Anomaly) string {
	if len(anomalies) == 0 {
		return "No anomalies found."
	}

	prompt := BuildPrompt(anomalies)
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an assistant that summarizes anomaly records for event-safety monitoring, concisely and operationally.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens:   150,
		N:           1,
		Temperature: 0.5,
	})
	if err != nil {
		log.Printf("Error generating summary: %v", err)
		return fallbackSummary
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Printf("Model returned an empty summary")
		return fallbackSummary
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

// BuildPrompt renders the anomaly records into the summarization prompt,
// one line per record, truncated to a rough character budget.
func BuildPrompt(anomalies map[string]types.Anomaly) string {
	keys := make([]string, 0, len(anomalies))
	for k := range anomalies {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("Summarize these anomaly records for emergency monitoring (2-3 sentences, focus on impact and affected zones):\n\n")
	for _, k := range keys {
		a := anomalies[k]
		fmt.Fprintf(&b, "- [%s] %s in %s | Severity: %s | Source: %s | Time: %s\n",
			k, a.Type, a.Zone, a.Severity, a.Source, a.Timestamp)
	}

	prompt := b.String()
	if len(prompt) > maxPromptLength {
		prompt = prompt[:maxPromptLength]
	}
	return prompt
}

// deriveInsights extracts the structured lines the dashboard parses; the
// leading "Severity:" entry is the one the feed's severity parser reads.
func deriveInsights(anomalies map[string]types.Anomaly) []string {
	if len(anomalies) == 0 {
		return []string{"No active anomalies"}
	}
	first := firstAnomaly(anomalies)
	return []string{
		"Severity: " + first.Severity,
		"Zone: " + first.Zone,
		"Source: " + first.Source,
	}
}

// deriveRecommendations maps the headline severity to an action list. An
// empty anomaly tree publishes an empty list, not the low-severity actions.
func deriveRecommendations(anomalies map[string]types.Anomaly) []string {
	if len(anomalies) == 0 {
		return []string{}
	}
	switch strings.ToLower(firstAnomaly(anomalies).Severity) {
	case "high", "critical":
		return []string{
			"Take immediate action",
			"Alert emergency response teams",
			"Initiate evacuation protocol",
		}
	case "medium":
		return []string{
			"Increase monitoring frequency",
			"Prepare emergency teams",
		}
	default:
		return []string{
			"Continue regular monitoring",
			"Report any changes",
		}
	}
}

// firstAnomaly picks the headline record deterministically (lowest key).
func firstAnomaly(anomalies map[string]types.Anomaly) types.Anomaly {
	keys := make([]string, 0, len(anomalies))
	for k := range anomalies {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return types.Anomaly{}
	}
	sort.Strings(keys)
	return anomalies[keys[0]]
}
