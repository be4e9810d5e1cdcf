package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type ManagerConfig struct {
	Timeout       int
	MaxInputChars int
}

// Manager bundles the configured generators and the embedder behind one
// entry point. Any role may be nil when the deployment does not configure
// it; the corresponding call then fails fast.
type Manager struct {
	answerer   IGenerator
	questioner IGenerator
	embedder   IEmbedder
	cfg        ManagerConfig
}

func NewManager(answerer IGenerator, questioner IGenerator, embedder IEmbedder, cfg ManagerConfig) *Manager {
	return &Manager{
		answerer:   answerer,
		questioner: questioner,
		embedder:   embedder,
		cfg:        cfg,
	}
}

func (m *Manager) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	if m.embedder == nil {
		return nil, fmt.Errorf("embedder not configured")
	}
	if m.cfg.MaxInputChars > 0 && len(text) > m.cfg.MaxInputChars {
		text = text[:m.cfg.MaxInputChars]
	}
	return m.embedder.Embed(ctx, text, taskType)
}

// Answer runs the chat generator on a fully assembled prompt.
func (m *Manager) Answer(ctx context.Context, prompt string) (string, error) {
	if m.answerer == nil {
		return "", fmt.Errorf("answerer not configured")
	}
	return m.generateText(ctx, m.answerer, prompt)
}

func (m *Manager) generateText(ctx context.Context, gen IGenerator, prompt string) (string, error) {
	if m.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(m.cfg.Timeout)*time.Second)
		defer cancel()
	}
	resp, err := gen.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(resp)
	if text == "" {
		return "", fmt.Errorf("empty ai response")
	}
	return text, nil
}

func (m *Manager) EmbeddingModelName() string {
	if m.embedder == nil {
		return ""
	}
	return m.embedder.ModelName()
}
