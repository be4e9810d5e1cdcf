package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

const defaultMaxQuestions = 3

// GenerateQuestions asks the question generator for hypothetical questions
// a reader might pose that the given chunk answers. The questions are later
// embedded so question-phrased queries can match declarative text.
func (m *Manager) GenerateQuestions(ctx context.Context, chunkText string, maxQuestions int) ([]string, error) {
	if m.questioner == nil {
		return nil, fmt.Errorf("questioner not configured")
	}
	if maxQuestions <= 0 {
		maxQuestions = defaultMaxQuestions
	}
	if maxQuestions > 10 {
		maxQuestions = 10
	}
	prompt := fmt.Sprintf(`Anda adalah asisten pembuat pertanyaan.
Berdasarkan potongan teks akademik di bawah, buat maksimal %d pertanyaan yang dapat dijawab oleh teks tersebut.
- Gunakan bahasa yang sama dengan teks.
- Pertanyaan harus singkat dan spesifik.
- Kembalikan HANYA array JSON berisi string, tanpa teks lain.

TEKS:
%s`, maxQuestions, chunkText)
	result, err := m.generateText(ctx, m.questioner, prompt)
	if err != nil {
		return nil, err
	}
	return parseQuestions(result, maxQuestions)
}

// parseQuestions recovers a JSON string array from LLM output, tolerating
// code fences and prose around the array.
func parseQuestions(output string, maxQuestions int) ([]string, error) {
	clean := strings.TrimSpace(output)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)
	start := strings.Index(clean, "[")
	end := strings.LastIndex(clean, "]")
	if start >= 0 && end > start {
		clean = clean[start : end+1]
	}

	var questions []string
	if err := json.Unmarshal([]byte(clean), &questions); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}
	uniq := make([]string, 0, len(questions))
	seen := make(map[string]bool)
	for _, q := range questions {
		normalized := strings.TrimSpace(q)
		if normalized == "" {
			continue
		}
		key := strings.ToLower(normalized)
		if seen[key] {
			continue
		}
		seen[key] = true
		uniq = append(uniq, normalized)
		if len(uniq) >= maxQuestions {
			break
		}
	}
	if len(uniq) == 0 {
		return nil, fmt.Errorf("no questions found")
	}
	return uniq, nil
}
