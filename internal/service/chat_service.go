package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/pustaka-ai/pustaka/internal/ai"
	"github.com/pustaka-ai/pustaka/internal/model"
	appErr "github.com/pustaka-ai/pustaka/internal/pkg/errors"
	"github.com/pustaka-ai/pustaka/internal/repo"
)

// insufficientContextAnswer is returned verbatim when retrieval cannot
// ground an answer; the model is never asked to guess.
const insufficientContextAnswer = "Maaf, saya tidak menemukan informasi yang cukup relevan dalam koleksi untuk menjawab pertanyaan ini."

const maxQuoteChars = 280

type ChatResult struct {
	ConversationID int64                 `json:"conversation_id"`
	Answer         string                `json:"answer"`
	Grounded       bool                  `json:"grounded"`
	References     []model.ChatReference `json:"references"`
}

type ChatService struct {
	search  *SearchService
	manager *ai.Manager
	convs   *repo.ConversationRepo
}

func NewChatService(search *SearchService, manager *ai.Manager, convs *repo.ConversationRepo) *ChatService {
	return &ChatService{search: search, manager: manager, convs: convs}
}

// Chat answers one user turn with retrieval-grounded generation and
// persists both sides of the exchange. conversationID 0 starts a new
// conversation titled after the message.
func (s *ChatService) Chat(ctx context.Context, userID, conversationID int64, message string) (*ChatResult, error) {
	logger := logutil.GetLogger(ctx).With(zap.Int64("user_id", userID))
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, appErr.ErrInvalid
	}

	conv, err := s.ensureConversation(ctx, userID, conversationID, message)
	if err != nil {
		return nil, err
	}
	now := time.Now().Unix()
	if err := s.convs.AddMessage(ctx, &model.ChatMessage{
		ConversationID: conv.ID,
		Role:           "user",
		Message:        message,
		Ctime:          now,
	}); err != nil {
		return nil, err
	}

	searchResult, err := s.search.Search(ctx, message)
	if err != nil {
		return nil, err
	}

	answer := insufficientContextAnswer
	grounded := false
	if searchResult.Relevant && len(searchResult.Results) > 0 {
		answer, err = s.manager.Answer(ctx, buildAnswerPrompt(message, searchResult.Results))
		if err != nil {
			logger.Error("failed to generate answer", zap.Error(err))
			return nil, err
		}
		grounded = true
	}

	assistantMsg := &model.ChatMessage{
		ConversationID: conv.ID,
		Role:           "assistant",
		Message:        answer,
		Ctime:          time.Now().Unix(),
	}
	if err := s.convs.AddMessage(ctx, assistantMsg); err != nil {
		return nil, err
	}
	var refs []model.ChatReference
	if grounded {
		refs = buildReferences(assistantMsg.ID, searchResult.Results)
		if err := s.convs.AddReferences(ctx, refs); err != nil {
			return nil, err
		}
	}
	if err := s.convs.Touch(ctx, conv.ID, time.Now().Unix()); err != nil {
		logger.Warn("failed to touch conversation", zap.Error(err))
	}
	return &ChatResult{
		ConversationID: conv.ID,
		Answer:         answer,
		Grounded:       grounded,
		References:     refs,
	}, nil
}

func (s *ChatService) History(ctx context.Context, userID, conversationID int64) ([]*model.ChatMessage, error) {
	conv, err := s.convs.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv.UserID != userID {
		return nil, appErr.ErrForbidden
	}
	return s.convs.ListMessages(ctx, conversationID)
}

func (s *ChatService) ListConversations(ctx context.Context, userID int64) ([]*model.Conversation, error) {
	return s.convs.ListByUser(ctx, userID)
}

func (s *ChatService) ensureConversation(ctx context.Context, userID, conversationID int64, message string) (*model.Conversation, error) {
	if conversationID != 0 {
		conv, err := s.convs.GetByID(ctx, conversationID)
		if err != nil {
			return nil, err
		}
		if conv.UserID != userID {
			return nil, appErr.ErrForbidden
		}
		return conv, nil
	}
	now := time.Now().Unix()
	conv := &model.Conversation{
		UserID: userID,
		Title:  conversationTitle(message),
		Ctime:  now,
		Mtime:  now,
	}
	if err := s.convs.Create(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

func conversationTitle(message string) string {
	runes := []rune(message)
	if len(runes) <= 60 {
		return message
	}
	return string(runes[:60]) + "..."
}

// buildAnswerPrompt assembles the grounded generation prompt: numbered
// context excerpts with their source, then the question.
func buildAnswerPrompt(message string, results []model.ScoredChunk) string {
	var sb strings.Builder
	sb.WriteString(`Anda adalah asisten perpustakaan digital.
Jawab pertanyaan pengguna HANYA berdasarkan konteks di bawah.
- Gunakan bahasa yang sama dengan pertanyaan.
- Sebutkan nomor sumber yang Anda gunakan, misalnya [1].
- Jika konteks tidak memuat jawabannya, katakan demikian.

KONTEKS:
`)
	for i, sc := range results {
		source := sc.Document.Title
		if sc.Chunk.PageNumber > 0 {
			source = fmt.Sprintf("%s, hlm. %d", source, sc.Chunk.PageNumber)
		}
		sb.WriteString(fmt.Sprintf("[%d] (%s)\n%s\n\n", i+1, source, sc.Chunk.Content))
	}
	sb.WriteString("PERTANYAAN:\n")
	sb.WriteString(message)
	return sb.String()
}

func buildReferences(messageID int64, results []model.ScoredChunk) []model.ChatReference {
	refs := make([]model.ChatReference, 0, len(results))
	for _, sc := range results {
		refs = append(refs, model.ChatReference{
			MessageID:  messageID,
			DocumentID: sc.Document.ID,
			ChunkID:    sc.Chunk.ID,
			Score:      sc.HybridScore,
			Quote:      truncateQuote(sc.Chunk.Content),
			PageNumber: sc.Chunk.PageNumber,
		})
	}
	return refs
}

func truncateQuote(content string) string {
	runes := []rune(content)
	if len(runes) <= maxQuoteChars {
		return content
	}
	return string(runes[:maxQuoteChars]) + "..."
}
