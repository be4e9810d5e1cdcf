package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/pustaka-ai/pustaka/internal/model"
	"github.com/pustaka-ai/pustaka/internal/pkg/dbutil"
	appErr "github.com/pustaka-ai/pustaka/internal/pkg/errors"
)

type ConversationRepo struct {
	db *sql.DB
}

func NewConversationRepo(db *sql.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

func (r *ConversationRepo) Create(ctx context.Context, conv *model.Conversation) error {
	const query = `
		INSERT INTO conversations (user_id, title, ctime, mtime)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		conv.UserID, conv.Title, conv.Ctime, conv.Mtime,
	).Scan(&conv.ID)
}

func (r *ConversationRepo) GetByID(ctx context.Context, id int64) (*model.Conversation, error) {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildSelect("conversations", where, []string{"id", "user_id", "title", "ctime", "mtime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var conv model.Conversation
	if err := rows.Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.Ctime, &conv.Mtime); err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *ConversationRepo) ListByUser(ctx context.Context, userID int64) ([]*model.Conversation, error) {
	where := map[string]interface{}{
		"user_id":  userID,
		"_orderby": "mtime desc",
	}
	sqlStr, args, err := builder.BuildSelect("conversations", where, []string{"id", "user_id", "title", "ctime", "mtime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var convs []*model.Conversation
	for rows.Next() {
		var conv model.Conversation
		if err := rows.Scan(&conv.ID, &conv.UserID, &conv.Title, &conv.Ctime, &conv.Mtime); err != nil {
			return nil, err
		}
		convs = append(convs, &conv)
	}
	return convs, rows.Err()
}

func (r *ConversationRepo) Touch(ctx context.Context, id int64, mtime int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE conversations SET mtime = $1 WHERE id = $2`, mtime, id)
	return err
}

func (r *ConversationRepo) AddMessage(ctx context.Context, msg *model.ChatMessage) error {
	const query = `
		INSERT INTO chat_messages (conversation_id, role, message, ctime)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		msg.ConversationID, msg.Role, msg.Message, msg.Ctime,
	).Scan(&msg.ID)
}

func (r *ConversationRepo) ListMessages(ctx context.Context, conversationID int64) ([]*model.ChatMessage, error) {
	where := map[string]interface{}{
		"conversation_id": conversationID,
		"_orderby":        "ctime asc",
	}
	sqlStr, args, err := builder.BuildSelect("chat_messages", where, []string{"id", "conversation_id", "role", "message", "ctime"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var msgs []*model.ChatMessage
	for rows.Next() {
		var msg model.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Role, &msg.Message, &msg.Ctime); err != nil {
			return nil, err
		}
		msgs = append(msgs, &msg)
	}
	return msgs, rows.Err()
}

func (r *ConversationRepo) AddReferences(ctx context.Context, refs []model.ChatReference) error {
	if len(refs) == 0 {
		return nil
	}
	const query = `
		INSERT INTO chat_references (message_id, document_id, chunk_id, score, quote, page_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	for i := range refs {
		ref := &refs[i]
		if err := r.db.QueryRowContext(ctx, query,
			ref.MessageID, ref.DocumentID, ref.ChunkID, ref.Score, ref.Quote, ref.PageNumber,
		).Scan(&ref.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *ConversationRepo) ListReferences(ctx context.Context, messageID int64) ([]model.ChatReference, error) {
	where := map[string]interface{}{
		"message_id": messageID,
		"_orderby":   "score desc",
	}
	sqlStr, args, err := builder.BuildSelect("chat_references", where, []string{"id", "message_id", "document_id", "chunk_id", "score", "quote", "page_number"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var refs []model.ChatReference
	for rows.Next() {
		var ref model.ChatReference
		if err := rows.Scan(&ref.ID, &ref.MessageID, &ref.DocumentID, &ref.ChunkID, &ref.Score, &ref.Quote, &ref.PageNumber); err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
