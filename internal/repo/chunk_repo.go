package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/didi/gendry/builder"
	"github.com/pgvector/pgvector-go"

	"github.com/pustaka-ai/pustaka/internal/model"
	"github.com/pustaka-ai/pustaka/internal/pkg/dbutil"
	"github.com/pustaka-ai/pustaka/internal/queryproc"
	"github.com/pustaka-ai/pustaka/internal/retrieval"
)

// MinCandidateContentChars keeps trivially short chunks (stray headings,
// page numbers) out of the retrieval pool.
const MinCandidateContentChars = 100

type ChunkRepo struct {
	db *sql.DB
}

func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

// ReplaceForDocument atomically swaps a document's chunks for a fresh set.
// Reprocessing a document never leaves a mixed generation behind.
func (r *ChunkRepo) ReplaceForDocument(ctx context.Context, documentID int64, chunks []model.Chunk) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM chunks WHERE document_id = $1`, documentID); err != nil {
		return err
	}
	const query = `
		INSERT INTO chunks (
			document_id, chunk_index, content, token_count, kind,
			page_number, section_title, keywords, embedding, questions,
			question_embedding, ctime
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	for i := range chunks {
		ch := &chunks[i]
		keywords, err := json.Marshal(ch.Keywords)
		if err != nil {
			return err
		}
		questions, err := json.Marshal(ch.Questions)
		if err != nil {
			return err
		}
		var embedding interface{}
		if ch.Embedding != nil {
			embedding = pgvector.NewVector(ch.Embedding)
		}
		var questionEmbedding interface{}
		if ch.QuestionEmbedding != nil {
			questionEmbedding = pgvector.NewVector(ch.QuestionEmbedding)
		}
		if err := tx.QueryRowContext(ctx, query,
			documentID, ch.Index, ch.Content, ch.TokenCount, ch.Kind,
			ch.PageNumber, ch.SectionTitle, keywords, embedding, questions,
			questionEmbedding, ch.Ctime,
		).Scan(&ch.ID); err != nil {
			return err
		}
		ch.DocumentID = documentID
	}
	return tx.Commit()
}

// ListByDocument returns a document's chunks in order, without the
// embedding vectors.
func (r *ChunkRepo) ListByDocument(ctx context.Context, documentID int64) ([]model.Chunk, error) {
	where := map[string]interface{}{
		"document_id": documentID,
		"_orderby":    "chunk_index asc",
	}
	columns := []string{
		"id", "document_id", "chunk_index", "content", "token_count",
		"kind", "page_number", "section_title", "keywords", "questions",
		"ctime",
	}
	sqlStr, args, err := builder.BuildSelect("chunks", where, columns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var chunks []model.Chunk
	for rows.Next() {
		var ch model.Chunk
		var keywords, questions []byte
		if err := rows.Scan(
			&ch.ID, &ch.DocumentID, &ch.Index, &ch.Content, &ch.TokenCount,
			&ch.Kind, &ch.PageNumber, &ch.SectionTitle, &keywords,
			&questions, &ch.Ctime,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(keywords, &ch.Keywords); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(questions, &ch.Questions); err != nil {
			return nil, err
		}
		chunks = append(chunks, ch)
	}
	return chunks, rows.Err()
}

func (r *ChunkRepo) DeleteByDocument(ctx context.Context, documentID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM chunks WHERE document_id = $1`, documentID)
	return err
}

func (r *ChunkRepo) CountByDocument(ctx context.Context, documentID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM chunks WHERE document_id = $1`, documentID,
	).Scan(&count)
	return count, err
}

// Candidates fetches the chunks nearest to the query embedding, joined with
// their documents. Only chunks with an embedding, enough content, and a
// real document title qualify; metadata filters narrow the pool further.
func (r *ChunkRepo) Candidates(ctx context.Context, embedding []float32, filters []queryproc.Filter, limit int) ([]retrieval.Candidate, error) {
	conds := []string{
		"c.embedding IS NOT NULL",
		fmt.Sprintf("length(c.content) >= %d", MinCandidateContentChars),
		"d.title <> ''",
		"d.title <> ?",
	}
	args := []interface{}{model.PlaceholderTitle}
	for _, f := range filters {
		cond, fargs := f.SQL()
		conds = append(conds, cond)
		args = append(args, fargs...)
	}
	query := `
		SELECT
			c.id, c.document_id, c.chunk_index, c.content, c.token_count,
			c.kind, c.page_number, c.section_title, c.keywords, c.questions,
			c.embedding, c.question_embedding::text, c.ctime,
			d.id, d.title, d.creator, d.keywords, d.description, d.publisher,
			d.contributor, d.date, d.type, d.format, d.identifier, d.source,
			d.language, d.relation, d.coverage, d.rights, d.doi, d.abstract,
			d.citation_count, d.file_path, d.processing_status,
			d.processing_error, d.is_private, d.is_metadata_complete,
			d.ctime, d.mtime
		FROM chunks c
		JOIN documents d ON c.document_id = d.id
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY c.embedding <=> ?
		LIMIT ?
	`
	args = append(args, pgvector.NewVector(embedding), limit)
	query, args = dbutil.Finalize(query, args)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var candidates []retrieval.Candidate
	for rows.Next() {
		var ch model.Chunk
		var doc model.Document
		var keywords, questions []byte
		var chunkEmb pgvector.Vector
		var questionEmb sql.NullString
		if err := rows.Scan(
			&ch.ID, &ch.DocumentID, &ch.Index, &ch.Content, &ch.TokenCount,
			&ch.Kind, &ch.PageNumber, &ch.SectionTitle, &keywords,
			&questions, &chunkEmb, &questionEmb, &ch.Ctime,
			&doc.ID, &doc.Title, &doc.Creator, &doc.Keywords,
			&doc.Description, &doc.Publisher, &doc.Contributor, &doc.Date,
			&doc.Type, &doc.Format, &doc.Identifier, &doc.Source,
			&doc.Language, &doc.Relation, &doc.Coverage, &doc.Rights,
			&doc.DOI, &doc.Abstract, &doc.CitationCount, &doc.FilePath,
			&doc.ProcessingStatus, &doc.ProcessingError, &doc.IsPrivate,
			&doc.IsMetadataComplete, &doc.Ctime, &doc.Mtime,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(keywords, &ch.Keywords); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(questions, &ch.Questions); err != nil {
			return nil, err
		}
		ch.Embedding = chunkEmb.Slice()
		if questionEmb.Valid {
			var v pgvector.Vector
			if err := v.Scan(questionEmb.String); err != nil {
				return nil, err
			}
			ch.QuestionEmbedding = v.Slice()
		}
		chunk := ch
		document := doc
		candidates = append(candidates, retrieval.Candidate{Chunk: &chunk, Document: &document})
	}
	return candidates, rows.Err()
}
