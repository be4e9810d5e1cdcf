package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/pustaka-ai/pustaka/internal/model"
	"github.com/pustaka-ai/pustaka/internal/pkg/dbutil"
	appErr "github.com/pustaka-ai/pustaka/internal/pkg/errors"
)

var documentColumns = []string{
	"id", "title", "creator", "keywords", "description", "publisher",
	"contributor", "date", "type", "format", "identifier", "source",
	"language", "relation", "coverage", "rights", "doi", "abstract",
	"citation_count", "file_path", "processing_status", "processing_error",
	"is_private", "is_metadata_complete", "ctime", "mtime",
}

type DocumentRepo struct {
	db *sql.DB
}

func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

func (r *DocumentRepo) Create(ctx context.Context, doc *model.Document) error {
	const query = `
		INSERT INTO documents (
			title, creator, keywords, description, publisher, contributor,
			date, type, format, identifier, source, language, relation,
			coverage, rights, doi, abstract, citation_count, file_path,
			processing_status, processing_error, is_private,
			is_metadata_complete, ctime, mtime
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25
		) RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		doc.Title, doc.Creator, doc.Keywords, doc.Description, doc.Publisher,
		doc.Contributor, doc.Date, doc.Type, doc.Format, doc.Identifier,
		doc.Source, doc.Language, doc.Relation, doc.Coverage, doc.Rights,
		doc.DOI, doc.Abstract, doc.CitationCount, doc.FilePath,
		doc.ProcessingStatus, doc.ProcessingError, doc.IsPrivate,
		doc.IsMetadataComplete, doc.Ctime, doc.Mtime,
	).Scan(&doc.ID)
}

func (r *DocumentRepo) GetByID(ctx context.Context, id int64) (*model.Document, error) {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildSelect("documents", where, documentColumns)
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
	return scanDocument(rows)
}

func (r *DocumentRepo) List(ctx context.Context, offset, limit int) ([]*model.Document, error) {
	where := map[string]interface{}{
		"_orderby": "ctime desc",
		"_limit":   []uint{uint(offset), uint(limit)},
	}
	sqlStr, args, err := builder.BuildSelect("documents", where, documentColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var docs []*model.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// ListByStatus returns the oldest documents in the given processing state,
// used by the ingestion job to pick up pending uploads.
func (r *DocumentRepo) ListByStatus(ctx context.Context, status string, limit int) ([]*model.Document, error) {
	where := map[string]interface{}{
		"processing_status": status,
		"_orderby":          "ctime asc",
		"_limit":            []uint{0, uint(limit)},
	}
	sqlStr, args, err := builder.BuildSelect("documents", where, documentColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var docs []*model.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (r *DocumentRepo) UpdateMetadata(ctx context.Context, doc *model.Document) error {
	where := map[string]interface{}{"id": doc.ID}
	update := map[string]interface{}{
		"title":                doc.Title,
		"creator":              doc.Creator,
		"keywords":             doc.Keywords,
		"description":          doc.Description,
		"publisher":            doc.Publisher,
		"contributor":          doc.Contributor,
		"date":                 doc.Date,
		"type":                 doc.Type,
		"format":               doc.Format,
		"identifier":           doc.Identifier,
		"source":               doc.Source,
		"language":             doc.Language,
		"relation":             doc.Relation,
		"coverage":             doc.Coverage,
		"rights":               doc.Rights,
		"doi":                  doc.DOI,
		"abstract":             doc.Abstract,
		"citation_count":       doc.CitationCount,
		"is_private":           doc.IsPrivate,
		"is_metadata_complete": doc.IsMetadataComplete,
		"mtime":                doc.Mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("documents", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *DocumentRepo) UpdateProcessing(ctx context.Context, id int64, status, processingError string, mtime int64) error {
	where := map[string]interface{}{"id": id}
	update := map[string]interface{}{
		"processing_status": status,
		"processing_error":  processingError,
		"mtime":             mtime,
	}
	sqlStr, args, err := builder.BuildUpdate("documents", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

func (r *DocumentRepo) Delete(ctx context.Context, id int64) error {
	where := map[string]interface{}{"id": id}
	sqlStr, args, err := builder.BuildDelete("documents", where)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row rowScanner) (*model.Document, error) {
	var doc model.Document
	if err := row.Scan(
		&doc.ID, &doc.Title, &doc.Creator, &doc.Keywords, &doc.Description,
		&doc.Publisher, &doc.Contributor, &doc.Date, &doc.Type, &doc.Format,
		&doc.Identifier, &doc.Source, &doc.Language, &doc.Relation,
		&doc.Coverage, &doc.Rights, &doc.DOI, &doc.Abstract,
		&doc.CitationCount, &doc.FilePath, &doc.ProcessingStatus,
		&doc.ProcessingError, &doc.IsPrivate, &doc.IsMetadataComplete,
		&doc.Ctime, &doc.Mtime,
	); err != nil {
		return nil, err
	}
	return &doc, nil
}
