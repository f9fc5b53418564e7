package project

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/pamoja-lab/cdf-tracker/dao/model"
)

// UpsertResult reports whether an upsert inserted a new row or replaced an
// existing one.
type UpsertResult int

const (
	ResultCreated UpsertResult = iota + 1
	ResultUpdated
)

func (r UpsertResult) String() string {
	if r == ResultCreated {
		return "created"
	}
	return "updated"
}

// Upsert resolves the record against existing rows by the natural key
// (title, constituency_code, source_doc_ref) and either inserts it or fully
// replaces the matched row. A nil source_doc_ref matches only rows whose
// source_doc_ref is also null, not any row.
//
// Unlike the award patch flow this is full-replace: every field of the
// incoming record wins, so re-importing the same file is idempotent.
func (s *Service) Upsert(ctx context.Context, rec *model.Project) (UpsertResult, error) {
	if err := s.constituencyExists(ctx, rec.ConstituencyCode); err != nil {
		return 0, err
	}

	return s.upsertTx(ctx, rec)
}

func (s *Service) upsertTx(ctx context.Context, rec *model.Project) (UpsertResult, error) {
	var result UpsertResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("title = ? AND constituency_code = ?", rec.Title, rec.ConstituencyCode)
		if rec.SourceDocRef != nil {
			q = q.Where("source_doc_ref = ?", *rec.SourceDocRef)
		} else {
			q = q.Where("source_doc_ref IS NULL")
		}

		var existing model.Project
		err := q.Take(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			rec.LastUpdated = time.Now().UTC()
			result = ResultCreated
			return tx.Create(rec).Error
		case err != nil:
			return err
		}

		rec.ID = existing.ID
		rec.LastUpdated = time.Now().UTC()
		result = ResultUpdated
		return tx.Save(rec).Error
	})
	if err != nil {
		return 0, err
	}
	return result, nil
}
