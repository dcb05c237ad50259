package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/model"
)

// ErrDuplicateKey signals a natural-key uniqueness violation on
// monthly_plan_entries. The service layer maps it to a 409.
var ErrDuplicateKey = errors.New("monthly plan natural key already taken")

// MonthlyPlanRepository is the monthly-plan data access interface.
type MonthlyPlanRepository interface {
	// Upsert inserts a new entry or merges title/notes into the entry
	// holding the same natural key. When assignSequence is true and
	// entry.Sequence is zero, the next free sequence for the key prefix is
	// assigned; otherwise a zero sequence is pinned to 1.
	//
	// Concurrent upserts for the same (plan_date, degree, subject, teacher)
	// are serialized by a per-key advisory lock held for the duration of
	// the transaction; the unique index is the backstop. Returns whether a
	// new row was inserted.
	Upsert(ctx context.Context, entry *model.MonthlyPlanEntry, assignSequence bool) (bool, error)
	GetByID(ctx context.Context, id uint) (*model.MonthlyPlanEntry, error)
	Save(ctx context.Context, entry *model.MonthlyPlanEntry) error
	Delete(ctx context.Context, id uint) (bool, error)
	ListRange(ctx context.Context, from, to time.Time, degreeID *uint) ([]model.MonthlyPlanEntry, error)
}

type monthlyPlanRepo struct{ db *gorm.DB }

// NewMonthlyPlanRepo creates a MonthlyPlanRepository.
func NewMonthlyPlanRepo(db *gorm.DB) MonthlyPlanRepository {
	return &monthlyPlanRepo{db: db}
}

// naturalKeyLock derives the advisory-lock key for an entry's natural key
// prefix. A missing teacher hashes as 0, matching the COALESCE in the
// unique index.
func naturalKeyLock(e *model.MonthlyPlanEntry) string {
	var teacher uint
	if e.TeacherID != nil {
		teacher = *e.TeacherID
	}
	return fmt.Sprintf("monthly_plan:%s:%d:%d:%d",
		e.PlanDate.Format("2006-01-02"), e.DegreeID, e.SubjectID, teacher)
}

func (r *monthlyPlanRepo) Upsert(ctx context.Context, entry *model.MonthlyPlanEntry, assignSequence bool) (bool, error) {
	created := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Serialize writers targeting the same natural key. Released at
		// commit/rollback.
		if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", naturalKeyLock(entry)).Error; err != nil {
			return err
		}

		if entry.Sequence == 0 {
			if assignSequence {
				var maxSeq int
				if err := tx.Model(&model.MonthlyPlanEntry{}).
					Where("plan_date = ? AND degree_id = ? AND subject_id = ? AND COALESCE(teacher_id, 0) = ?",
						entry.PlanDate, entry.DegreeID, entry.SubjectID, coalesceTeacher(entry.TeacherID)).
					Select("COALESCE(MAX(sequence), 0)").Scan(&maxSeq).Error; err != nil {
					return err
				}
				entry.Sequence = maxSeq + 1
			} else {
				entry.Sequence = 1
			}
		}

		var existing model.MonthlyPlanEntry
		err := tx.Where("plan_date = ? AND degree_id = ? AND subject_id = ? AND COALESCE(teacher_id, 0) = ? AND sequence = ?",
			entry.PlanDate, entry.DegreeID, entry.SubjectID, coalesceTeacher(entry.TeacherID), entry.Sequence).
			First(&existing).Error

		switch {
		case err == nil:
			// merge: provided title/notes overwrite, omitted ones stay
			updates := map[string]interface{}{"updated_at": time.Now()}
			if entry.Title != nil {
				existing.Title = entry.Title
				updates["title"] = entry.Title
			}
			if entry.Notes != nil {
				existing.Notes = entry.Notes
				updates["notes"] = entry.Notes
			}
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return err
			}
			*entry = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
			created = true
		default:
			return err
		}

		return nil
	})

	if isUniqueViolation(err) {
		return false, ErrDuplicateKey
	}
	return created, err
}

func (r *monthlyPlanRepo) GetByID(ctx context.Context, id uint) (*model.MonthlyPlanEntry, error) {
	var entry model.MonthlyPlanEntry
	err := r.db.WithContext(ctx).
		Preload("Degree").Preload("Subject").Preload("Teacher").
		First(&entry, id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *monthlyPlanRepo) Save(ctx context.Context, entry *model.MonthlyPlanEntry) error {
	err := r.db.WithContext(ctx).Omit("Degree", "Subject", "Teacher").Save(entry).Error
	if isUniqueViolation(err) {
		return ErrDuplicateKey
	}
	return err
}

func (r *monthlyPlanRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.MonthlyPlanEntry{}, id)
	return res.RowsAffected > 0, res.Error
}

func (r *monthlyPlanRepo) ListRange(ctx context.Context, from, to time.Time, degreeID *uint) ([]model.MonthlyPlanEntry, error) {
	q := r.db.WithContext(ctx).
		Preload("Degree").Preload("Subject").Preload("Teacher").
		Where("plan_date >= ? AND plan_date < ?", from, to)
	if degreeID != nil {
		q = q.Where("degree_id = ?", *degreeID)
	}

	var entries []model.MonthlyPlanEntry
	err := q.Order("plan_date ASC, degree_id ASC, sequence ASC, id ASC").Find(&entries).Error
	return entries, err
}

func coalesceTeacher(teacherID *uint) uint {
	if teacherID == nil {
		return 0
	}
	return *teacherID
}

// isUniqueViolation reports whether err is a PostgreSQL 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
