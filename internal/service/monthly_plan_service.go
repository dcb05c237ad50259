package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mohamedbel-ymam/school-vfr-sub000/config"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/alias"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/dto"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/model"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/repository"
)

// MonthlyPlanService is the curriculum-plan business interface.
//
// Upsert is the one stateful-merge operation of the system: the caller
// submits a natural-key tuple without knowing whether an entry already
// exists, and gets back either a fresh row or the merged existing one.
type MonthlyPlanService interface {
	Upsert(ctx context.Context, req *dto.UpsertMonthlyPlanRequest) (*dto.MonthlyPlanResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateMonthlyPlanRequest) (*dto.MonthlyPlanResponse, error)
	Delete(ctx context.Context, id uint) error
	ListMonth(ctx context.Context, req *dto.MonthlyPlanListRequest) ([]dto.MonthlyPlanResponse, error)
}

type monthlyPlanService struct {
	repo            *repository.Repository
	resolver        *alias.Resolver
	sequenceEnabled bool
	logger          *zap.Logger
}

// NewMonthlyPlanService creates a MonthlyPlanService. The sequence
// discriminator is a deployment-time switch read once from configuration,
// not probed from the schema at request time.
func NewMonthlyPlanService(cfg *config.Config, repo *repository.Repository, resolver *alias.Resolver, logger *zap.Logger) MonthlyPlanService {
	return &monthlyPlanService{
		repo:            repo,
		resolver:        resolver,
		sequenceEnabled: cfg.Feature.PlanSequenceEnabled,
		logger:          logger,
	}
}

// ────────────────────── Upsert ──────────────────────

func (s *monthlyPlanService) Upsert(ctx context.Context, req *dto.UpsertMonthlyPlanRequest) (*dto.MonthlyPlanResponse, error) {
	planDate, err := time.Parse("2006-01-02", req.PlanDate)
	if err != nil {
		return nil, invalid("plan_date", "expected YYYY-MM-DD")
	}

	degreeID, err := resolveDegreeRef(ctx, s.repo, s.resolver, req.Degree)
	if err != nil {
		return nil, err
	}

	if ok, err := s.repo.Subject.Exists(ctx, req.SubjectID); err != nil {
		return nil, err
	} else if !ok {
		return nil, invalid("subject_id", "unknown subject id")
	}

	if req.TeacherID != nil {
		if ok, err := s.repo.User.Exists(ctx, *req.TeacherID); err != nil {
			return nil, err
		} else if !ok {
			return nil, invalid("teacher_id", "unknown teacher id")
		}
	}

	entry := &model.MonthlyPlanEntry{
		PlanDate:  planDate,
		DegreeID:  degreeID,
		SubjectID: req.SubjectID,
		TeacherID: req.TeacherID,
		Title:     req.Title,
		Notes:     req.Notes,
	}
	if req.Sequence != nil {
		entry.Sequence = *req.Sequence
	}

	created, err := s.repo.MonthlyPlan.Upsert(ctx, entry, s.sequenceEnabled)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrPlanConflict
		}
		s.logger.Error("monthly plan upsert failed", zap.Error(err))
		return nil, err
	}

	// hydrate relations by primary key; the write already fixed the identity
	full, err := s.repo.MonthlyPlan.GetByID(ctx, entry.ID)
	if err != nil {
		return nil, err
	}

	resp := toMonthlyPlanResponse(full)
	resp.Created = created
	return resp, nil
}

// ────────────────────── Update ──────────────────────

// Update patches an entry in place. Unlike Upsert it never merges: moving
// the entry onto a natural key held by another row fails with
// ErrPlanConflict and leaves the original untouched.
func (s *monthlyPlanService) Update(ctx context.Context, id uint, req *dto.UpdateMonthlyPlanRequest) (*dto.MonthlyPlanResponse, error) {
	entry, err := s.repo.MonthlyPlan.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		s.logger.Error("loading monthly plan entry failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	if req.PlanDate != nil {
		planDate, err := time.Parse("2006-01-02", *req.PlanDate)
		if err != nil {
			return nil, invalid("plan_date", "expected YYYY-MM-DD")
		}
		entry.PlanDate = planDate
	}
	if req.Degree != nil {
		degreeID, err := resolveDegreeRef(ctx, s.repo, s.resolver, *req.Degree)
		if err != nil {
			return nil, err
		}
		entry.DegreeID = degreeID
	}
	if req.SubjectID != nil {
		if ok, err := s.repo.Subject.Exists(ctx, *req.SubjectID); err != nil {
			return nil, err
		} else if !ok {
			return nil, invalid("subject_id", "unknown subject id")
		}
		entry.SubjectID = *req.SubjectID
	}
	switch {
	case req.ClearTeacher:
		entry.TeacherID = nil
	case req.TeacherID != nil:
		if ok, err := s.repo.User.Exists(ctx, *req.TeacherID); err != nil {
			return nil, err
		} else if !ok {
			return nil, invalid("teacher_id", "unknown teacher id")
		}
		entry.TeacherID = req.TeacherID
	}
	if req.Title != nil {
		entry.Title = nilIfEmpty(req.Title)
	}
	if req.Notes != nil {
		entry.Notes = nilIfEmpty(req.Notes)
	}
	if req.Sequence != nil {
		entry.Sequence = *req.Sequence
	}

	entry.Degree, entry.Subject, entry.Teacher = nil, nil, nil

	if err := s.repo.MonthlyPlan.Save(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrPlanConflict
		}
		s.logger.Error("updating monthly plan entry failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	full, err := s.repo.MonthlyPlan.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toMonthlyPlanResponse(full), nil
}

// ────────────────────── Delete ──────────────────────

func (s *monthlyPlanService) Delete(ctx context.Context, id uint) error {
	found, err := s.repo.MonthlyPlan.Delete(ctx, id)
	if err != nil {
		s.logger.Error("deleting monthly plan entry failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if !found {
		return ErrPlanNotFound
	}
	return nil
}

// ────────────────────── ListMonth ──────────────────────

func (s *monthlyPlanService) ListMonth(ctx context.Context, req *dto.MonthlyPlanListRequest) ([]dto.MonthlyPlanResponse, error) {
	month, err := time.Parse("2006-01", req.Month)
	if err != nil {
		return nil, invalid("month", "expected YYYY-MM")
	}
	from := month
	to := month.AddDate(0, 1, 0)

	entries, err := s.repo.MonthlyPlan.ListRange(ctx, from, to, req.DegreeID)
	if err != nil {
		s.logger.Error("listing monthly plan entries failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.MonthlyPlanResponse, 0, len(entries))
	for i := range entries {
		result = append(result, *toMonthlyPlanResponse(&entries[i]))
	}

	return result, nil
}

// ── helpers ──

func toMonthlyPlanResponse(entry *model.MonthlyPlanEntry) *dto.MonthlyPlanResponse {
	resp := &dto.MonthlyPlanResponse{
		ID:        entry.ID,
		PlanDate:  entry.PlanDate.Format("2006-01-02"),
		DegreeID:  entry.DegreeID,
		SubjectID: entry.SubjectID,
		TeacherID: entry.TeacherID,
		Title:     entry.Title,
		Notes:     entry.Notes,
		Sequence:  entry.Sequence,
		CreatedAt: entry.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: entry.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}

	if entry.Degree != nil {
		resp.Degree = &dto.DegreeBrief{ID: entry.Degree.ID, Name: entry.Degree.Name, Slug: entry.Degree.Slug}
	}
	if entry.Subject != nil {
		resp.Subject = &dto.SubjectBrief{ID: entry.Subject.ID, Name: entry.Subject.Name}
	}
	if entry.Teacher != nil {
		resp.Teacher = &dto.UserBrief{ID: entry.Teacher.ID, Name: entry.Teacher.FullName()}
	}

	return resp
}
