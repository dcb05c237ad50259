package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/alias"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/dto"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/model"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/repository"
)

// TimetableService is the weekly-slot business interface.
type TimetableService interface {
	Create(ctx context.Context, req *dto.CreateWeeklySlotRequest) (*dto.WeeklySlotResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateWeeklySlotRequest) (*dto.WeeklySlotResponse, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, req *dto.WeeklySlotListRequest) ([]dto.WeeklySlotResponse, int64, error)
}

type timetableService struct {
	repo     *repository.Repository
	resolver *alias.Resolver
	logger   *zap.Logger
}

// NewTimetableService creates a TimetableService.
func NewTimetableService(repo *repository.Repository, resolver *alias.Resolver, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, resolver: resolver, logger: logger}
}

// resolveDegreeRef turns a numeric-or-alias degree reference into a
// verified canonical id.
func (s *timetableService) resolveDegreeRef(ctx context.Context, ref dto.DegreeRef) (uint, error) {
	return resolveDegreeRef(ctx, s.repo, s.resolver, ref)
}

func resolveDegreeRef(ctx context.Context, repo *repository.Repository, resolver *alias.Resolver, ref dto.DegreeRef) (uint, error) {
	if ref.ID != 0 {
		ok, err := repo.Degree.Exists(ctx, ref.ID)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, invalid("degree_id", "unknown degree id")
		}
		return ref.ID, nil
	}
	if id, ok := resolver.ResolveDegree(ref.Alias); ok {
		return id, nil
	}
	return 0, invalid("degree_id", "unknown degree alias")
}

// ────────────────────── Create ──────────────────────

func (s *timetableService) Create(ctx context.Context, req *dto.CreateWeeklySlotRequest) (*dto.WeeklySlotResponse, error) {
	degreeID, err := s.resolveDegreeRef(ctx, req.Degree)
	if err != nil {
		return nil, err
	}

	subject, err := s.repo.Subject.GetByID(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid("subject_id", "unknown subject id")
		}
		return nil, err
	}

	teacher, err := s.repo.User.GetByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid("teacher_id", "unknown teacher id")
		}
		return nil, err
	}

	if req.RoomID != nil {
		ok, err := s.repo.Room.Exists(ctx, *req.RoomID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, invalid("room_id", "unknown room id")
		}
	}

	if verr := validateTimeExpression(req.Period, req.StartTime, req.EndTime); verr != nil {
		return nil, verr
	}

	slot := &model.WeeklySlot{
		DegreeID:  degreeID,
		SubjectID: req.SubjectID,
		TeacherID: req.TeacherID,
		RoomID:    req.RoomID,
		DayOfWeek: req.DayOfWeek,
		Period:    req.Period,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if req.Title != nil && *req.Title != "" {
		slot.Title = *req.Title
	} else {
		slot.Title = slotTitle(slot, subject, teacher)
	}

	if err := s.repo.WeeklySlot.Create(ctx, slot); err != nil {
		s.logger.Error("creating weekly slot failed", zap.Error(err))
		return nil, err
	}

	// reload with associations for the response
	created, err := s.repo.WeeklySlot.GetByID(ctx, slot.ID)
	if err != nil {
		return nil, err
	}

	return toWeeklySlotResponse(created), nil
}

// ────────────────────── Update ──────────────────────

func (s *timetableService) Update(ctx context.Context, id uint, req *dto.UpdateWeeklySlotRequest) (*dto.WeeklySlotResponse, error) {
	slot, err := s.repo.WeeklySlot.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("loading weekly slot failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	timeTouched := false

	if req.Degree != nil {
		degreeID, err := s.resolveDegreeRef(ctx, *req.Degree)
		if err != nil {
			return nil, err
		}
		slot.DegreeID = degreeID
	}
	if req.SubjectID != nil {
		ok, err := s.repo.Subject.Exists(ctx, *req.SubjectID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, invalid("subject_id", "unknown subject id")
		}
		slot.SubjectID = *req.SubjectID
		timeTouched = true
	}
	if req.TeacherID != nil {
		ok, err := s.repo.User.Exists(ctx, *req.TeacherID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, invalid("teacher_id", "unknown teacher id")
		}
		slot.TeacherID = *req.TeacherID
		timeTouched = true
	}
	if req.RoomID != nil {
		ok, err := s.repo.Room.Exists(ctx, *req.RoomID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, invalid("room_id", "unknown room id")
		}
		slot.RoomID = req.RoomID
	}
	if req.DayOfWeek != nil {
		slot.DayOfWeek = *req.DayOfWeek
		timeTouched = true
	}
	if req.Period != nil {
		slot.Period = nilIfEmpty(req.Period)
		timeTouched = true
	}
	if req.StartTime != nil {
		slot.StartTime = nilIfEmpty(req.StartTime)
		timeTouched = true
	}
	if req.EndTime != nil {
		slot.EndTime = nilIfEmpty(req.EndTime)
		timeTouched = true
	}

	// the invariant is checked on the merged row: a patch that strips the
	// last remaining time form is rejected before anything is written
	if verr := validateTimeExpression(slot.Period, slot.StartTime, slot.EndTime); verr != nil {
		return nil, verr
	}

	switch {
	case req.Title != nil && *req.Title != "":
		slot.Title = *req.Title
	case timeTouched:
		subject, err := s.repo.Subject.GetByID(ctx, slot.SubjectID)
		if err != nil {
			return nil, err
		}
		teacher, err := s.repo.User.GetByID(ctx, slot.TeacherID)
		if err != nil {
			return nil, err
		}
		slot.Title = slotTitle(slot, subject, teacher)
	}

	if err := s.repo.WeeklySlot.Save(ctx, slot); err != nil {
		s.logger.Error("updating weekly slot failed", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.WeeklySlot.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return toWeeklySlotResponse(updated), nil
}

// ────────────────────── Delete ──────────────────────

func (s *timetableService) Delete(ctx context.Context, id uint) error {
	found, err := s.repo.WeeklySlot.Delete(ctx, id)
	if err != nil {
		s.logger.Error("deleting weekly slot failed", zap.Uint("id", id), zap.Error(err))
		return err
	}
	if !found {
		return ErrSlotNotFound
	}
	return nil
}

// ────────────────────── List ──────────────────────

func (s *timetableService) List(ctx context.Context, req *dto.WeeklySlotListRequest) ([]dto.WeeklySlotResponse, int64, error) {
	slots, err := s.repo.WeeklySlot.List(ctx, repository.WeeklySlotFilter{
		DegreeID:  req.DegreeID,
		TeacherID: req.TeacherID,
		DayOfWeek: req.DayOfWeek,
	})
	if err != nil {
		s.logger.Error("listing weekly slots failed", zap.Error(err))
		return nil, 0, err
	}

	sortSlotsCanonical(slots)

	total := int64(len(slots))

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = 50
	}
	start := (page - 1) * pageSize
	if start > len(slots) {
		start = len(slots)
	}
	end := start + pageSize
	if end > len(slots) {
		end = len(slots)
	}
	pageSlots := slots[start:end]

	result := make([]dto.WeeklySlotResponse, 0, len(pageSlots))
	for i := range pageSlots {
		result = append(result, *toWeeklySlotResponse(&pageSlots[i]))
	}

	return result, total, nil
}

// sortSlotsCanonical applies the canonical weekly-grid order: degree
// ascending, day-of-week ascending, then the derived time key. The key is
// recomputed here on every call; the stored time fields stay the single
// source of truth.
func sortSlotsCanonical(slots []model.WeeklySlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		a, b := &slots[i], &slots[j]
		if a.DegreeID != b.DegreeID {
			return a.DegreeID < b.DegreeID
		}
		if a.DayOfWeek != b.DayOfWeek {
			return a.DayOfWeek < b.DayOfWeek
		}
		ka, kb := sortKeyFor(a), sortKeyFor(b)
		if ka != kb {
			return ka.less(kb)
		}
		return a.ID < b.ID
	})
}

// ── helpers ──

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func toWeeklySlotResponse(slot *model.WeeklySlot) *dto.WeeklySlotResponse {
	resp := &dto.WeeklySlotResponse{
		ID:        slot.ID,
		DegreeID:  slot.DegreeID,
		SubjectID: slot.SubjectID,
		TeacherID: slot.TeacherID,
		RoomID:    slot.RoomID,
		DayOfWeek: slot.DayOfWeek,
		Period:    slot.Period,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Title:     slot.Title,
		CreatedAt: slot.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: slot.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}

	if slot.Degree != nil {
		resp.Degree = &dto.DegreeBrief{ID: slot.Degree.ID, Name: slot.Degree.Name, Slug: slot.Degree.Slug}
	}
	if slot.Subject != nil {
		resp.Subject = &dto.SubjectBrief{ID: slot.Subject.ID, Name: slot.Subject.Name}
	}
	if slot.Teacher != nil {
		resp.Teacher = &dto.UserBrief{ID: slot.Teacher.ID, Name: slot.Teacher.FullName()}
	}
	if slot.Room != nil {
		resp.Room = &dto.RoomBrief{ID: slot.Room.ID, Name: slot.Room.Name}
	}

	return resp
}
