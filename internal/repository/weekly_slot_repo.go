package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/model"
)

// WeeklySlotFilter holds the equality predicates of the listing endpoint.
type WeeklySlotFilter struct {
	DegreeID  *uint
	TeacherID *uint
	DayOfWeek *int
}

// WeeklySlotRepository is the weekly-slot data access interface.
type WeeklySlotRepository interface {
	Create(ctx context.Context, slot *model.WeeklySlot) error
	GetByID(ctx context.Context, id uint) (*model.WeeklySlot, error)
	Save(ctx context.Context, slot *model.WeeklySlot) error
	Delete(ctx context.Context, id uint) (bool, error)
	// List returns every matching slot in a stable base order (degree,
	// day-of-week, explicit start time). The canonical grid ordering adds a
	// derived key that is never persisted, so the service layer finishes the
	// sort and paginates in memory.
	List(ctx context.Context, filter WeeklySlotFilter) ([]model.WeeklySlot, error)
}

type weeklySlotRepo struct{ db *gorm.DB }

// NewWeeklySlotRepo creates a WeeklySlotRepository.
func NewWeeklySlotRepo(db *gorm.DB) WeeklySlotRepository {
	return &weeklySlotRepo{db: db}
}

func (r *weeklySlotRepo) Create(ctx context.Context, slot *model.WeeklySlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *weeklySlotRepo) GetByID(ctx context.Context, id uint) (*model.WeeklySlot, error) {
	var slot model.WeeklySlot
	err := r.db.WithContext(ctx).
		Preload("Degree").Preload("Subject").Preload("Teacher").Preload("Room").
		First(&slot, id).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *weeklySlotRepo) Save(ctx context.Context, slot *model.WeeklySlot) error {
	return r.db.WithContext(ctx).Omit("Degree", "Subject", "Teacher", "Room").Save(slot).Error
}

func (r *weeklySlotRepo) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.WeeklySlot{}, id)
	return res.RowsAffected > 0, res.Error
}

func (r *weeklySlotRepo) List(ctx context.Context, filter WeeklySlotFilter) ([]model.WeeklySlot, error) {
	q := r.db.WithContext(ctx).
		Preload("Degree").Preload("Subject").Preload("Teacher").Preload("Room")

	if filter.DegreeID != nil {
		q = q.Where("degree_id = ?", *filter.DegreeID)
	}
	if filter.TeacherID != nil {
		q = q.Where("teacher_id = ?", *filter.TeacherID)
	}
	if filter.DayOfWeek != nil {
		q = q.Where("day_of_week = ?", *filter.DayOfWeek)
	}

	var slots []model.WeeklySlot
	err := q.Order("degree_id ASC, day_of_week ASC, start_time ASC NULLS LAST, id ASC").
		Find(&slots).Error
	return slots, err
}
