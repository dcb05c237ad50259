package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/model"
)

// Catalog repositories cover the reference data this core reads but never
// mutates: degrees, subjects, rooms and users (users live in the identity
// service's tables).

// DegreeRepository is the degree catalog access interface.
type DegreeRepository interface {
	List(ctx context.Context) ([]model.Degree, error)
	GetByID(ctx context.Context, id uint) (*model.Degree, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

// SubjectRepository is the subject catalog access interface.
type SubjectRepository interface {
	List(ctx context.Context) ([]model.Subject, error)
	GetByID(ctx context.Context, id uint) (*model.Subject, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

// UserRepository reads users for existence checks and display names.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

// RoomRepository is the room catalog access interface.
type RoomRepository interface {
	List(ctx context.Context) ([]model.Room, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

// ── GORM implementations ──

type degreeRepo struct{ db *gorm.DB }

// NewDegreeRepo creates a DegreeRepository.
func NewDegreeRepo(db *gorm.DB) DegreeRepository { return &degreeRepo{db: db} }

func (r *degreeRepo) List(ctx context.Context) ([]model.Degree, error) {
	var degrees []model.Degree
	err := r.db.WithContext(ctx).Order("id ASC").Find(&degrees).Error
	return degrees, err
}

func (r *degreeRepo) GetByID(ctx context.Context, id uint) (*model.Degree, error) {
	var degree model.Degree
	if err := r.db.WithContext(ctx).First(&degree, id).Error; err != nil {
		return nil, err
	}
	return &degree, nil
}

func (r *degreeRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Degree{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

type subjectRepo struct{ db *gorm.DB }

// NewSubjectRepo creates a SubjectRepository.
func NewSubjectRepo(db *gorm.DB) SubjectRepository { return &subjectRepo{db: db} }

func (r *subjectRepo) List(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).Order("name ASC").Find(&subjects).Error
	return subjects, err
}

func (r *subjectRepo) GetByID(ctx context.Context, id uint) (*model.Subject, error) {
	var subject model.Subject
	if err := r.db.WithContext(ctx).First(&subject, id).Error; err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subject{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

type userRepo struct{ db *gorm.DB }

// NewUserRepo creates a UserRepository.
func NewUserRepo(db *gorm.DB) UserRepository { return &userRepo{db: db} }

func (r *userRepo) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

type roomRepo struct{ db *gorm.DB }

// NewRoomRepo creates a RoomRepository.
func NewRoomRepo(db *gorm.DB) RoomRepository { return &roomRepo{db: db} }

func (r *roomRepo) List(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).Order("name ASC").Find(&rooms).Error
	return rooms, err
}

func (r *roomRepo) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Room{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
