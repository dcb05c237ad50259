package repository

import "gorm.io/gorm"

// Repository aggregates all repository interfaces.
type Repository struct {
	Degree      DegreeRepository
	Subject     SubjectRepository
	User        UserRepository
	Room        RoomRepository
	WeeklySlot  WeeklySlotRepository
	MonthlyPlan MonthlyPlanRepository
}

// NewRepository wires the GORM-backed repositories.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Degree:      NewDegreeRepo(db),
		Subject:     NewSubjectRepo(db),
		User:        NewUserRepo(db),
		Room:        NewRoomRepo(db),
		WeeklySlot:  NewWeeklySlotRepo(db),
		MonthlyPlan: NewMonthlyPlanRepo(db),
	}
}
