package service

import (
	"context"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/model"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/repository"
)

// ── Mock DegreeRepository ──

type mockDegreeRepo struct {
	degrees   map[uint]*model.Degree
	existsErr error
}

func newMockDegreeRepo() *mockDegreeRepo {
	return &mockDegreeRepo{degrees: make(map[uint]*model.Degree)}
}

func (m *mockDegreeRepo) List(_ context.Context) ([]model.Degree, error) {
	var result []model.Degree
	for _, d := range m.degrees {
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockDegreeRepo) GetByID(_ context.Context, id uint) (*model.Degree, error) {
	if d, ok := m.degrees[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDegreeRepo) Exists(_ context.Context, id uint) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.degrees[id]
	return ok, nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[uint]*model.Subject
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[uint]*model.Subject)}
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id uint) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := m.subjects[id]
	return ok, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[uint]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*model.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id uint) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := m.users[id]
	return ok, nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms map[uint]*model.Room
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[uint]*model.Room)}
}

func (m *mockRoomRepo) List(_ context.Context) ([]model.Room, error) {
	var result []model.Room
	for _, r := range m.rooms {
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockRoomRepo) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := m.rooms[id]
	return ok, nil
}

// ── Mock WeeklySlotRepository ──

// mockWeeklySlotRepo keeps pointers to the catalog mocks so GetByID and
// List can fill associations the way the GORM Preload chain does.
type mockWeeklySlotRepo struct {
	slots  map[uint]*model.WeeklySlot
	nextID uint

	degrees  *mockDegreeRepo
	subjects *mockSubjectRepo
	users    *mockUserRepo
	rooms    *mockRoomRepo
}

func newMockWeeklySlotRepo(d *mockDegreeRepo, s *mockSubjectRepo, u *mockUserRepo, r *mockRoomRepo) *mockWeeklySlotRepo {
	return &mockWeeklySlotRepo{
		slots:    make(map[uint]*model.WeeklySlot),
		nextID:   1,
		degrees:  d,
		subjects: s,
		users:    u,
		rooms:    r,
	}
}

func (m *mockWeeklySlotRepo) hydrate(slot *model.WeeklySlot) *model.WeeklySlot {
	out := *slot
	out.Degree = m.degrees.degrees[out.DegreeID]
	out.Subject = m.subjects.subjects[out.SubjectID]
	out.Teacher = m.users.users[out.TeacherID]
	if out.RoomID != nil {
		out.Room = m.rooms.rooms[*out.RoomID]
	}
	return &out
}

func (m *mockWeeklySlotRepo) Create(_ context.Context, slot *model.WeeklySlot) error {
	if slot.ID == 0 {
		slot.ID = m.nextID
		m.nextID++
	}
	stored := *slot
	m.slots[slot.ID] = &stored
	return nil
}

func (m *mockWeeklySlotRepo) GetByID(_ context.Context, id uint) (*model.WeeklySlot, error) {
	if s, ok := m.slots[id]; ok {
		return m.hydrate(s), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWeeklySlotRepo) Save(_ context.Context, slot *model.WeeklySlot) error {
	stored := *slot
	stored.Degree, stored.Subject, stored.Teacher, stored.Room = nil, nil, nil, nil
	m.slots[slot.ID] = &stored
	return nil
}

func (m *mockWeeklySlotRepo) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := m.slots[id]; !ok {
		return false, nil
	}
	delete(m.slots, id)
	return true, nil
}

func (m *mockWeeklySlotRepo) List(_ context.Context, filter repository.WeeklySlotFilter) ([]model.WeeklySlot, error) {
	var result []model.WeeklySlot
	for _, s := range m.slots {
		if filter.DegreeID != nil && s.DegreeID != *filter.DegreeID {
			continue
		}
		if filter.TeacherID != nil && s.TeacherID != *filter.TeacherID {
			continue
		}
		if filter.DayOfWeek != nil && s.DayOfWeek != *filter.DayOfWeek {
			continue
		}
		result = append(result, *m.hydrate(s))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// ── Mock MonthlyPlanRepository ──

type mockMonthlyPlanRepo struct {
	entries map[uint]*model.MonthlyPlanEntry
	nextID  uint

	degrees  *mockDegreeRepo
	subjects *mockSubjectRepo
	users    *mockUserRepo
}

func newMockMonthlyPlanRepo(d *mockDegreeRepo, s *mockSubjectRepo, u *mockUserRepo) *mockMonthlyPlanRepo {
	return &mockMonthlyPlanRepo{
		entries:  make(map[uint]*model.MonthlyPlanEntry),
		nextID:   1,
		degrees:  d,
		subjects: s,
		users:    u,
	}
}

func sameTeacher(a, b *uint) bool {
	av, bv := uint(0), uint(0)
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

func (m *mockMonthlyPlanRepo) keyPrefixMatch(e *model.MonthlyPlanEntry, candidate *model.MonthlyPlanEntry) bool {
	return candidate.PlanDate.Format("2006-01-02") == e.PlanDate.Format("2006-01-02") &&
		candidate.DegreeID == e.DegreeID &&
		candidate.SubjectID == e.SubjectID &&
		sameTeacher(candidate.TeacherID, e.TeacherID)
}

func (m *mockMonthlyPlanRepo) hydrate(entry *model.MonthlyPlanEntry) *model.MonthlyPlanEntry {
	out := *entry
	out.Degree = m.degrees.degrees[out.DegreeID]
	out.Subject = m.subjects.subjects[out.SubjectID]
	if out.TeacherID != nil {
		out.Teacher = m.users.users[*out.TeacherID]
	}
	return &out
}

// Upsert mirrors the select-then-write merge of the real repository,
// including sequence auto-assignment when assignSequence is set.
func (m *mockMonthlyPlanRepo) Upsert(_ context.Context, entry *model.MonthlyPlanEntry, assignSequence bool) (bool, error) {
	if entry.Sequence == 0 {
		if assignSequence {
			max := 0
			for _, e := range m.entries {
				if m.keyPrefixMatch(entry, e) && e.Sequence > max {
					max = e.Sequence
				}
			}
			entry.Sequence = max + 1
		} else {
			entry.Sequence = 1
		}
	}

	for _, e := range m.entries {
		if m.keyPrefixMatch(entry, e) && e.Sequence == entry.Sequence {
			if entry.Title != nil {
				e.Title = entry.Title
			}
			if entry.Notes != nil {
				e.Notes = entry.Notes
			}
			entry.ID = e.ID
			return false, nil
		}
	}

	if entry.ID == 0 {
		entry.ID = m.nextID
		m.nextID++
	}
	stored := *entry
	m.entries[entry.ID] = &stored
	return true, nil
}

func (m *mockMonthlyPlanRepo) GetByID(_ context.Context, id uint) (*model.MonthlyPlanEntry, error) {
	if e, ok := m.entries[id]; ok {
		return m.hydrate(e), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMonthlyPlanRepo) Save(_ context.Context, entry *model.MonthlyPlanEntry) error {
	for _, e := range m.entries {
		if e.ID != entry.ID && m.keyPrefixMatch(entry, e) && e.Sequence == entry.Sequence {
			return repository.ErrDuplicateKey
		}
	}
	stored := *entry
	stored.Degree, stored.Subject, stored.Teacher = nil, nil, nil
	m.entries[entry.ID] = &stored
	return nil
}

func (m *mockMonthlyPlanRepo) Delete(_ context.Context, id uint) (bool, error) {
	if _, ok := m.entries[id]; !ok {
		return false, nil
	}
	delete(m.entries, id)
	return true, nil
}

func (m *mockMonthlyPlanRepo) ListRange(_ context.Context, from, to time.Time, degreeID *uint) ([]model.MonthlyPlanEntry, error) {
	var result []model.MonthlyPlanEntry
	for _, e := range m.entries {
		if e.PlanDate.Before(from) || !e.PlanDate.Before(to) {
			continue
		}
		if degreeID != nil && e.DegreeID != *degreeID {
			continue
		}
		result = append(result, *m.hydrate(e))
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := &result[i], &result[j]
		if !a.PlanDate.Equal(b.PlanDate) {
			return a.PlanDate.Before(b.PlanDate)
		}
		if a.DegreeID != b.DegreeID {
			return a.DegreeID < b.DegreeID
		}
		if a.Sequence != b.Sequence {
			return a.Sequence < b.Sequence
		}
		return a.ID < b.ID
	})
	return result, nil
}

// ── fixture wiring ──

func testDegrees() []model.Degree {
	return []model.Degree{
		{ID: 1, Name: "1ère Année Collège", Slug: "college-1ac"},
		{ID: 2, Name: "2ème Année Collège", Slug: "college-2ac"},
		{ID: 3, Name: "3ème Année Collège", Slug: "college-3ac"},
		{ID: 4, Name: "Tronc Commun", Slug: "lycee-tc"},
		{ID: 5, Name: "1ère Année Bac", Slug: "lycee-1bac"},
	}
}

// newTestRepository builds a Repository backed by the mocks, pre-seeded
// with the degree catalog and a handful of subjects, teachers and rooms.
func newTestRepository() (*repository.Repository, *mockWeeklySlotRepo, *mockMonthlyPlanRepo) {
	degrees := newMockDegreeRepo()
	for _, d := range testDegrees() {
		stored := d
		degrees.degrees[d.ID] = &stored
	}

	subjects := newMockSubjectRepo()
	subjects.subjects[10] = &model.Subject{ID: 10, Name: "Mathématiques"}
	subjects.subjects[11] = &model.Subject{ID: 11, Name: "Physique"}

	users := newMockUserRepo()
	users.users[100] = &model.User{ID: 100, FirstName: "Samira", LastName: "Alaoui", Role: model.RoleTeacher}
	users.users[101] = &model.User{ID: 101, FirstName: "Karim", LastName: "Bennani", Role: model.RoleTeacher}

	rooms := newMockRoomRepo()
	rooms.rooms[7] = &model.Room{ID: 7, Name: "Salle 7"}

	slots := newMockWeeklySlotRepo(degrees, subjects, users, rooms)
	plans := newMockMonthlyPlanRepo(degrees, subjects, users)

	return &repository.Repository{
		Degree:      degrees,
		Subject:     subjects,
		User:        users,
		Room:        rooms,
		WeeklySlot:  slots,
		MonthlyPlan: plans,
	}, slots, plans
}
