//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/model"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/repository"
	"github.com/mohamedbel-ymam/school-vfr-sub000/pkg/database"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=school_vfr password=school_vfr_password dbname=school_vfr_test sslmode=disable TimeZone=Africa/Casablanca"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "connecting to test database: %v\n", err)
		os.Exit(1)
	}

	// the SQL migrations carry the COALESCE expression index the upsert
	// relies on, so they run here instead of AutoMigrate
	sqlDB, err := testDB.DB()
	if err != nil {
		fmt.Fprintf(os.Stderr, "getting sql.DB: %v\n", err)
		os.Exit(1)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		fmt.Fprintf(os.Stderr, "running migrations: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupTestData creates a subject and a teacher, returning them with the
// seeded college-1ac degree and a cleanup function.
func setupTestData(t *testing.T) (degree *model.Degree, subject *model.Subject, teacher *model.User, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	degree = &model.Degree{}
	if err := testDB.WithContext(ctx).Where("slug = ?", "college-1ac").First(degree).Error; err != nil {
		t.Fatalf("loading seeded degree: %v", err)
	}

	subject = &model.Subject{Name: fmt.Sprintf("Matière-%d", time.Now().UnixNano())}
	if err := testDB.WithContext(ctx).Create(subject).Error; err != nil {
		t.Fatalf("creating subject: %v", err)
	}

	teacher = &model.User{
		FirstName: "Test",
		LastName:  fmt.Sprintf("Enseignant-%d", time.Now().UnixNano()),
		Role:      model.RoleTeacher,
	}
	if err := testDB.WithContext(ctx).Create(teacher).Error; err != nil {
		t.Fatalf("creating teacher: %v", err)
	}

	cleanup = func() {
		testDB.Where("subject_id = ?", subject.ID).Delete(&model.MonthlyPlanEntry{})
		testDB.Where("subject_id = ?", subject.ID).Delete(&model.WeeklySlot{})
		testDB.Where("id = ?", subject.ID).Delete(&model.Subject{})
		testDB.Where("id = ?", teacher.ID).Delete(&model.User{})
	}
	return
}

func planEntry(degree *model.Degree, subject *model.Subject, teacherID *uint, title string) *model.MonthlyPlanEntry {
	return &model.MonthlyPlanEntry{
		PlanDate:  time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC),
		DegreeID:  degree.ID,
		SubjectID: subject.ID,
		TeacherID: teacherID,
		Title:     &title,
	}
}

func TestMonthlyPlanRepo_Upsert_CreateThenMerge(t *testing.T) {
	degree, subject, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	first := planEntry(degree, subject, nil, "première version")
	created, err := repo.MonthlyPlan.Upsert(ctx, first, false)
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	if !created {
		t.Error("first upsert should create")
	}

	second := planEntry(degree, subject, nil, "version fusionnée")
	created, err = repo.MonthlyPlan.Upsert(ctx, second, false)
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if created {
		t.Error("second upsert should merge")
	}
	if second.ID != first.ID {
		t.Errorf("expected merge into row %d, got %d", first.ID, second.ID)
	}

	stored, err := repo.MonthlyPlan.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Title == nil || *stored.Title != "version fusionnée" {
		t.Errorf("expected merged title, got %v", stored.Title)
	}
}

func TestMonthlyPlanRepo_Upsert_NullTeacherDistinctFromTeacher(t *testing.T) {
	degree, subject, teacher, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	noTeacher := planEntry(degree, subject, nil, "sans enseignant")
	if _, err := repo.MonthlyPlan.Upsert(ctx, noTeacher, false); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	withTeacher := planEntry(degree, subject, &teacher.ID, "avec enseignant")
	created, err := repo.MonthlyPlan.Upsert(ctx, withTeacher, false)
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !created {
		t.Error("entry with a teacher must not merge into the teacherless one")
	}
	if withTeacher.ID == noTeacher.ID {
		t.Error("expected two distinct rows")
	}
}

func TestMonthlyPlanRepo_Upsert_ConcurrentSequenceAssignment(t *testing.T) {
	degree, subject, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	const writers = 8

	var wg sync.WaitGroup
	errs := make([]error, writers)
	entries := make([]*model.MonthlyPlanEntry, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e := planEntry(degree, subject, nil, fmt.Sprintf("entrée %d", i))
			entries[i] = e
			_, errs[i] = repo.MonthlyPlan.Upsert(context.Background(), e, true)
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool)
	for i := 0; i < writers; i++ {
		if errs[i] != nil {
			t.Fatalf("writer %d failed: %v", i, errs[i])
		}
		if seen[entries[i].Sequence] {
			t.Errorf("sequence %d assigned twice", entries[i].Sequence)
		}
		seen[entries[i].Sequence] = true
	}
	for seq := 1; seq <= writers; seq++ {
		if !seen[seq] {
			t.Errorf("sequence %d never assigned", seq)
		}
	}
}

func TestMonthlyPlanRepo_Save_DuplicateKey(t *testing.T) {
	degree, subject, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	first := planEntry(degree, subject, nil, "cible")
	if _, err := repo.MonthlyPlan.Upsert(ctx, first, true); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	second := planEntry(degree, subject, nil, "déplacée")
	if _, err := repo.MonthlyPlan.Upsert(ctx, second, true); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	// move the second row onto the first one's full natural key
	second.Sequence = first.Sequence
	err := repo.MonthlyPlan.Save(ctx, second)
	if !errors.Is(err, repository.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestMonthlyPlanRepo_ListRange(t *testing.T) {
	degree, subject, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	for _, day := range []int{1, 15, 30} {
		e := planEntry(degree, subject, nil, fmt.Sprintf("jour %d", day))
		e.PlanDate = time.Date(2025, 9, day, 0, 0, 0, 0, time.UTC)
		if _, err := repo.MonthlyPlan.Upsert(ctx, e, false); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}
	october := planEntry(degree, subject, nil, "octobre")
	october.PlanDate = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	if _, err := repo.MonthlyPlan.Upsert(ctx, october, false); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	from := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	entries, err := repo.MonthlyPlan.ListRange(ctx, from, to, &degree.ID)
	if err != nil {
		t.Fatalf("ListRange: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 September entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].PlanDate.Before(entries[i-1].PlanDate) {
			t.Error("entries should be date-ordered")
		}
	}
}

func TestWeeklySlotRepo_CRUD(t *testing.T) {
	degree, subject, teacher, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	start, end := "08:00", "09:00"
	slot := &model.WeeklySlot{
		DegreeID:  degree.ID,
		SubjectID: subject.ID,
		TeacherID: teacher.ID,
		DayOfWeek: 1,
		StartTime: &start,
		EndTime:   &end,
		Title:     "Essai",
	}
	if err := repo.WeeklySlot.Create(ctx, slot); err != nil {
		t.Fatalf("Create: %v", err)
	}

	loaded, err := repo.WeeklySlot.GetByID(ctx, slot.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if loaded.Subject == nil || loaded.Subject.ID != subject.ID {
		t.Error("expected preloaded subject")
	}

	found, err := repo.WeeklySlot.Delete(ctx, slot.ID)
	if err != nil || !found {
		t.Fatalf("Delete: found=%v err=%v", found, err)
	}
	found, err = repo.WeeklySlot.Delete(ctx, slot.ID)
	if err != nil || found {
		t.Fatalf("second Delete: found=%v err=%v", found, err)
	}
}

func TestWeeklySlotRepo_TimeExpressionCheckConstraint(t *testing.T) {
	degree, subject, teacher, cleanup := setupTestData(t)
	defer cleanup()

	ctx := context.Background()
	slot := &model.WeeklySlot{
		DegreeID:  degree.ID,
		SubjectID: subject.ID,
		TeacherID: teacher.ID,
		DayOfWeek: 1,
		Title:     "Sans horaire",
	}
	err := testDB.WithContext(ctx).Create(slot).Error
	if err == nil {
		testDB.Delete(slot)
		t.Fatal("expected CHECK constraint to reject a slot with no time form")
	}
}
