package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/model"
)

func setupTestExportService() (ExportService, *mockWeeklySlotRepo) {
	repo, slots, _ := newTestRepository()
	svc := NewExportService(repo, zap.NewNop())
	return svc, slots
}

func seedSlot(slots *mockWeeklySlotRepo, slot model.WeeklySlot) {
	_ = slots.Create(context.Background(), &slot)
}

func TestExportService_XLSX(t *testing.T) {
	svc, slots := setupTestExportService()
	seedSlot(slots, model.WeeklySlot{
		DegreeID: 1, SubjectID: 10, TeacherID: 100, DayOfWeek: 1,
		StartTime: strPtr("08:00"), EndTime: strPtr("09:00"),
		Title: "Mathématiques — Lun 08:00–09:00 — Samira Alaoui",
	})
	seedSlot(slots, model.WeeklySlot{
		DegreeID: 1, SubjectID: 11, TeacherID: 101, DayOfWeek: 3,
		Period: strPtr("P3"),
		Title:  "Physique — Mer P3",
	})

	buf, filename, err := svc.ExportTimetableXLSX(context.Background(), nil)
	if err != nil {
		t.Fatalf("ExportTimetableXLSX should succeed: %v", err)
	}
	if filename != "emploi_du_temps.xlsx" {
		t.Errorf("unexpected filename %q", filename)
	}
	if buf.Len() == 0 {
		t.Error("expected non-empty workbook")
	}
	// xlsx files are zip archives
	if head := buf.Bytes()[:2]; head[0] != 'P' || head[1] != 'K' {
		t.Error("expected zip magic at start of workbook")
	}
}

func TestExportService_XLSX_Empty(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportTimetableXLSX(context.Background(), nil)
	if !errors.Is(err, ErrExportNoSlots) {
		t.Fatalf("expected ErrExportNoSlots, got %v", err)
	}
}

func TestExportService_ICS(t *testing.T) {
	svc, slots := setupTestExportService()
	seedSlot(slots, model.WeeklySlot{
		DegreeID: 1, SubjectID: 10, TeacherID: 100, RoomID: uintPtr(7), DayOfWeek: 1,
		StartTime: strPtr("08:00"), EndTime: strPtr("09:00"),
		Title: "Mathématiques — Lun 08:00–09:00 — Samira Alaoui",
	})
	seedSlot(slots, model.WeeklySlot{
		DegreeID: 1, SubjectID: 11, TeacherID: 101, DayOfWeek: 3,
		Period: strPtr("P3"),
		Title:  "Physique — Mer P3",
	})

	data, filename, err := svc.ExportTimetableICS(context.Background(), nil)
	if err != nil {
		t.Fatalf("ExportTimetableICS should succeed: %v", err)
	}
	if filename != "emploi_du_temps.ics" {
		t.Errorf("unexpected filename %q", filename)
	}

	feed := string(data)
	if !strings.Contains(feed, "BEGIN:VCALENDAR") {
		t.Error("expected VCALENDAR envelope")
	}
	if !strings.Contains(feed, "RRULE:FREQ=WEEKLY;BYDAY=MO") {
		t.Errorf("expected weekly Monday RRULE, feed:\n%s", feed)
	}
	if !strings.Contains(feed, "LOCATION:Salle 7") {
		t.Error("expected room as LOCATION")
	}
	// the period-only slot has no clock and must not produce an event
	if strings.Count(feed, "BEGIN:VEVENT") != 1 {
		t.Errorf("expected exactly one VEVENT, feed:\n%s", feed)
	}
}

func TestExportService_ICS_OnlyPeriodSlots(t *testing.T) {
	svc, slots := setupTestExportService()
	seedSlot(slots, model.WeeklySlot{
		DegreeID: 1, SubjectID: 10, TeacherID: 100, DayOfWeek: 2,
		Period: strPtr("P1"),
		Title:  "Mathématiques — Mar P1",
	})

	_, _, err := svc.ExportTimetableICS(context.Background(), nil)
	if !errors.Is(err, ErrExportNoSlots) {
		t.Fatalf("expected ErrExportNoSlots when no slot has a clock, got %v", err)
	}
}
