package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/model"
	"github.com/mohamedbel-ymam/school-vfr-sub000/internal/repository"
)

// ── export errors ──

var (
	ErrExportNoSlots      = errors.New("no weekly slots to export")
	ErrExportGenerateFail = errors.New("generating export file failed")
)

// ExportService renders the weekly timetable for consumption outside the
// frontend: an Excel sheet for printing and an ICS feed for calendar apps.
type ExportService interface {
	// ExportTimetableXLSX renders the canonical weekly listing as .xlsx.
	// Returns the file content and a suggested filename.
	ExportTimetableXLSX(ctx context.Context, degreeID *uint) (*bytes.Buffer, string, error)
	// ExportTimetableICS renders slots with explicit times as weekly
	// recurring VEVENTs. Period-only slots carry no clock and are skipped.
	ExportTimetableICS(ctx context.Context, degreeID *uint) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var frenchDayFull = [8]string{"", "Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi", "Dimanche"}

func (s *exportService) loadSorted(ctx context.Context, degreeID *uint) ([]model.WeeklySlot, error) {
	slots, err := s.repo.WeeklySlot.List(ctx, repository.WeeklySlotFilter{DegreeID: degreeID})
	if err != nil {
		s.logger.Error("listing weekly slots for export failed", zap.Error(err))
		return nil, err
	}
	if len(slots) == 0 {
		return nil, ErrExportNoSlots
	}
	sortSlotsCanonical(slots)
	return slots, nil
}

// ────────────────────── ExportTimetableXLSX ──────────────────────

func (s *exportService) ExportTimetableXLSX(ctx context.Context, degreeID *uint) (*bytes.Buffer, string, error) {
	slots, err := s.loadSorted(ctx, degreeID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Emploi du temps"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 16)
	f.SetColWidth(sheetName, "C", "E", 22)
	f.SetColWidth(sheetName, "F", "F", 20)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	scope := "Toutes classes"
	if degreeID != nil && len(slots) > 0 && slots[0].Degree != nil {
		scope = slots[0].Degree.Name
	}

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — Emploi du temps", scope))
	f.MergeCell(sheetName, "A1", "F1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	headers := []string{"Jour", "Horaire", "Classe", "Matière", "Enseignant", "Salle"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s%d", col, 2)
		f.SetCellValue(sheetName, cell, h)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	row := 3
	for i := range slots {
		slot := &slots[i]

		var when string
		switch {
		case slot.StartTime != nil && slot.EndTime != nil:
			when = fmt.Sprintf("%s–%s", *slot.StartTime, *slot.EndTime)
		case slot.Period != nil:
			when = *slot.Period
		}

		day := ""
		if slot.DayOfWeek >= 1 && slot.DayOfWeek <= 7 {
			day = frenchDayFull[slot.DayOfWeek]
		}

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), day)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), when)
		if slot.Degree != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), slot.Degree.Name)
		}
		if slot.Subject != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), slot.Subject.Name)
		}
		if slot.Teacher != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), slot.Teacher.FullName())
		}
		if slot.Room != nil {
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), slot.Room.Name)
		} else {
			f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), "-")
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("writing xlsx failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	return buf, "emploi_du_temps.xlsx", nil
}

// ────────────────────── ExportTimetableICS ──────────────────────

func (s *exportService) ExportTimetableICS(ctx context.Context, degreeID *uint) ([]byte, string, error) {
	slots, err := s.loadSorted(ctx, degreeID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//school-vfr//timetable//FR")

	now := time.Now()
	exported := 0

	for i := range slots {
		slot := &slots[i]
		if slot.StartTime == nil || slot.EndTime == nil {
			continue // no clock to anchor the event on
		}
		startMin, okS := parseClock(*slot.StartTime)
		endMin, okE := parseClock(*slot.EndTime)
		if !okS || !okE {
			continue
		}

		first := nextWeekday(now, slot.DayOfWeek)
		start := time.Date(first.Year(), first.Month(), first.Day(), startMin/60, startMin%60, 0, 0, now.Location())
		end := time.Date(first.Year(), first.Month(), first.Day(), endMin/60, endMin%60, 0, 0, now.Location())

		event := cal.AddEvent(fmt.Sprintf("weekly-slot-%d@school-vfr", slot.ID))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(slot.Title)
		if slot.Room != nil {
			event.SetLocation(slot.Room.Name)
		}
		event.AddRrule(fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s", icalDayCode(slot.DayOfWeek)))
		exported++
	}

	if exported == 0 {
		return nil, "", ErrExportNoSlots
	}

	return []byte(cal.Serialize()), "emploi_du_temps.ics", nil
}

// nextWeekday returns the first date on or after from whose ISO weekday
// (Monday=1) equals dayOfWeek.
func nextWeekday(from time.Time, dayOfWeek int) time.Time {
	iso := int(from.Weekday())
	if iso == 0 {
		iso = 7 // Sunday
	}
	delta := (dayOfWeek - iso + 7) % 7
	return from.AddDate(0, 0, delta)
}

func icalDayCode(dayOfWeek int) string {
	codes := [8]string{"", "MO", "TU", "WE", "TH", "FR", "SA", "SU"}
	if dayOfWeek >= 1 && dayOfWeek <= 7 {
		return codes[dayOfWeek]
	}
	return "MO"
}
