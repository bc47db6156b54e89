package schedule

import (
	"database/sql"
	"sync"
	"testing"

	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
	"github.com/turnosmed/gestor-turnos/backend/internal/rules"
)

type mockRepository struct {
	mu      sync.Mutex
	doctors map[int64]*domain.Doctor
	shifts  []*domain.Shift
	custom  []*domain.ShiftTypeDefinition
	nextID  int64
}

func newMockRepository(doctors ...*domain.Doctor) *mockRepository {
	repo := &mockRepository{doctors: make(map[int64]*domain.Doctor)}
	for _, d := range doctors {
		repo.doctors[d.ID] = d
	}
	return repo
}

func (m *mockRepository) GetDoctorByID(id int64) (*domain.Doctor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	d, ok := m.doctors[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return d, nil
}

func (m *mockRepository) GetShiftsByDoctor(doctorID int64) ([]*domain.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	shifts := make([]*domain.Shift, 0)
	for _, s := range m.shifts {
		if s.DoctorID == doctorID {
			cp := *s
			shifts = append(shifts, &cp)
		}
	}
	return shifts, nil
}

func (m *mockRepository) GetShiftByID(id int64) (*domain.Shift, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.shifts {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockRepository) CreateShift(shift *domain.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	shift.ID = m.nextID
	cp := *shift
	m.shifts = append(m.shifts, &cp)
	return nil
}

func (m *mockRepository) UpdateShift(shift *domain.Shift) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, s := range m.shifts {
		if s.ID == shift.ID {
			cp := *shift
			m.shifts[i] = &cp
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *mockRepository) DeleteShift(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, s := range m.shifts {
		if s.ID == id {
			m.shifts = append(m.shifts[:i], m.shifts[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockRepository) CountShiftsByType(shiftTypeID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, s := range m.shifts {
		if s.ShiftTypeID == shiftTypeID {
			n++
		}
	}
	return n, nil
}

func (m *mockRepository) GetCustomShiftTypes() ([]*domain.ShiftTypeDefinition, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.custom, nil
}

func (m *mockRepository) seedShift(doctorID int64, date, shiftTypeID string) *domain.Shift {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	s := &domain.Shift{ID: m.nextID, DoctorID: doctorID, Date: date, ShiftTypeID: shiftTypeID}
	m.shifts = append(m.shifts, s)
	return s
}

func (m *mockRepository) shiftCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.shifts)
}

var testThresholds = rules.Thresholds{
	MaxWeekly:      36,
	MonthlyWarning: 140,
	MonthlyMax:     150,
	MonthlyMin:     120,
}

func testDoctor(id int64) *domain.Doctor {
	return &domain.Doctor{ID: id, DNI: "12345678A", FullName: "Ana García", Specialty: "Cardiología"}
}

func TestProposeUnknownDoctor(t *testing.T) {
	repo := newMockRepository(testDoctor(1))
	svc := NewService(repo, testThresholds)

	shift, rej, err := svc.Propose(&domain.ProposedAssignment{DoctorID: 99, Date: "2024-05-15", ShiftTypeID: domain.ShiftTypeMorning})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rej == nil || rej.Code != rules.CodeUnknownDoctor {
		t.Fatalf("rejection = %+v, want %s", rej, rules.CodeUnknownDoctor)
	}
	if shift != nil || repo.shiftCount() != 0 {
		t.Error("rejected proposal left a committed shift")
	}
}

func TestProposeCommits(t *testing.T) {
	repo := newMockRepository(testDoctor(1))
	svc := NewService(repo, testThresholds)

	shift, rej, err := svc.Propose(&domain.ProposedAssignment{DoctorID: 1, Date: "2024-05-15", ShiftTypeID: domain.ShiftTypeMorning})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rej != nil {
		t.Fatalf("unexpected rejection: %+v", rej)
	}
	if shift == nil || shift.ID == 0 {
		t.Fatalf("committed shift = %+v, want assigned id", shift)
	}
	if repo.shiftCount() != 1 {
		t.Errorf("repo shift count = %d, want 1", repo.shiftCount())
	}
}

func TestProposeRejectionLeavesScheduleUnchanged(t *testing.T) {
	repo := newMockRepository(testDoctor(1))
	repo.seedShift(1, "2024-05-15", domain.ShiftTypeVacation)
	svc := NewService(repo, testThresholds)

	_, rej, err := svc.Propose(&domain.ProposedAssignment{DoctorID: 1, Date: "2024-05-15", ShiftTypeID: domain.ShiftTypeMorning})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rej == nil || rej.Code != rules.CodeVacationConflict {
		t.Fatalf("rejection = %+v, want %s", rej, rules.CodeVacationConflict)
	}
	if repo.shiftCount() != 1 {
		t.Errorf("repo shift count = %d, want 1", repo.shiftCount())
	}
}

func TestProposeEditReplacesInPlace(t *testing.T) {
	repo := newMockRepository(testDoctor(1))
	seeded := repo.seedShift(1, "2024-05-15", domain.ShiftTypeMorning)
	svc := NewService(repo, testThresholds)

	shift, rej, err := svc.Propose(&domain.ProposedAssignment{
		DoctorID:       1,
		Date:           "2024-05-15",
		ShiftTypeID:    domain.ShiftTypeMorningAfternoon,
		ExcludeShiftID: &seeded.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rej != nil {
		t.Fatalf("unexpected rejection: %+v", rej)
	}
	if shift.ID != seeded.ID {
		t.Errorf("committed shift id = %d, want %d", shift.ID, seeded.ID)
	}
	if repo.shiftCount() != 1 {
		t.Errorf("repo shift count = %d, want 1", repo.shiftCount())
	}

	stored, err := repo.GetShiftByID(seeded.ID)
	if err != nil {
		t.Fatalf("replaced shift missing: %v", err)
	}
	if stored.ShiftTypeID != domain.ShiftTypeMorningAfternoon {
		t.Errorf("stored type = %s, want %s", stored.ShiftTypeID, domain.ShiftTypeMorningAfternoon)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	repo := newMockRepository(testDoctor(1))
	seeded := repo.seedShift(1, "2024-05-15", domain.ShiftTypeMorning)
	svc := NewService(repo, testThresholds)

	if err := svc.Remove(seeded.ID); err != nil {
		t.Fatalf("first remove: %v", err)
	}
	if err := svc.Remove(seeded.ID); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if repo.shiftCount() != 0 {
		t.Errorf("repo shift count = %d, want 0", repo.shiftCount())
	}
}

func TestIsShiftTypeInUse(t *testing.T) {
	repo := newMockRepository(testDoctor(1))
	repo.custom = []*domain.ShiftTypeDefinition{
		{ID: "custom_ce", Name: "Consulta Externa", Abbreviation: "CE", DurationHours: 4, StartTime: "08:00", EndTime: "12:00"},
	}
	repo.seedShift(1, "2024-05-15", "custom_ce")
	svc := NewService(repo, testThresholds)

	inUse, err := svc.IsShiftTypeInUse("custom_ce")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !inUse {
		t.Error("referenced type reported unused")
	}

	inUse, err = svc.IsShiftTypeInUse(domain.ShiftTypeNight)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inUse {
		t.Error("unreferenced type reported in use")
	}
}

func TestHoursReport(t *testing.T) {
	repo := newMockRepository(testDoctor(1))
	repo.seedShift(1, "2024-05-13", domain.ShiftTypeNight)            // in week, 12h
	repo.seedShift(1, "2024-05-17", domain.ShiftTypeMorning)          // in week, 6h
	repo.seedShift(1, "2024-05-25", domain.ShiftTypeMorningAfternoon) // in month only, 12h
	repo.seedShift(1, "2024-06-03", domain.ShiftTypeDayGuard)         // other month
	svc := NewService(repo, testThresholds)

	report, err := svc.HoursReport(1, "2024-05-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Month != "2024-05" {
		t.Errorf("month = %s, want 2024-05", report.Month)
	}
	if report.MonthlyHours != 30 {
		t.Errorf("monthly hours = %v, want 30", report.MonthlyHours)
	}
	if report.WeeklyHours != 18 {
		t.Errorf("weekly hours = %v, want 18", report.WeeklyHours)
	}
	if report.Status != rules.StatusLow {
		t.Errorf("status = %s, want %s", report.Status, rules.StatusLow)
	}
}

func TestConcurrentProposalsForOneDoctorAreSerialized(t *testing.T) {
	repo := newMockRepository(testDoctor(1))
	// 24 hours already inside the week of 2024-05-12..18; one more 12h shift
	// fits, two do not.
	repo.seedShift(1, "2024-05-13", domain.ShiftTypeMorningAfternoon)
	repo.seedShift(1, "2024-05-14", domain.ShiftTypeMorningAfternoon)
	svc := NewService(repo, testThresholds)

	proposals := []*domain.ProposedAssignment{
		{DoctorID: 1, Date: "2024-05-16", ShiftTypeID: domain.ShiftTypeDayGuard},
		{DoctorID: 1, Date: "2024-05-17", ShiftTypeID: domain.ShiftTypeDayGuard},
	}

	var wg sync.WaitGroup
	rejections := make([]*rules.Rejection, len(proposals))
	errs := make([]error, len(proposals))

	for i, p := range proposals {
		wg.Add(1)
		go func(i int, p *domain.ProposedAssignment) {
			defer wg.Done()
			_, rejections[i], errs[i] = svc.Propose(p)
		}(i, p)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("proposal %d: %v", i, err)
		}
	}

	accepted := 0
	for _, rej := range rejections {
		if rej == nil {
			accepted++
		}
	}
	if accepted != 1 {
		t.Fatalf("accepted = %d, want exactly 1", accepted)
	}
	if repo.shiftCount() != 3 {
		t.Errorf("repo shift count = %d, want 3", repo.shiftCount())
	}
}
