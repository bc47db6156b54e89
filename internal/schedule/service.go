// Package schedule owns the validate-then-commit path for shift assignments.
// Validation itself is pure (see the rules package); this service adds the
// doctor lookup, the catalog load and a per-doctor lock so two concurrent
// proposals for the same doctor cannot both pass validation against a stale
// schedule.
package schedule

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/turnosmed/gestor-turnos/backend/internal/catalog"
	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
	"github.com/turnosmed/gestor-turnos/backend/internal/rules"
)

type Repository interface {
	GetDoctorByID(id int64) (*domain.Doctor, error)
	GetShiftsByDoctor(doctorID int64) ([]*domain.Shift, error)
	GetShiftByID(id int64) (*domain.Shift, error)
	CreateShift(shift *domain.Shift) error
	UpdateShift(shift *domain.Shift) error
	DeleteShift(id int64) error
	CountShiftsByType(shiftTypeID string) (int, error)
	GetCustomShiftTypes() ([]*domain.ShiftTypeDefinition, error)
}

type Service struct {
	repo       Repository
	thresholds rules.Thresholds

	mu          sync.Mutex
	doctorLocks map[int64]*sync.Mutex
}

func NewService(repo Repository, thresholds rules.Thresholds) *Service {
	return &Service{
		repo:        repo,
		thresholds:  thresholds,
		doctorLocks: make(map[int64]*sync.Mutex),
	}
}

func (s *Service) Thresholds() rules.Thresholds {
	return s.thresholds
}

// lockDoctor returns the mutex serializing mutations for one doctor. Locks are
// never removed; the map grows with the roster, which is small.
func (s *Service) lockDoctor(doctorID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.doctorLocks[doctorID]
	if !ok {
		m = &sync.Mutex{}
		s.doctorLocks[doctorID] = m
	}
	return m
}

// Propose validates the assignment and, if it passes, commits it: an insert
// when ExcludeShiftID is nil, otherwise a replacement of that shift. A non-nil
// Rejection is a business outcome, not an error.
func (s *Service) Propose(p *domain.ProposedAssignment) (*domain.Shift, *rules.Rejection, error) {
	lock := s.lockDoctor(p.DoctorID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := s.repo.GetDoctorByID(p.DoctorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &rules.Rejection{Code: rules.CodeUnknownDoctor}, nil
		}
		return nil, nil, err
	}

	validator, err := s.newValidator()
	if err != nil {
		return nil, nil, err
	}

	existing, err := s.repo.GetShiftsByDoctor(p.DoctorID)
	if err != nil {
		return nil, nil, err
	}

	if rej := validator.Validate(p, existing); rej != nil {
		return nil, rej, nil
	}

	shift := &domain.Shift{
		DoctorID:    p.DoctorID,
		Date:        p.Date,
		ShiftTypeID: p.ShiftTypeID,
	}

	if p.ExcludeShiftID != nil {
		shift.ID = *p.ExcludeShiftID
		if err := s.repo.UpdateShift(shift); err != nil {
			return nil, nil, err
		}
	} else {
		if err := s.repo.CreateShift(shift); err != nil {
			return nil, nil, err
		}
	}

	return shift, nil, nil
}

// Remove deletes a shift. Deleting a shift that no longer exists is a no-op.
func (s *Service) Remove(shiftID int64) error {
	shift, err := s.repo.GetShiftByID(shiftID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	}

	lock := s.lockDoctor(shift.DoctorID)
	lock.Lock()
	defer lock.Unlock()

	return s.repo.DeleteShift(shiftID)
}

// IsShiftTypeInUse reports whether any committed shift references the type.
func (s *Service) IsShiftTypeInUse(shiftTypeID string) (bool, error) {
	n, err := s.repo.CountShiftsByType(shiftTypeID)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// HoursReport summarizes a doctor's load around an anchor date: the calendar
// month's total with its status band, and the Sunday-to-Saturday week's total.
type HoursReport struct {
	DoctorID     int64               `json:"doctorId"`
	Month        string              `json:"month"`
	MonthlyHours float64             `json:"monthlyHours"`
	WeeklyHours  float64             `json:"weeklyHours"`
	Status       rules.MonthlyStatus `json:"status"`
	Thresholds   rules.Thresholds    `json:"thresholds"`
}

func (s *Service) HoursReport(doctorID int64, anchorDate string) (*HoursReport, error) {
	d, err := time.Parse(domain.DateLayout, anchorDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetDoctorByID(doctorID); err != nil {
		return nil, err
	}

	cat, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}

	shifts, err := s.repo.GetShiftsByDoctor(doctorID)
	if err != nil {
		return nil, err
	}

	accountant := rules.NewAccountant(cat)
	monthly := accountant.MonthlyHours(shifts, doctorID, d.Year(), d.Month())
	weekly := accountant.WeeklyHours(shifts, doctorID, anchorDate)

	return &HoursReport{
		DoctorID:     doctorID,
		Month:        d.Format("2006-01"),
		MonthlyHours: monthly,
		WeeklyHours:  weekly,
		Status:       s.thresholds.MonthlyStatus(monthly),
		Thresholds:   s.thresholds,
	}, nil
}

func (s *Service) loadCatalog() (*catalog.Catalog, error) {
	custom, err := s.repo.GetCustomShiftTypes()
	if err != nil {
		return nil, err
	}
	return catalog.New(custom), nil
}

func (s *Service) newValidator() (*rules.Validator, error) {
	cat, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}
	return rules.NewValidator(cat, s.thresholds), nil
}
