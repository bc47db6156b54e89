// Package seed loads a working data set for local development: the initial
// specialties and roster from the hospital pilot plus a handful of shifts.
// Shifts go through the schedule service so the seeded data always satisfies
// the scheduling rules.
package seed

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/turnosmed/gestor-turnos/backend/internal/config"
	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
	"github.com/turnosmed/gestor-turnos/backend/internal/repository"
	"github.com/turnosmed/gestor-turnos/backend/internal/schedule"
	"github.com/turnosmed/gestor-turnos/backend/internal/utils"
)

var initialSpecialties = []domain.Specialty{
	{Name: "Cardiología", Color: "#0d6efd"},
	{Name: "Neurología", Color: "#6f42c1"},
	{Name: "Pediatría", Color: "#198754"},
	{Name: "Cirugía", Color: "#dc3545"},
	{Name: "Emergencias", Color: "#ffc107"},
}

var initialDoctors = []domain.Doctor{
	{DNI: "12345678A", FullName: "Reed, Evelyn", Position: "Médico Asistente", EmploymentStatus: "Nombrado", Specialty: "Cardiología"},
	{DNI: "23456789B", FullName: "Thorne, Marcos", Position: "Jefe de Servicio", EmploymentStatus: "Nombrado", Specialty: "Neurología"},
	{DNI: "34567890C", FullName: "Petrova, Lena", Position: "Médico Residente", EmploymentStatus: "Contratado", Specialty: "Pediatría"},
	{DNI: "45678901D", FullName: "Tanaka, Kenji", Position: "Cirujano Principal", EmploymentStatus: "Nombrado", Specialty: "Cirugía"},
	{DNI: "56789012E", FullName: "Chen, Samuel", Position: "Médico de Guardia", EmploymentStatus: "Contratado", Specialty: "Emergencias"},
}

func SeedInitialData(cfg *config.Config, r *repository.Repository, sched *schedule.Service) {
	for i := range initialSpecialties {
		sp := initialSpecialties[i]
		if err := r.CreateSpecialty(&sp); err != nil {
			slog.Error("no se pudo insertar la especialidad", "name", sp.Name, "error", err)
			return
		}
	}

	doctors := make([]*domain.Doctor, 0, len(initialDoctors))
	for i := range initialDoctors {
		doc := initialDoctors[i]
		if err := r.CreateDoctor(&doc); err != nil {
			slog.Error("no se pudo insertar el médico", "dni", doc.DNI, "error", err)
			return
		}
		doctors = append(doctors, &doc)
	}

	// One scheduling account per specialty, all with the same dev password.
	for _, sp := range initialSpecialties {
		user, err := utils.GenerateRandomUser(cfg.Seed.UserPassword, cfg.Email.UserDomain, sp.Name)
		if err != nil {
			slog.Error("no se pudo generar el usuario", "specialty", sp.Name, "error", err)
			return
		}
		if err := r.CreateUser(user); err != nil {
			slog.Error("no se pudo insertar el usuario", "username", user.Username, "error", err)
			return
		}
	}

	// A few guards in the current month, mirroring the pilot's starting data.
	monthPrefix := time.Now().UTC().Format("2006-01")
	assignments := []domain.ProposedAssignment{
		{DoctorID: doctors[0].ID, Date: fmt.Sprintf("%s-05", monthPrefix), ShiftTypeID: domain.ShiftTypeDayGuard},
		{DoctorID: doctors[1].ID, Date: fmt.Sprintf("%s-05", monthPrefix), ShiftTypeID: domain.ShiftTypeDayGuard},
		{DoctorID: doctors[3].ID, Date: fmt.Sprintf("%s-07", monthPrefix), ShiftTypeID: domain.ShiftTypeNightGuard},
		{DoctorID: doctors[2].ID, Date: fmt.Sprintf("%s-12", monthPrefix), ShiftTypeID: domain.ShiftTypeDayGuard},
		{DoctorID: doctors[4].ID, Date: fmt.Sprintf("%s-12", monthPrefix), ShiftTypeID: domain.ShiftTypeNightGuard},
	}

	for _, p := range assignments {
		assignment := p
		_, rej, err := sched.Propose(&assignment)
		if err != nil {
			slog.Error("no se pudo insertar el turno", "doctorId", assignment.DoctorID, "date", assignment.Date, "error", err)
			return
		}
		if rej != nil {
			slog.Warn("turno inicial rechazado por las reglas", "doctorId", assignment.DoctorID, "date", assignment.Date, "code", rej.Code)
		}
	}

	slog.Info("datos iniciales insertados")
}
