package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/turnosmed/gestor-turnos/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonFirstNames = []string{
	"Ana", "Carlos", "Lucía", "Javier", "María", "David", "Carmen", "Miguel",
	"Laura", "Antonio", "Elena", "Pablo", "Sara", "Manuel", "Isabel", "Diego",
	"Marta", "Alejandro", "Paula", "Sergio",
}

var commonSurnames = []string{
	"García", "Martínez", "López", "Sánchez", "González", "Pérez", "Rodríguez",
	"Fernández", "Gómez", "Ruiz", "Díaz", "Moreno", "Jiménez", "Torres",
	"Romero", "Navarro", "Ortega", "Vargas", "Castro", "Serrano",
}

func GenerateRandomFullName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	second := commonSurnames[rand.Intn(len(commonSurnames))]
	return fmt.Sprintf("%s %s %s", first, surname, second)
}

var dniLetters = "TRWAGMYFPDXBNJZSQVHLCKE"

// GenerateRandomDNI builds a Spanish DNI: eight digits plus the check letter.
func GenerateRandomDNI() string {
	number := rand.Intn(100000000)
	letter := dniLetters[number%23]
	return fmt.Sprintf("%08d%c", number, letter)
}

var usernameReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", " ", ".",
)

func GenerateUsernameFromFullName(fullName string) string {
	username := usernameReplacer.Replace(strings.ToLower(fullName))

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string, specialty string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         domain.RoleUser,
		Specialty:    specialty,
	}

	return user, nil
}

var doctorPositions = []string{"Médico Asistente", "Médico Residente", "Médico de Guardia", "Jefe de Servicio"}
var employmentStatuses = []string{"Nombrado", "Contratado", "Suplente"}

func GenerateRandomDoctor(specialty string) *domain.Doctor {
	return &domain.Doctor{
		DNI:              GenerateRandomDNI(),
		FullName:         GenerateRandomFullName(),
		Position:         doctorPositions[rand.Intn(len(doctorPositions))],
		EmploymentStatus: employmentStatuses[rand.Intn(len(employmentStatuses))],
		Specialty:        specialty,
	}
}

var digits = "0123456789"

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}
