package domain

import (
	"time"
)

type Doctor struct {
	ID               int64     `json:"id"`
	DNI              string    `json:"dni"`
	FullName         string    `json:"fullName"`
	Position         string    `json:"position"`
	EmploymentStatus string    `json:"employmentStatus"`
	Specialty        string    `json:"specialty"`
	CreatedAt        time.Time `json:"createdAt"`
	Version          int32     `json:"-"`
}
