package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type CreateUserMailData struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type HoursAlertMailData struct {
	DoctorName   string  `json:"doctorName"`
	Specialty    string  `json:"specialty"`
	Month        string  `json:"month"` // YYYY-MM
	MonthlyHours float64 `json:"monthlyHours"`
	Status       string  `json:"status"`
}
