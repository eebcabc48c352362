package models

import "time"

type Role string

const (
	RoleEmployee Role = "Employee"
	RoleManager  Role = "Manager"
	RoleAdmin    Role = "Admin"
)

// TimestampLayout matches the ISO-8601 form the frontend parses (millisecond precision, UTC).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

type User struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Role        Role    `json:"role"`
	Verified    bool    `json:"verified"`
	VerifyToken *string `json:"verifyToken"`
	ResetToken  *string `json:"resetToken"`

	Extra Extra `json:"-"`
}

type Employee struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Salary     string `json:"salary"`

	Extra Extra `json:"-"`
}

// EmployeeFields carries the writable part of an Employee.
type EmployeeFields struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Position   string `json:"position"`
	Salary     string `json:"salary"`
}

type Manager struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`

	Extra Extra `json:"-"`
}

type Admin struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`

	Extra Extra `json:"-"`
}

type Message struct {
	ID        int64  `json:"id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`

	Extra Extra `json:"-"`
}

// Sequences keeps id high-water marks so deleted ids are never handed out again.
type Sequences struct {
	Employees int64 `json:"employees"`
	Messages  int64 `json:"messages"`
}

// Snapshot is the whole persisted document.
type Snapshot struct {
	Users     []User     `json:"users"`
	Employees []Employee `json:"employees"`
	Managers  []Manager  `json:"managers"`
	Admins    []Admin    `json:"admins"`
	Messages  []Message  `json:"messages"`
	Sequences Sequences  `json:"sequences"`

	Extra Extra `json:"-"`
}

// Mail is a single outbound notification.
type Mail struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Identity is what a successful login reveals about the user.
type Identity struct {
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// FormatTimestamp renders t the way messages store it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
