package justification

import "time"

// Type is the reason recorded for an absence.
type Type string

const (
	TypeMedicalLeave    Type = "MEDICAL_LEAVE"
	TypeAuthorizedLeave Type = "AUTHORIZED_LEAVE"
	TypeTimeBank        Type = "TIME_BANK"
	TypeUnjustified     Type = "UNJUSTIFIED"
	TypeVacation        Type = "VACATION"
	TypeCompensatory    Type = "COMPENSATORY"
)

var typeLabels = map[Type]string{
	TypeMedicalLeave:    "Medical leave",
	TypeAuthorizedLeave: "Authorized leave",
	TypeTimeBank:        "Time bank",
	TypeUnjustified:     "Unjustified absence",
	TypeVacation:        "Vacation",
	TypeCompensatory:    "Compensatory day off",
}

// ValidTypes lists every justification type in display order.
func ValidTypes() []string {
	return []string{
		string(TypeMedicalLeave),
		string(TypeAuthorizedLeave),
		string(TypeTimeBank),
		string(TypeUnjustified),
		string(TypeVacation),
		string(TypeCompensatory),
	}
}

func (t Type) Valid() bool {
	_, ok := typeLabels[t]
	return ok
}

func (t Type) Label() string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Justification explains an employee's absence on one calendar date.
// The store keeps at most one per employee and date.
type Justification struct {
	ID             string
	EmployeeID     string
	Date           time.Time // calendar date, time of day is zero
	Type           Type
	Notes          *string
	AttachmentPath *string
	FileName       *string
	CreatedBy      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
