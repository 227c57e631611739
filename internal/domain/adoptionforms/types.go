package adoptionforms

// Status es el estado del workflow de un formulario de adopción.
// Rejected es terminal; Approved sigue acumulando chequeos periódicos.
// @Enum Pending, Approved, Rejected
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// CheckHealth es el estado de salud reportado en un chequeo periódico.
// @Enum Good, Needs Attention, Critical
type CheckHealth string

const (
	HealthGood           CheckHealth = "Good"
	HealthNeedsAttention CheckHealth = "Needs Attention"
	HealthCritical       CheckHealth = "Critical"
)

func ValidCheckHealth(h CheckHealth) bool {
	switch h {
	case HealthGood, HealthNeedsAttention, HealthCritical:
		return true
	}
	return false
}

// maxScheduledChecks: la política de seguimiento cubre cuatro ciclos
// mensuales; a partir del cuarto chequeo no se agenda nada más.
const maxScheduledChecks = 4
