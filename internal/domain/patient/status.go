package patient

// Status is the clinical standing of a patient. Transitions are free
// among normal, surgery and emergency; any state may move to death,
// which is terminal.
type Status string

const (
	StatusNormal    Status = "normal"
	StatusSurgery   Status = "surgery"
	StatusEmergency Status = "emergency"
	StatusDeath     Status = "death"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusNormal, StatusSurgery, StatusEmergency, StatusDeath:
		return true
	}
	return false
}

func (p *Patient) CanTransitionTo(newStatus Status) bool {
	if !newStatus.IsValid() {
		return false
	}
	return p.Status != StatusDeath
}

// UpdateStatus moves the patient to newStatus, recording the death
// date when the new state is death and clearing any stray date
// otherwise. The prior state is left unchanged on rejection.
func (p *Patient) UpdateStatus(newStatus Status, dateOfDeath string) error {
	if !newStatus.IsValid() {
		return ErrInvalidStatus
	}
	if p.Status == StatusDeath {
		return ErrPatientDeceased
	}
	if newStatus == StatusDeath {
		if dateOfDeath == "" {
			return ErrDeathDateRequired
		}
		p.Status = StatusDeath
		p.DateOfDeath = dateOfDeath
		return nil
	}
	p.Status = newStatus
	p.DateOfDeath = ""
	return nil
}
