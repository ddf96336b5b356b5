package valueobjects

type ConsentStatus string

const (
	StatusPending  ConsentStatus = "pending"
	StatusAccepted ConsentStatus = "accepted"
	StatusExpired  ConsentStatus = "expired"
)

var validConsentStatuses = map[ConsentStatus]bool{
	StatusPending:  true,
	StatusAccepted: true,
	StatusExpired:  true,
}

// Accepted and expired are terminal.
var consentStatusTransitions = map[ConsentStatus][]ConsentStatus{
	StatusPending: {
		StatusAccepted,
		StatusExpired,
	},
}

func (s ConsentStatus) String() string {
	return string(s)
}

func (s ConsentStatus) IsValid() bool {
	return validConsentStatuses[s]
}

func (s ConsentStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusExpired
}

func (s ConsentStatus) CanTransitionTo(newStatus ConsentStatus) bool {
	for _, allowed := range consentStatusTransitions[s] {
		if allowed == newStatus {
			return true
		}
	}
	return false
}
