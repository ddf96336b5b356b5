package usecases

import "github.com/hhgcare/hhg/internal/domain/privacy"

const (
	fieldPhone       = "phone"
	fieldPatientName = "patient_name"
)

// fieldAAD binds a sealed field to its patient and column.
func fieldAAD(hash privacy.PhoneHash, field string) []byte {
	return []byte(hash.String() + "|" + field)
}
