package domain

import "fmt"

// ViolationCategory groups screening failures
type ViolationCategory string

const (
	ViolationInjection ViolationCategory = "injection"
	ViolationDoS       ViolationCategory = "dos"
	ViolationMalicious ViolationCategory = "malicious"
	ViolationResource  ViolationCategory = "resource"
)

// SecurityViolation is returned by the screener on the first matching rule
type SecurityViolation struct {
	Category    ViolationCategory `json:"category"`
	Description string            `json:"description"`
}

func (v *SecurityViolation) Error() string {
	return fmt.Sprintf("security violation (%s): %s", v.Category, v.Description)
}
