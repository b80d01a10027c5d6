// internal/domain/draw/dto.go
package draw

type PlayRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"max=120"`
}

type EligibilityResponse struct {
	CanPlay       bool             `json:"can_play"`
	Reason        IneligibleReason `json:"reason,omitempty"`
	Message       string           `json:"message,omitempty"`
	DaysRemaining int              `json:"days_remaining,omitempty"`
	Eligibility   *Eligibility     `json:"eligibility,omitempty"`
}
