package leads

import (
	"fmt"
	"strings"

	"github.com/itai-digital/chat-relay/internal/alerts"
)

// LeadRequest represents the request body for capturing a lead
type LeadRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Interest string `json:"interest"`
	Message  string `json:"message"`
}

// Validate validates the lead capture request
func (r *LeadRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return ErrMissingEmail
	}
	if strings.TrimSpace(r.Message) == "" {
		return ErrMissingMessage
	}
	return nil
}

// AlertLead converts the request into the dispatcher's lead shape.
func (r *LeadRequest) AlertLead() *alerts.LeadInfo {
	return &alerts.LeadInfo{
		Name:     r.Name,
		Email:    r.Email,
		Phone:    r.Phone,
		Company:  r.Company,
		Interest: r.Interest,
	}
}

// Acknowledgement builds the deterministic reply sent back to the lead.
// No AI call is involved; the wording references whatever the lead gave us.
func (r *LeadRequest) Acknowledgement() string {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = "por contactarnos"
	}
	interest := strings.TrimSpace(r.Interest)
	if interest == "" {
		interest = "nuestros servicios"
	}
	return fmt.Sprintf("Gracias %s. Hemos recibido tu consulta sobre %s. Un especialista de ITAI te contactará pronto al email %s para brindarte una propuesta personalizada.",
		name, interest, r.Email)
}
