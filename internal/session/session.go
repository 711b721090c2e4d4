// Package session creates per-conversation state.
package session

import (
	"github.com/google/uuid"

	"counsellor/internal/domain"
)

// Greeting is the assistant's opening line.
const Greeting = "👋 Hi! What are your interests or hobbies? (Eg: Coding , Maths , Arts , Media , etc)"

// New starts a conversation. The transcript opens with greeting unless it is empty.
func New(greeting string) *domain.SessionState {
	s := &domain.SessionState{
		ID:          uuid.NewString(),
		Personality: domain.PersonalityScore{},
	}
	if greeting != "" {
		s.Append(domain.RoleAssistant, greeting)
	}
	return s
}
