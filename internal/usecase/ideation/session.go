package ideation

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/malithjkd/ai-project-manager/internal/entity"
)

const greetingMessage = "Hi! Let's discuss your project idea. What problem are you trying to solve?"

// session is the in-memory state of one ideation workflow. All access goes
// through the mutex; the slices and form are never handed out directly,
// callers get snapshot copies.
type session struct {
	mu sync.Mutex

	id           string
	state        entity.SessionState
	conversation []entity.ChatMessage
	form         entity.IdeationForm
	createdAt    time.Time
}

func newSession() *session {
	return &session{
		id:           uuid.New().String(),
		state:        entity.StateIdle,
		conversation: []entity.ChatMessage{{Role: entity.RoleModel, Content: greetingMessage}},
		form:         newForm(),
		createdAt:    time.Now(),
	}
}

// newForm builds an empty form with a generated display-only number and
// date. The number uses the last six digits of the current unix millis.
func newForm() entity.IdeationForm {
	return entity.IdeationForm{
		FormNumber: fmt.Sprintf("ID-%06d", time.Now().UnixMilli()%1_000_000),
		Date:       time.Now().Format("2006-01-02"),
	}
}

// snapshot returns a copy safe to hand outside the lock.
func (s *session) snapshot() *entity.SessionDTO {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *session) snapshotLocked() *entity.SessionDTO {
	conv := make([]entity.ChatMessage, len(s.conversation))
	copy(conv, s.conversation)

	return &entity.SessionDTO{
		SessionID:    s.id,
		State:        s.state,
		Conversation: conv,
		Form:         s.form,
	}
}
