package mailer

import (
	"testing"

	"github.com/connectsphere/backend/pkg/matching"

	"github.com/stretchr/testify/assert"
)

func TestRenderMatchEmail(t *testing.T) {
	recipient := matching.Candidate{Username: "alice", Email: "alice@example.com"}
	partner := matching.Candidate{
		Username: "bob",
		Email:    "bob@example.com",
		JobTitle: "Senior Engineer",
		Company:  "Acme Inc",
		Industry: "Technology",
	}

	body := renderMatchEmail(recipient, partner, 85)

	assert.Contains(t, body, "alice")
	assert.Contains(t, body, "bob")
	assert.Contains(t, body, "Senior Engineer")
	assert.Contains(t, body, "Acme Inc")
	assert.Contains(t, body, "85/100")
}

func TestRenderNoMatchEmail(t *testing.T) {
	recipient := matching.Candidate{Username: "carol", Email: "carol@example.com"}

	body := renderNoMatchEmail(recipient)

	assert.Contains(t, body, "carol")
	assert.Contains(t, body, "next month")
}
