package service

import (
	"strings"

	"github.com/social-blog-api/internal/models"
)

// Policy answers authorship and moderation questions. It performs no I/O.
type Policy struct {
	moderators map[string]struct{}
}

// NewPolicy creates a policy for the configured moderator identities
func NewPolicy(moderatorEmails []string) *Policy {
	p := &Policy{moderators: make(map[string]struct{}, len(moderatorEmails))}
	for _, email := range moderatorEmails {
		if email = normalizeEmail(email); email != "" {
			p.moderators[email] = struct{}{}
		}
	}
	return p
}

// CanModify reports whether actorID authored the article
func (p *Policy) CanModify(actorID string, article *models.Article) bool {
	return actorID != "" && article != nil && article.AuthorID == actorID
}

// CanModerate reports whether the email belongs to a moderator
func (p *Policy) CanModerate(email string) bool {
	email = normalizeEmail(email)
	if email == "" {
		return false
	}
	_, ok := p.moderators[email]
	return ok
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
