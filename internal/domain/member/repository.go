package member

import (
	"context"

	"github.com/google/uuid"
)

// MemberRepository provides access to members
type MemberRepository interface {
	// FindByID finds a member by their ID
	FindByID(ctx context.Context, id uuid.UUID) (*Member, error)
	// FindByMemberNumber finds a member by their member number
	FindByMemberNumber(ctx context.Context, memberNumber string) (*Member, error)
	// Create persists a new member
	Create(ctx context.Context, member *Member) error
	// Save persists member changes including PIN counters
	Save(ctx context.Context, member *Member) error
}
