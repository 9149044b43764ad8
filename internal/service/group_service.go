package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakshiv-ermaa/splitwise-app/internal/models"
	"github.com/sakshiv-ermaa/splitwise-app/internal/storage"
)

// GroupService manages groups and their member rosters.
type GroupService struct {
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// CreateGroup creates a group from a name and at least two distinct,
// non-empty member names. Member names resolve to users (created on first
// sight) so the same person keeps one identity across groups.
func (s *GroupService) CreateGroup(ctx context.Context, name string, memberNames []string) (*models.Group, error) {
	slog.Info("CreateGroup request received", "name", name, "members_count", len(memberNames))

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: group name must not be empty", models.ErrInvalidGroup)
	}

	cleaned, err := cleanMemberNames(memberNames)
	if err != nil {
		return nil, err
	}
	if len(cleaned) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 members, got %d", models.ErrInvalidGroup, len(cleaned))
	}

	users, err := s.store.EnsureUsers(ctx, cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve members: %w", err)
	}

	group := &models.Group{Name: name}
	for _, u := range users {
		group.Members = append(group.Members, models.Member{UserID: u.ID, Name: u.Name})
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, err
	}

	slog.Info("Group created", "group_id", group.ID, "members_count", len(group.Members))
	return group, nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	return s.store.GetGroup(ctx, groupID)
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context) ([]*models.Group, error) {
	return s.store.ListGroups(ctx)
}

// AddMembers appends new members to an existing group. The member set only
// grows; names already in the group are rejected rather than silently
// deduplicated.
func (s *GroupService) AddMembers(ctx context.Context, groupID string, memberNames []string) (*models.Group, error) {
	slog.Info("AddMembers request received", "group_id", groupID, "members_count", len(memberNames))

	cleaned, err := cleanMemberNames(memberNames)
	if err != nil {
		return nil, err
	}
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: no members to add", models.ErrInvalidGroup)
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	for _, name := range cleaned {
		for _, m := range group.Members {
			if m.Name == name {
				return nil, fmt.Errorf("%w: %q is already a member", models.ErrInvalidGroup, name)
			}
		}
	}

	users, err := s.store.EnsureUsers(ctx, cleaned)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve members: %w", err)
	}
	members := make([]models.Member, len(users))
	for i, u := range users {
		members[i] = models.Member{UserID: u.ID, Name: u.Name}
	}
	if err := s.store.AddGroupMembers(ctx, groupID, members); err != nil {
		slog.Error("AddMembers failed", "group_id", groupID, "error", err)
		return nil, err
	}

	slog.Info("Members added", "group_id", groupID, "added_count", len(members))
	return s.store.GetGroup(ctx, groupID)
}

// cleanMemberNames trims names and rejects empties and duplicates.
func cleanMemberNames(names []string) ([]string, error) {
	seen := make(map[string]bool, len(names))
	cleaned := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: member name must not be empty", models.ErrInvalidGroup)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate member name %q", models.ErrInvalidGroup, name)
		}
		seen[name] = true
		cleaned = append(cleaned, name)
	}
	return cleaned, nil
}
