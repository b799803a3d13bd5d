package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockWorkspaceStore mocks the WorkspaceStore interface
type MockWorkspaceStore struct {
	mock.Mock
}

func (m *MockWorkspaceStore) Create(ctx context.Context, workspace *domain.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockWorkspaceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Workspace), args.Error(1)
}

func (m *MockWorkspaceStore) Update(ctx context.Context, id uuid.UUID, update *domain.WorkspaceUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockWorkspaceStore) SetArchived(ctx context.Context, id uuid.UUID, archived bool) error {
	args := m.Called(ctx, id, archived)
	return args.Error(0)
}

func (m *MockWorkspaceStore) SetDeleted(ctx context.Context, id uuid.UUID, deletedAt time.Time) error {
	args := m.Called(ctx, id, deletedAt)
	return args.Error(0)
}

func (m *MockWorkspaceStore) SlugExists(ctx context.Context, ownerID uuid.UUID, slug string) (bool, error) {
	args := m.Called(ctx, ownerID, slug)
	return args.Bool(0), args.Error(1)
}

// MockMembershipStore mocks the MembershipStore interface
type MockMembershipStore struct {
	mock.Mock
}

func (m *MockMembershipStore) Create(ctx context.Context, member *domain.WorkspaceMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMembershipStore) GetByWorkspaceAndUser(ctx context.Context, workspaceID, userID uuid.UUID) (*domain.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceMember), args.Error(1)
}

func (m *MockMembershipStore) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.WorkspaceMember), args.Error(1)
}

func (m *MockMembershipStore) Delete(ctx context.Context, workspaceID, userID uuid.UUID) error {
	args := m.Called(ctx, workspaceID, userID)
	return args.Error(0)
}

// MockInvitationStore mocks the InvitationStore interface
type MockInvitationStore struct {
	mock.Mock
}

func (m *MockInvitationStore) Create(ctx context.Context, invitation *domain.WorkspaceInvitation) error {
	args := m.Called(ctx, invitation)
	return args.Error(0)
}

func (m *MockInvitationStore) ListRedeemable(ctx context.Context) ([]domain.WorkspaceInvitation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.WorkspaceInvitation), args.Error(1)
}

func (m *MockInvitationStore) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID) ([]domain.WorkspaceInvitation, error) {
	args := m.Called(ctx, workspaceID)
	return args.Get(0).([]domain.WorkspaceInvitation), args.Error(1)
}

func (m *MockInvitationStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvitationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockAuditStore mocks the AuditStore interface
type MockAuditStore struct {
	mock.Mock
}

func (m *MockAuditStore) Append(ctx context.Context, entry *domain.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditStore) ListByWorkspace(ctx context.Context, workspaceID uuid.UUID, limit int) ([]domain.AuditLogEntry, error) {
	args := m.Called(ctx, workspaceID, limit)
	return args.Get(0).([]domain.AuditLogEntry), args.Error(1)
}

// MockUserStore mocks the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}
