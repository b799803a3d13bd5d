package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora-api/internal/domain"
	"github.com/planora/planora-api/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newInvitationFixture(workspaceStore *MockWorkspaceStore, invitationStore *MockInvitationStore, membershipStore *MockMembershipStore, auditStore *MockAuditStore) *InvitationService {
	audit := NewAuditTrail(auditStore)
	members := NewMembershipService(workspaceStore, membershipStore, audit, nil)
	return NewInvitationService(workspaceStore, invitationStore, members, audit, security.NewBcryptHasher(bcrypt.MinCost), 72*time.Hour)
}

func pendingInvitation(t *testing.T, workspaceID uuid.UUID, rawToken, role string) domain.WorkspaceInvitation {
	t.Helper()
	hash, err := security.NewBcryptHasher(bcrypt.MinCost).Hash(rawToken)
	assert.NoError(t, err)
	return domain.WorkspaceInvitation{
		ID:          uuid.New(),
		WorkspaceID: workspaceID,
		Email:       "invitee@example.com",
		TokenHash:   hash,
		Role:        role,
		InvitedByID: uuid.New(),
		ExpiresAt:   time.Now().Add(24 * time.Hour),
		Status:      domain.InvitationPending,
		CreatedAt:   time.Now(),
	}
}

func TestInvitationService_Create(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("persists only the token hash", func(t *testing.T) {
		workspaceStore := new(MockWorkspaceStore)
		invitationStore := new(MockInvitationStore)
		auditStore := new(MockAuditStore)
		svc := newInvitationFixture(workspaceStore, invitationStore, new(MockMembershipStore), auditStore)

		ws := liveWorkspace(ownerID)
		workspaceStore.On("GetByID", ctx, ws.ID).Return(ws, nil)

		var stored *domain.WorkspaceInvitation
		invitationStore.On("Create", ctx, mock.AnythingOfType("*domain.WorkspaceInvitation")).
			Run(func(args mock.Arguments) {
				stored = args.Get(1).(*domain.WorkspaceInvitation)
			}).
			Return(nil)
		auditStore.On("Append", ctx, mock.MatchedBy(func(e *domain.AuditLogEntry) bool {
			return e.Action == domain.AuditInvitationCreated &&
				e.Payload["email"] == "invitee@example.com" &&
				e.Payload["role"] == domain.RoleAdmin
		})).Return(nil)

		invitation, rawToken, err := svc.Create(ctx, ws.ID, "invitee@example.com", domain.RoleAdmin, ownerID)
		assert.NoError(t, err)
		assert.NotEmpty(t, rawToken)
		assert.NotEqual(t, rawToken, invitation.TokenHash)
		assert.NotContains(t, invitation.TokenHash, rawToken)
		assert.Equal(t, stored.TokenHash, invitation.TokenHash)
		assert.True(t, security.NewBcryptHasher(bcrypt.MinCost).Compare(rawToken, stored.TokenHash))
		assert.Equal(t, domain.InvitationPending, invitation.Status)
		auditStore.AssertExpectations(t)
	})

	t.Run("defaults role to member", func(t *testing.T) {
		workspaceStore := new(MockWorkspaceStore)
		invitationStore := new(MockInvitationStore)
		auditStore := new(MockAuditStore)
		svc := newInvitationFixture(workspaceStore, invitationStore, new(MockMembershipStore), auditStore)

		ws := liveWorkspace(ownerID)
		workspaceStore.On("GetByID", ctx, ws.ID).Return(ws, nil)
		invitationStore.On("Create", ctx, mock.AnythingOfType("*domain.WorkspaceInvitation")).Return(nil)
		auditStore.On("Append", ctx, mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)

		invitation, _, err := svc.Create(ctx, ws.ID, "invitee@example.com", "", ownerID)
		assert.NoError(t, err)
		assert.Equal(t, domain.RoleMember, invitation.Role)
	})

	t.Run("rejects owner role", func(t *testing.T) {
		svc := newInvitationFixture(new(MockWorkspaceStore), new(MockInvitationStore), new(MockMembershipStore), new(MockAuditStore))

		_, _, err := svc.Create(ctx, uuid.New(), "invitee@example.com", domain.RoleOwner, ownerID)
		assert.Error(t, err)
	})

	t.Run("returns not found for deleted workspace", func(t *testing.T) {
		workspaceStore := new(MockWorkspaceStore)
		svc := newInvitationFixture(workspaceStore, new(MockInvitationStore), new(MockMembershipStore), new(MockAuditStore))

		ws := liveWorkspace(ownerID)
		ws.IsDeleted = true
		workspaceStore.On("GetByID", ctx, ws.ID).Return(ws, nil)

		_, _, err := svc.Create(ctx, ws.ID, "invitee@example.com", domain.RoleMember, ownerID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestInvitationService_Accept(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	userID := uuid.New()
	rawToken := "raw-invitation-token"

	t.Run("creates membership with the invited role and marks accepted", func(t *testing.T) {
		workspaceStore := new(MockWorkspaceStore)
		invitationStore := new(MockInvitationStore)
		membershipStore := new(MockMembershipStore)
		auditStore := new(MockAuditStore)
		svc := newInvitationFixture(workspaceStore, invitationStore, membershipStore, auditStore)

		ws := liveWorkspace(ownerID)
		inv := pendingInvitation(t, ws.ID, rawToken, domain.RoleAdmin)

		invitationStore.On("ListRedeemable", ctx).Return([]domain.WorkspaceInvitation{inv}, nil)
		workspaceStore.On("GetByID", ctx, ws.ID).Return(ws, nil)
		membershipStore.On("GetByWorkspaceAndUser", ctx, ws.ID, userID).Return(nil, nil)
		membershipStore.On("Create", ctx, mock.MatchedBy(func(m *domain.WorkspaceMember) bool {
			return m.WorkspaceID == ws.ID && m.UserID == userID && m.Role == domain.RoleAdmin
		})).Return(nil)
		invitationStore.On("UpdateStatus", ctx, inv.ID, domain.InvitationAccepted).Return(nil)
		auditStore.On("Append", ctx, mock.MatchedBy(func(e *domain.AuditLogEntry) bool {
			return e.Action == domain.AuditMemberAdded
		})).Return(nil).Once()
		auditStore.On("Append", ctx, mock.MatchedBy(func(e *domain.AuditLogEntry) bool {
			return e.Action == domain.AuditInvitationAccepted &&
				e.Payload["user_id"] == userID.String()
		})).Return(nil).Once()

		accepted, err := svc.Accept(ctx, rawToken, userID)
		assert.NoError(t, err)
		assert.Equal(t, domain.InvitationAccepted, accepted.Status)
		membershipStore.AssertExpectations(t)
		auditStore.AssertExpectations(t)
	})

	t.Run("repeat acceptance succeeds without a second membership row", func(t *testing.T) {
		workspaceStore := new(MockWorkspaceStore)
		invitationStore := new(MockInvitationStore)
		membershipStore := new(MockMembershipStore)
		auditStore := new(MockAuditStore)
		svc := newInvitationFixture(workspaceStore, invitationStore, membershipStore, auditStore)

		ws := liveWorkspace(ownerID)
		inv := pendingInvitation(t, ws.ID, rawToken, domain.RoleAdmin)
		inv.Status = domain.InvitationAccepted
		existing := explicitMember(ws.ID, userID, domain.RoleAdmin)

		invitationStore.On("ListRedeemable", ctx).Return([]domain.WorkspaceInvitation{inv}, nil)
		workspaceStore.On("GetByID", ctx, ws.ID).Return(ws, nil)
		membershipStore.On("GetByWorkspaceAndUser", ctx, ws.ID, userID).Return(&existing, nil)
		invitationStore.On("UpdateStatus", ctx, inv.ID, domain.InvitationAccepted).Return(nil)
		auditStore.On("Append", ctx, mock.MatchedBy(func(e *domain.AuditLogEntry) bool {
			return e.Action == domain.AuditInvitationAccepted
		})).Return(nil).Once()

		accepted, err := svc.Accept(ctx, rawToken, userID)
		assert.NoError(t, err)
		assert.Equal(t, domain.InvitationAccepted, accepted.Status)
		membershipStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		auditStore.AssertExpectations(t)
	})

	t.Run("rejects expired invitation without side effects", func(t *testing.T) {
		invitationStore := new(MockInvitationStore)
		membershipStore := new(MockMembershipStore)
		svc := newInvitationFixture(new(MockWorkspaceStore), invitationStore, membershipStore, new(MockAuditStore))

		inv := pendingInvitation(t, uuid.New(), rawToken, domain.RoleMember)
		inv.ExpiresAt = time.Now().Add(-time.Hour)
		invitationStore.On("ListRedeemable", ctx).Return([]domain.WorkspaceInvitation{inv}, nil)

		_, err := svc.Accept(ctx, rawToken, userID)
		assert.ErrorIs(t, err, domain.ErrInvitationExpired)
		membershipStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		invitationStore.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown token returns not found", func(t *testing.T) {
		invitationStore := new(MockInvitationStore)
		svc := newInvitationFixture(new(MockWorkspaceStore), invitationStore, new(MockMembershipStore), new(MockAuditStore))

		inv := pendingInvitation(t, uuid.New(), "a-different-token", domain.RoleMember)
		invitationStore.On("ListRedeemable", ctx).Return([]domain.WorkspaceInvitation{inv}, nil)

		_, err := svc.Accept(ctx, rawToken, userID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("first matching invitation wins", func(t *testing.T) {
		workspaceStore := new(MockWorkspaceStore)
		invitationStore := new(MockInvitationStore)
		membershipStore := new(MockMembershipStore)
		auditStore := new(MockAuditStore)
		svc := newInvitationFixture(workspaceStore, invitationStore, membershipStore, auditStore)

		ws := liveWorkspace(ownerID)
		first := pendingInvitation(t, ws.ID, rawToken, domain.RoleViewer)
		second := pendingInvitation(t, ws.ID, rawToken, domain.RoleAdmin)

		invitationStore.On("ListRedeemable", ctx).Return([]domain.WorkspaceInvitation{first, second}, nil)
		workspaceStore.On("GetByID", ctx, ws.ID).Return(ws, nil)
		membershipStore.On("GetByWorkspaceAndUser", ctx, ws.ID, userID).Return(nil, nil)
		membershipStore.On("Create", ctx, mock.MatchedBy(func(m *domain.WorkspaceMember) bool {
			return m.Role == domain.RoleViewer
		})).Return(nil)
		invitationStore.On("UpdateStatus", ctx, first.ID, domain.InvitationAccepted).Return(nil)
		auditStore.On("Append", ctx, mock.AnythingOfType("*domain.AuditLogEntry")).Return(nil)

		accepted, err := svc.Accept(ctx, rawToken, userID)
		assert.NoError(t, err)
		assert.Equal(t, first.ID, accepted.ID)
	})
}

func TestInvitationService_List(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()

	t.Run("filters by status when requested", func(t *testing.T) {
		workspaceStore := new(MockWorkspaceStore)
		invitationStore := new(MockInvitationStore)
		svc := newInvitationFixture(workspaceStore, invitationStore, new(MockMembershipStore), new(MockAuditStore))

		ws := liveWorkspace(ownerID)
		pending := pendingInvitation(t, ws.ID, "token-a", domain.RoleMember)
		accepted := pendingInvitation(t, ws.ID, "token-b", domain.RoleMember)
		accepted.Status = domain.InvitationAccepted

		workspaceStore.On("GetByID", ctx, ws.ID).Return(ws, nil)
		invitationStore.On("ListByWorkspace", ctx, ws.ID).Return([]domain.WorkspaceInvitation{pending, accepted}, nil)

		status := domain.InvitationPending
		invitations, err := svc.List(ctx, ws.ID, &status)
		assert.NoError(t, err)
		assert.Len(t, invitations, 1)
		assert.Equal(t, pending.ID, invitations[0].ID)
	})

	t.Run("returns expired invitations unchanged", func(t *testing.T) {
		workspaceStore := new(MockWorkspaceStore)
		invitationStore := new(MockInvitationStore)
		svc := newInvitationFixture(workspaceStore, invitationStore, new(MockMembershipStore), new(MockAuditStore))

		ws := liveWorkspace(ownerID)
		expired := pendingInvitation(t, ws.ID, "token-c", domain.RoleMember)
		expired.ExpiresAt = time.Now().Add(-time.Hour)

		workspaceStore.On("GetByID", ctx, ws.ID).Return(ws, nil)
		invitationStore.On("ListByWorkspace", ctx, ws.ID).Return([]domain.WorkspaceInvitation{expired}, nil)

		invitations, err := svc.List(ctx, ws.ID, nil)
		assert.NoError(t, err)
		assert.Len(t, invitations, 1)
		assert.Equal(t, domain.InvitationPending, invitations[0].Status)
		assert.True(t, invitations[0].IsExpired(time.Now()))
	})
}
