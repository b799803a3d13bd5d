package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/planora/planora-api/internal/api/middleware"
	"github.com/planora/planora-api/internal/api/response"
	"github.com/planora/planora-api/internal/domain"
	"github.com/planora/planora-api/internal/service"
)

// MemberHandler handles workspace membership endpoints
type MemberHandler struct {
	membershipService *service.MembershipService
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(membershipService *service.MembershipService) *MemberHandler {
	return &MemberHandler{membershipService: membershipService}
}

// requestIdentity pulls the authenticated user and the workspace from
// the request context, writing the error response itself on failure
func requestIdentity(w http.ResponseWriter, r *http.Request) (userID, workspaceID uuid.UUID, ok bool) {
	userID, ok = middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return uuid.Nil, uuid.Nil, false
	}

	workspaceID, ok = middleware.GetWorkspaceID(r.Context())
	if !ok {
		response.BadRequest(w, "missing workspace ID")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, workspaceID, true
}

// requireManager verifies the caller may manage members: the owner or
// an admin
func (h *MemberHandler) requireManager(w http.ResponseWriter, r *http.Request, userID, workspaceID uuid.UUID) bool {
	members, err := h.membershipService.ListMembers(r.Context(), workspaceID)
	if err != nil {
		response.FromError(w, err)
		return false
	}

	for _, m := range members {
		if m.UserID == userID && (m.Role == domain.RoleOwner || m.Role == domain.RoleAdmin) {
			return true
		}
	}

	response.FromError(w, domain.ErrForbidden)
	return false
}

// List handles listing workspace members
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	_, workspaceID, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	members, err := h.membershipService.ListMembers(r.Context(), workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, members)
}

// Add handles adding a member to a workspace
func (h *MemberHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	if !h.requireManager(w, r, userID, workspaceID) {
		return
	}

	var input domain.MemberAdd
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	member, err := h.membershipService.AddMember(r.Context(), workspaceID, input.UserID, input.Role, userID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, member)
}

// Remove handles removing a member from a workspace
func (h *MemberHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	if !h.requireManager(w, r, userID, workspaceID) {
		return
	}

	targetID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "invalid user ID")
		return
	}

	if err := h.membershipService.RemoveMember(r.Context(), workspaceID, targetID, userID); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}
