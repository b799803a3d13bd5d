package handler

import (
	"encoding/json"
	"net/http"

	"github.com/planora/planora-api/internal/api/middleware"
	"github.com/planora/planora-api/internal/api/response"
	"github.com/planora/planora-api/internal/domain"
	"github.com/planora/planora-api/internal/service"
)

// InvitationHandler handles workspace invitation endpoints
type InvitationHandler struct {
	invitationService *service.InvitationService
	memberHandler     *MemberHandler
}

// NewInvitationHandler creates a new invitation handler
func NewInvitationHandler(invitationService *service.InvitationService, memberHandler *MemberHandler) *InvitationHandler {
	return &InvitationHandler{
		invitationService: invitationService,
		memberHandler:     memberHandler,
	}
}

// invitationCreated is the one response that ever carries a raw token
type invitationCreated struct {
	Invitation *domain.WorkspaceInvitation `json:"invitation"`
	Token      string                      `json:"token"`
}

// Create handles issuing an invitation. The raw token in the response
// is the only time it can be read; it is the value a notification
// channel would deliver to the invitee.
func (h *InvitationHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	if !h.memberHandler.requireManager(w, r, userID, workspaceID) {
		return
	}

	var input domain.InvitationCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	invitation, rawToken, err := h.invitationService.Create(r.Context(), workspaceID, input.Email, input.Role, userID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, invitationCreated{Invitation: invitation, Token: rawToken})
}

// List handles listing a workspace's invitations, optionally filtered
// by ?status=pending|accepted
func (h *InvitationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	if !h.memberHandler.requireManager(w, r, userID, workspaceID) {
		return
	}

	var status *domain.InvitationStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := domain.InvitationStatus(s)
		if st != domain.InvitationPending && st != domain.InvitationAccepted {
			response.BadRequest(w, "invalid status filter")
			return
		}
		status = &st
	}

	invitations, err := h.invitationService.List(r.Context(), workspaceID, status)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, invitations)
}

// Accept handles redeeming an invitation token. It is not scoped to a
// workspace: the token alone identifies both the workspace and the
// role.
func (h *InvitationHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.InvitationAccept
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	invitation, err := h.invitationService.Accept(r.Context(), input.Token, userID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, invitation)
}
