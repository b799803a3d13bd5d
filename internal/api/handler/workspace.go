package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/planora/planora-api/internal/api/middleware"
	"github.com/planora/planora-api/internal/api/response"
	"github.com/planora/planora-api/internal/domain"
	"github.com/planora/planora-api/internal/service"
)

// WorkspaceHandler handles workspace endpoints
type WorkspaceHandler struct {
	workspaceService *service.WorkspaceService
	lifecycleService *service.LifecycleService
}

// NewWorkspaceHandler creates a new workspace handler
func NewWorkspaceHandler(workspaceService *service.WorkspaceService, lifecycleService *service.LifecycleService) *WorkspaceHandler {
	return &WorkspaceHandler{
		workspaceService: workspaceService,
		lifecycleService: lifecycleService,
	}
}

// Create handles workspace creation
func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.WorkspaceCreate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	workspace, err := h.workspaceService.Create(r.Context(), userID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Created(w, workspace)
}

// List handles listing user's workspaces
func (h *WorkspaceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	workspaces, err := h.workspaceService.ListByUser(r.Context(), userID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, workspaces)
}

// Get handles getting a workspace by ID
func (h *WorkspaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.GetByID(r.Context(), userID, workspaceID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, workspace)
}

// Update handles updating a workspace
func (h *WorkspaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	var input domain.WorkspaceUpdate
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	workspace, err := h.workspaceService.Update(r.Context(), userID, workspaceID, input)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, workspace)
}

// Archive handles archiving a workspace (owner only, idempotent)
func (h *WorkspaceHandler) Archive(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	workspace, err := h.lifecycleService.Archive(r.Context(), workspaceID, userID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, workspace)
}

// Restore handles un-archiving a workspace (owner only, idempotent)
func (h *WorkspaceHandler) Restore(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	workspace, err := h.lifecycleService.Restore(r.Context(), workspaceID, userID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, workspace)
}

// Delete handles soft-deleting a workspace (owner only)
func (h *WorkspaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	if err := h.lifecycleService.SoftDelete(r.Context(), workspaceID, userID); err != nil {
		response.FromError(w, err)
		return
	}

	response.NoContent(w)
}

// AuditLog handles listing recent audit entries for a workspace
func (h *WorkspaceHandler) AuditLog(w http.ResponseWriter, r *http.Request) {
	userID, workspaceID, ok := requestIdentity(w, r)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	entries, err := h.workspaceService.AuditLog(r.Context(), userID, workspaceID, limit)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.OK(w, entries)
}
