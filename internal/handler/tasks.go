package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/logger"
	"github.com/osse101/QuestForge_Go/internal/reward"
)

// CreateTaskRequest is the body of POST /tasks
type CreateTaskRequest struct {
	OwnerID      uuid.UUID  `json:"owner_id" validate:"required"`
	AssignedByID *uuid.UUID `json:"assigned_by_id,omitempty"`
	Title        string     `json:"title" validate:"required,max=200,excludesall=\x00"`
	Category     string     `json:"category" validate:"required,category"`
	BaseEXP      int        `json:"base_exp" validate:"min=0,max=100000"`
	BaseGold     int        `json:"base_gold" validate:"min=0,max=100000"`
	Verification string     `json:"verification" validate:"omitempty,oneof=none photo location both"`
	IsHabit      bool       `json:"is_habit"`
	Recurrence   string     `json:"recurrence" validate:"omitempty,oneof=none daily weekly"`
	IsCoopDuty   bool       `json:"is_coop_duty"`
}

// CreateBundleRequest is the body of POST /bundles
type CreateBundleRequest struct {
	OwnerID     uuid.UUID   `json:"owner_id" validate:"required"`
	Theme       string      `json:"theme" validate:"required,max=100"`
	TaskIDs     []uuid.UUID `json:"task_ids" validate:"required,min=2"`
	PerHabitEXP int         `json:"per_habit_exp" validate:"min=0,max=10000"`
}

// CompleteTaskRequest is the body of POST /tasks/{id}/complete. ActorID
// defaults to the task owner.
type CompleteTaskRequest struct {
	ActorID uuid.UUID      `json:"actor_id"`
	Signals reward.Signals `json:"signals"`
}

// ConfirmTaskRequest is the body of POST /tasks/{id}/confirm
type ConfirmTaskRequest struct {
	ConfirmerID uuid.UUID `json:"confirmer_id" validate:"required"`
}

// DisputeTaskRequest is the body of POST /tasks/{id}/dispute
type DisputeTaskRequest struct {
	DisputerID uuid.UUID `json:"disputer_id" validate:"required"`
	Reason     string    `json:"reason" validate:"max=500"`
}

// HandleCreateTask registers a new task for a character
// @Summary Create task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body CreateTaskRequest true "Task definition"
// @Success 201 {object} domain.GameTask
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/tasks [post]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleCreateTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTaskRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create task"); err != nil {
			return
		}
		t, err := h.svc.CreateTask(r.Context(), &domain.GameTask{
			OwnerID:      req.OwnerID,
			AssignedByID: req.AssignedByID,
			Title:        req.Title,
			Category:     domain.TaskCategory(strings.ToLower(req.Category)),
			BaseEXP:      req.BaseEXP,
			BaseGold:     req.BaseGold,
			Verification: domain.VerificationType(req.Verification),
			IsHabit:      req.IsHabit,
			Recurrence:   domain.Recurrence(req.Recurrence),
			IsCoopDuty:   req.IsCoopDuty,
		})
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, t)
	}
}

// HandleCreateBundle groups habits into a routine bundle
// @Summary Create routine bundle
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body CreateBundleRequest true "Bundle definition"
// @Success 201 {object} domain.RoutineBundle
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/bundles [post]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleCreateBundle() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateBundleRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create bundle"); err != nil {
			return
		}
		b, err := h.svc.CreateBundle(r.Context(), &domain.RoutineBundle{
			OwnerID:     req.OwnerID,
			Theme:       req.Theme,
			TaskIDs:     req.TaskIDs,
			PerHabitEXP: req.PerHabitEXP,
		})
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusCreated, b)
	}
}

// HandleListTasks lists every task owned by a character
// @Summary List a character's tasks
// @Tags tasks
// @Produce json
// @Param id path string true "Character ID"
// @Success 200 {object} DataResponse{data=[]domain.GameTask}
// @Router /api/v1/characters/{id}/tasks [get]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleListTasks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamUUID(w, r, "id")
		if !ok {
			return
		}
		tasks, err := h.svc.ListTasks(r.Context(), id)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: tasks})
	}
}

// HandleCompleteTask completes a task. An escrowed completion answers 202.
// @Summary Complete task
// @Description Partner-assigned tasks are held in escrow and answer 202 until the partner confirms
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body CompleteTaskRequest true "Actor and verification signals"
// @Success 200 {object} reward.Result
// @Success 202 {object} reward.Result
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/tasks/{id}/complete [post]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleCompleteTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamUUID(w, r, "id")
		if !ok {
			return
		}
		var req CompleteTaskRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Complete task"); err != nil {
			return
		}
		res, err := h.svc.CompleteTask(r.Context(), id, req.ActorID, req.Signals)
		if err != nil {
			logger.FromContext(r.Context()).Warn("Task completion rejected", "task_id", id, "error", err)
			respondServiceError(w, err)
			return
		}
		status := http.StatusOK
		if res.PendingConfirmation {
			status = http.StatusAccepted
		}
		respondJSON(w, status, res)
	}
}

// HandleConfirmTask releases an escrowed completion
// @Summary Confirm escrowed task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body ConfirmTaskRequest true "Confirming partner"
// @Success 200 {object} reward.Result
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/tasks/{id}/confirm [post]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleConfirmTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamUUID(w, r, "id")
		if !ok {
			return
		}
		var req ConfirmTaskRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Confirm task"); err != nil {
			return
		}
		res, err := h.svc.ConfirmTask(r.Context(), id, req.ConfirmerID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

// HandleDisputeTask rejects an escrowed completion
// @Summary Dispute escrowed task
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body DisputeTaskRequest true "Disputing partner and reason"
// @Success 200 {object} domain.GameTask
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/tasks/{id}/dispute [post]
// @Security ApiKeyAuth
func (h *GameHandlers) HandleDisputeTask() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := URLParamUUID(w, r, "id")
		if !ok {
			return
		}
		var req DisputeTaskRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Dispute task"); err != nil {
			return
		}
		t, err := h.svc.DisputeTask(r.Context(), id, req.DisputerID, req.Reason)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, t)
	}
}
