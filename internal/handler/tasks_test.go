package handler

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/QuestForge_Go/internal/domain"
	"github.com/osse101/QuestForge_Go/internal/reward"
)

func TestHandleCreateTask(t *testing.T) {
	owner, partner := uuid.New(), uuid.New()

	t.Run("maps the request onto a task", func(t *testing.T) {
		svc := &MockGameService{}
		svc.On("CreateTask", mock.Anything, mock.MatchedBy(func(tk *domain.GameTask) bool {
			return tk.OwnerID == owner &&
				tk.AssignedByID != nil && *tk.AssignedByID == partner &&
				tk.Category == domain.CategoryPhysical &&
				tk.Recurrence == domain.RecurrenceDaily &&
				tk.BaseEXP == 40
		})).Return(&domain.GameTask{ID: uuid.New(), OwnerID: owner, Status: domain.TaskPending}, nil)
		h := newGameHandlers(svc)

		rec := serve(t, http.MethodPost, "/tasks", "/tasks", CreateTaskRequest{
			OwnerID:      owner,
			AssignedByID: &partner,
			Title:        "Morning run",
			Category:     "Physical",
			BaseEXP:      40,
			BaseGold:     10,
			Recurrence:   "daily",
		}, h.HandleCreateTask())

		assert.Equal(t, http.StatusCreated, rec.Code)
		svc.AssertExpectations(t)
	})

	t.Run("validation", func(t *testing.T) {
		h := newGameHandlers(&MockGameService{})
		for name, req := range map[string]CreateTaskRequest{
			"missing owner":      {Title: "x", Category: "mental"},
			"unknown category":   {OwnerID: owner, Title: "x", Category: "cooking"},
			"negative exp":       {OwnerID: owner, Title: "x", Category: "mental", BaseEXP: -5},
			"bad recurrence":     {OwnerID: owner, Title: "x", Category: "mental", Recurrence: "hourly"},
			"bad verification":   {OwnerID: owner, Title: "x", Category: "mental", Verification: "selfie"},
			"missing task title": {OwnerID: owner, Category: "mental"},
		} {
			rec := serve(t, http.MethodPost, "/tasks", "/tasks", req, h.HandleCreateTask())
			assert.Equal(t, http.StatusBadRequest, rec.Code, name)
		}
	})
}

func TestHandleCompleteTask(t *testing.T) {
	taskID := uuid.New()
	path := "/tasks/" + taskID.String() + "/complete"

	t.Run("applied", func(t *testing.T) {
		svc := &MockGameService{}
		svc.On("CompleteTask", mock.Anything, taskID, uuid.Nil, reward.Signals{GeofencePassed: true}).
			Return(&reward.Result{TaskID: taskID, ChainEXP: 55, ChainGold: 12}, nil)
		h := newGameHandlers(svc)

		rec := serve(t, http.MethodPost, "/tasks/{id}/complete", path,
			CompleteTaskRequest{Signals: reward.Signals{GeofencePassed: true}}, h.HandleCompleteTask())

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 55, decode[reward.Result](t, rec).ChainEXP)
	})

	t.Run("escrowed answers accepted", func(t *testing.T) {
		svc := &MockGameService{}
		svc.On("CompleteTask", mock.Anything, taskID, mock.Anything, mock.Anything).
			Return(&reward.Result{TaskID: taskID, PendingConfirmation: true}, nil)
		h := newGameHandlers(svc)

		rec := serve(t, http.MethodPost, "/tasks/{id}/complete", path, CompleteTaskRequest{}, h.HandleCompleteTask())

		assert.Equal(t, http.StatusAccepted, rec.Code)
	})

	t.Run("already completed", func(t *testing.T) {
		svc := &MockGameService{}
		svc.On("CompleteTask", mock.Anything, taskID, mock.Anything, mock.Anything).
			Return(nil, domain.ErrTaskNotPending)
		h := newGameHandlers(svc)

		rec := serve(t, http.MethodPost, "/tasks/{id}/complete", path, CompleteTaskRequest{}, h.HandleCompleteTask())

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), ErrMsgTaskNotPendingError)
	})
}

func TestHandleConfirmAndDispute(t *testing.T) {
	taskID, partner := uuid.New(), uuid.New()

	t.Run("confirm by non-partner", func(t *testing.T) {
		svc := &MockGameService{}
		svc.On("ConfirmTask", mock.Anything, taskID, partner).Return(nil, domain.ErrNotTaskPartner)
		h := newGameHandlers(svc)

		rec := serve(t, http.MethodPost, "/tasks/{id}/confirm", "/tasks/"+taskID.String()+"/confirm",
			ConfirmTaskRequest{ConfirmerID: partner}, h.HandleConfirmTask())

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("confirm requires a confirmer", func(t *testing.T) {
		h := newGameHandlers(&MockGameService{})
		rec := serve(t, http.MethodPost, "/tasks/{id}/confirm", "/tasks/"+taskID.String()+"/confirm",
			ConfirmTaskRequest{}, h.HandleConfirmTask())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("dispute", func(t *testing.T) {
		svc := &MockGameService{}
		svc.On("DisputeTask", mock.Anything, taskID, partner, "no photo").
			Return(&domain.GameTask{ID: taskID, Status: domain.TaskPending, DisputeReason: "no photo"}, nil)
		h := newGameHandlers(svc)

		rec := serve(t, http.MethodPost, "/tasks/{id}/dispute", "/tasks/"+taskID.String()+"/dispute",
			DisputeTaskRequest{DisputerID: partner, Reason: "no photo"}, h.HandleDisputeTask())

		assert.Equal(t, http.StatusOK, rec.Code)
		got := decode[domain.GameTask](t, rec)
		assert.Equal(t, domain.TaskPending, got.Status)
	})
}

func TestHandleListTasksAndBundle(t *testing.T) {
	owner := uuid.New()
	svc := &MockGameService{}
	svc.On("ListTasks", mock.Anything, owner).Return([]*domain.GameTask{{ID: uuid.New(), OwnerID: owner}}, nil)
	svc.On("CreateBundle", mock.Anything, mock.MatchedBy(func(b *domain.RoutineBundle) bool {
		return b.OwnerID == owner && len(b.TaskIDs) == 2
	})).Return(&domain.RoutineBundle{ID: uuid.New(), OwnerID: owner}, nil)
	h := newGameHandlers(svc)

	rec := serve(t, http.MethodGet, "/characters/{id}/tasks", "/characters/"+owner.String()+"/tasks", nil, h.HandleListTasks())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), owner.String())

	rec = serve(t, http.MethodPost, "/bundles", "/bundles", CreateBundleRequest{
		OwnerID: owner, Theme: "Morning", TaskIDs: []uuid.UUID{uuid.New(), uuid.New()}, PerHabitEXP: 5,
	}, h.HandleCreateBundle())
	assert.Equal(t, http.StatusCreated, rec.Code)
	svc.AssertExpectations(t)
}
