package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"cryptodash/internal/services"
)

func setupTaskRouter(handler *TaskHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(1))
	auth.POST("/tasks", handler.CreateTask)
	auth.GET("/tasks/:id", handler.GetTask)
	return r
}

func TestTaskHandler(t *testing.T) {
	t.Run("create_then_poll", func(t *testing.T) {
		handler := NewTaskHandler(services.NewTaskService(0))
		r := setupTaskRouter(handler)

		rec := doRequest(r, "POST", "/tasks", `{"script":"A video about ETH","search_query":"ethereum"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		task := parseJSON(t, rec)["task"].(map[string]interface{})
		taskID := task["task_id"].(string)
		if task["status"] != "pending" {
			t.Errorf("expected pending, got %v", task["status"])
		}

		rec = doRequest(r, "GET", "/tasks/"+taskID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns_404_for_unknown_task", func(t *testing.T) {
		handler := NewTaskHandler(services.NewTaskService(0))
		r := setupTaskRouter(handler)

		rec := doRequest(r, "GET", "/tasks/missing", "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "TASK_NOT_FOUND")
	})

	t.Run("returns_400_without_script", func(t *testing.T) {
		handler := NewTaskHandler(services.NewTaskService(0))
		r := setupTaskRouter(handler)

		rec := doRequest(r, "POST", "/tasks", `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}
