package services

import (
	"strings"
	"sync"
	"time"

	apperrors "cryptodash/internal/errors"
	"cryptodash/internal/logger"
	"cryptodash/internal/models"
	"cryptodash/internal/uuid"
)

// sampleVideoURL stands in for the real render output until the video
// pipeline is hooked up.
const sampleVideoURL = "https://storage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4"

// taskService tracks shorts-video render jobs. Tasks live in their own map
// rather than the main store: they are keyed by opaque token, owned by no
// user, and gone on restart like everything else.
type taskService struct {
	mu             sync.RWMutex
	tasks          map[string]*models.VideoTask
	completionTime time.Duration
}

// NewTaskService creates a new TaskServicer. completionTime > 0 schedules
// each task to auto-complete with a sample video after that delay; zero
// leaves tasks pending until CompleteTask is called.
func NewTaskService(completionTime time.Duration) TaskServicer {
	return &taskService{
		tasks:          make(map[string]*models.VideoTask),
		completionTime: completionTime,
	}
}

// CreateTask registers a pending render job and returns its polling token.
func (s *taskService) CreateTask(script, searchQuery string) (*models.VideoTask, error) {
	if strings.TrimSpace(script) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Script is required")
	}

	task := &models.VideoTask{
		ID:          uuid.New(),
		Status:      models.TaskStatusPending,
		Script:      script,
		SearchQuery: searchQuery,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	s.tasks[task.ID] = task
	s.mu.Unlock()

	if s.completionTime > 0 {
		id := task.ID
		time.AfterFunc(s.completionTime, func() {
			if err := s.CompleteTask(id, sampleVideoURL); err != nil {
				logger.Get().Debugw("Task completion skipped", "task_id", id, "error", err)
			}
		})
	}
	return task.Clone(), nil
}

// GetTask returns the current state of a render job.
func (s *taskService) GetTask(taskID string) (*models.VideoTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return nil, apperrors.ErrTaskNotFound
	}
	return task.Clone(), nil
}

// CompleteTask marks a pending job as finished and records the video URL.
func (s *taskService) CompleteTask(taskID, videoURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok {
		return apperrors.ErrTaskNotFound
	}
	task.Status = models.TaskStatusCompleted
	task.VideoURL = videoURL
	return nil
}
