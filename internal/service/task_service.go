package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/dkearns/tasktrack/internal/domain"
	"github.com/dkearns/tasktrack/internal/repository"
)

const maxTitleLength = 200

type TaskService struct {
	taskRepo repository.TaskRepository
}

func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

type CreateTaskInput struct {
	Title       string
	Description string
	Priority    domain.Priority
	DueDate     string
	Completed   bool
}

// UpdateTaskInput carries a partial update: nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Priority    *domain.Priority
	DueDate     *string
	Completed   *bool
}

func (s *TaskService) List(ctx context.Context, userID uint) ([]*domain.Task, error) {
	return s.taskRepo.ListByUser(ctx, userID)
}

func (s *TaskService) Get(ctx context.Context, id, userID uint) (*domain.Task, error) {
	return s.taskRepo.GetByID(ctx, id, userID)
}

func (s *TaskService) Create(ctx context.Context, userID uint, input CreateTaskInput) (*domain.Task, error) {
	if err := validateTitle(input.Title); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = domain.PriorityMedium
	}
	if !priority.Valid() {
		return nil, domain.ErrInvalidPriority
	}

	if err := validateDueDate(input.DueDate); err != nil {
		return nil, err
	}

	now := time.Now()
	task := &domain.Task{
		UserID:      userID,
		Title:       input.Title,
		Description: input.Description,
		Priority:    priority,
		DueDate:     input.DueDate,
		Completed:   input.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) Update(ctx context.Context, id, userID uint, input UpdateTaskInput) (*domain.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if err := validateTitle(*input.Title); err != nil {
			return nil, err
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, domain.ErrInvalidPriority
		}
		task.Priority = *input.Priority
	}
	if input.DueDate != nil {
		if err := validateDueDate(*input.DueDate); err != nil {
			return nil, err
		}
		task.DueDate = *input.DueDate
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}

	task.UpdatedAt = time.Now()

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id, userID uint) error {
	deleted, err := s.taskRepo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

func (s *TaskService) Stats(ctx context.Context, userID uint) (*domain.TaskStats, error) {
	return s.taskRepo.Stats(ctx, userID, time.Now())
}

func validateTitle(title string) error {
	length := utf8.RuneCountInString(title)
	if length < 1 || length > maxTitleLength {
		return domain.ErrInvalidTitle
	}
	return nil
}

func validateDueDate(dueDate string) error {
	if dueDate == "" {
		return nil
	}
	if _, err := time.Parse(domain.DueDateLayout, dueDate); err != nil {
		return domain.ErrInvalidDueDate
	}
	return nil
}
