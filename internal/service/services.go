package service

import "github.com/dkearns/tasktrack/internal/repository"

type Services struct {
	Auth *AuthService
	Task *TaskService
}

func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		Auth: NewAuthService(repos.User, repos.Session),
		Task: NewTaskService(repos.Task),
	}
}
