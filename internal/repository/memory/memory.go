// Package memory provides ephemeral map-backed implementations of the
// repository interfaces, selected at process start as an alternative to
// the relational backend. Nothing survives a restart.
package memory

import "github.com/dkearns/tasktrack/internal/repository"

func NewRepositories() *repository.Repositories {
	return &repository.Repositories{
		User:    NewUserRepository(),
		Task:    NewTaskRepository(),
		Session: NewSessionRepository(),
	}
}
