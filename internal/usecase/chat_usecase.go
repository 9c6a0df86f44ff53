package usecase

import (
	"context"
	"log"
	"strings"

	"jobboard/internal/domain/chat"
	"jobboard/internal/domain/employee"
	"jobboard/internal/repository"
)

type ChatUsecase interface {
	Save(ctx context.Context, employeeID int64, question, answer string) (int64, error)
	History(ctx context.Context, employeeID int64) ([]chat.Entry, error)
}

type Chat struct {
	chats     repository.ChatRepository
	employees repository.EmployeeRepository
	logger    *log.Logger
}

func NewChatUsecase(chats repository.ChatRepository, employees repository.EmployeeRepository, logger *log.Logger) *Chat {
	return &Chat{chats: chats, employees: employees, logger: logger}
}

func (u *Chat) Save(ctx context.Context, employeeID int64, question, answer string) (int64, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return 0, ErrInvalidInput
	}
	if err := u.requireEmployee(ctx, employeeID); err != nil {
		return 0, err
	}

	id, err := u.chats.Create(ctx, chat.Entry{EmployeeID: employeeID, Question: question, Answer: answer})
	if err != nil {
		return 0, internalError(u.logger, "Chat", err)
	}
	return id, nil
}

// History returns the employee's entries oldest first.
func (u *Chat) History(ctx context.Context, employeeID int64) ([]chat.Entry, error) {
	if err := u.requireEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	items, err := u.chats.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, internalError(u.logger, "Chat", err)
	}
	return items, nil
}

func (u *Chat) requireEmployee(ctx context.Context, employeeID int64) error {
	exists, err := u.employees.Exists(ctx, employeeID)
	if err != nil {
		return internalError(u.logger, "Chat", err)
	}
	if !exists {
		return employee.ErrNotFound
	}
	return nil
}
