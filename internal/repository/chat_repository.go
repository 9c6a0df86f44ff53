package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/chat"

	"github.com/georgysavva/scany/v2/pgxscan"
)

type ChatRepository interface {
	Create(ctx context.Context, e chat.Entry) (int64, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]chat.Entry, error)
}

type PostgresChatRepository struct {
	db database.Querier
}

func NewPostgresChatRepository(db database.Querier) *PostgresChatRepository {
	return &PostgresChatRepository{db: db}
}

func (r *PostgresChatRepository) Create(ctx context.Context, e chat.Entry) (int64, error) {
	var id int64
	err := database.QuerierFromContext(ctx, r.db).QueryRow(ctx,
		`INSERT INTO chat (employee_id, question, answer)
		 VALUES ($1,$2,$3)
		 RETURNING id`,
		e.EmployeeID, e.Question, e.Answer,
	).Scan(&id)
	return id, err
}

func (r *PostgresChatRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]chat.Entry, error) {
	out := make([]chat.Entry, 0)
	err := pgxscan.Select(ctx, database.QuerierFromContext(ctx, r.db), &out,
		`SELECT id, employee_id, question, answer, created_at
		 FROM chat
		 WHERE employee_id = $1
		 ORDER BY created_at ASC, id ASC`,
		employeeID,
	)
	if err != nil {
		return nil, err
	}
	return out, nil
}
