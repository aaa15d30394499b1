package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/court_booking/internal/model"
	"github.com/Freeeeeet/court_booking/internal/repository/base"
)

type ClientRepository struct {
	*base.Repository
}

func NewClientRepository(q base.Querier) *ClientRepository {
	return &ClientRepository{Repository: base.NewRepository(q)}
}

// CreateClient создаёт нового клиента
func (r *ClientRepository) CreateClient(ctx context.Context, client *model.Client) error {
	query := `
		INSERT INTO clients (name, phone)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, client.Name, client.Phone).Scan(&client.ID, &client.CreatedAt)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	return nil
}

// GetClient получает клиента по ID
func (r *ClientRepository) GetClient(ctx context.Context, id int64) (*model.Client, error) {
	query := `SELECT id, name, phone, created_at FROM clients WHERE id = $1`

	var client model.Client
	err := r.QueryRow(ctx, query, id).Scan(&client.ID, &client.Name, &client.Phone, &client.CreatedAt)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by id: %w", err)
	}

	return &client, nil
}

// ListClients получает всех клиентов
func (r *ClientRepository) ListClients(ctx context.Context) ([]*model.Client, error) {
	query := `SELECT id, name, phone, created_at FROM clients ORDER BY name`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []*model.Client
	for rows.Next() {
		var client model.Client
		if err := rows.Scan(&client.ID, &client.Name, &client.Phone, &client.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, &client)
	}

	return clients, rows.Err()
}

// UpdateClient обновляет имя и телефон клиента
func (r *ClientRepository) UpdateClient(ctx context.Context, client *model.Client) error {
	affected, err := r.ExecAffected(ctx,
		`UPDATE clients SET name = $2, phone = $3 WHERE id = $1`,
		client.ID, client.Name, client.Phone,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update client %d: %w", client.ID, model.ErrNotFound)
	}

	return nil
}

// DeleteClient удаляет клиента без броней
func (r *ClientRepository) DeleteClient(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		if base.IsForeignKeyViolation(err) {
			return fmt.Errorf("delete client %d: %w", id, model.ErrClientInUse)
		}
		return fmt.Errorf("delete client: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete client %d: %w", id, model.ErrNotFound)
	}

	return nil
}
