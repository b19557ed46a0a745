package order

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"grubdash/internal/entities"
	"grubdash/internal/repository"
	"grubdash/internal/service/order"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const returningColumns = "RETURNING id, deliver_to, mobile_number, status, quantity, dishes, created_at, updated_at"

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, orderEntity entities.Order) (*entities.Order, error) {
	orderModel, err := FromDomain(&orderEntity)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	query, args, err := qb.
		Insert("orders").
		Columns("id", "deliver_to", "mobile_number", "status", "quantity", "dishes").
		Values(
			orderModel.ID,
			orderModel.DeliverTo,
			orderModel.MobileNumber,
			orderModel.Status,
			orderModel.Quantity,
			orderModel.Dishes,
		).
		Suffix(returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	created, err := r.scanOne(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, fmt.Errorf("order %s already exists: %w", orderEntity.ID, err)
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return nil, fmt.Errorf("order %s violates %s: %w", orderEntity.ID, repository.ConstraintName(err), err)
		}
		return nil, fmt.Errorf("unexpected order repository create error: %w", err)
	}

	return created, nil
}

func (r *Repository) Update(ctx context.Context, orderEntity entities.Order) (*entities.Order, error) {
	orderModel, err := FromDomain(&orderEntity)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	query, args, err := qb.
		Update("orders").
		Set("deliver_to", orderModel.DeliverTo).
		Set("mobile_number", orderModel.MobileNumber).
		Set("status", orderModel.Status).
		Set("quantity", orderModel.Quantity).
		Set("dishes", orderModel.Dishes).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": orderModel.ID}).
		Suffix(returningColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	updated, err := r.scanOne(r.querier.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		if repository.IsPgErrorWithCode(err, repository.PgErrCheckViolation) {
			return nil, fmt.Errorf("order %s violates %s: %w", orderEntity.ID, repository.ConstraintName(err), err)
		}
		return nil, fmt.Errorf("unexpected order repository update error: %w", err)
	}

	return updated, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	query := `SELECT id, deliver_to, mobile_number, status, quantity, dishes, created_at, updated_at
		FROM orders
		WHERE id = $1`

	found, err := r.scanOne(r.querier.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository getbyid error: %w", err)
	}

	return found, nil
}

func (r *Repository) GetAll(ctx context.Context) ([]entities.Order, error) {
	query := `
	SELECT id, deliver_to, mobile_number, status, quantity, dishes, created_at, updated_at
	FROM orders
	ORDER BY seq`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getall error: %w", err)
	}
	defer rows.Close()

	orderModels := make([]OrderDB, 0, 8)
	for rows.Next() {
		var orderModel OrderDB
		err := rows.Scan(
			&orderModel.ID,
			&orderModel.DeliverTo,
			&orderModel.MobileNumber,
			&orderModel.Status,
			&orderModel.Quantity,
			&orderModel.Dishes,
			&orderModel.CreatedAt,
			&orderModel.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository getall error: %w", err)
		}
		orderModels = append(orderModels, orderModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository getall error: %w", err)
	}

	return ToDomainList(orderModels)
}

// IndexOf is the zero-based position of the order in insertion order, or -1.
func (r *Repository) IndexOf(ctx context.Context, id string) (int, error) {
	query := `SELECT idx FROM (
		SELECT id, row_number() OVER (ORDER BY seq) - 1 AS idx
		FROM orders
	) positioned
	WHERE id = $1`

	var index int64
	err := r.querier.QueryRow(ctx, query, id).Scan(&index)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return -1, nil
		}
		return -1, fmt.Errorf("unexpected order repository indexof error: %w", err)
	}

	return int(index), nil
}

func (r *Repository) RemoveAt(ctx context.Context, index int) error {
	if index < 0 {
		return order.ErrOrderNotFound
	}

	query := `DELETE FROM orders
		WHERE seq = (SELECT seq FROM orders ORDER BY seq OFFSET $1 LIMIT 1)`

	tag, err := r.querier.Exec(ctx, query, index)
	if err != nil {
		return fmt.Errorf("unexpected order repository removeat error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return order.ErrOrderNotFound
	}

	return nil
}

func (r *Repository) scanOne(row pgx.Row) (*entities.Order, error) {
	var orderModel OrderDB
	err := row.Scan(
		&orderModel.ID,
		&orderModel.DeliverTo,
		&orderModel.MobileNumber,
		&orderModel.Status,
		&orderModel.Quantity,
		&orderModel.Dishes,
		&orderModel.CreatedAt,
		&orderModel.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return ToDomain(&orderModel)
}
