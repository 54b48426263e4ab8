// internal/repository/transaction_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/Shani242/Z-Credit-Payment-Module/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepository interface {
	Create(ctx context.Context, tx *domain.Transaction) error
	GetByReference(ctx context.Context, reference string) (*domain.Transaction, error)
	FindResolvedByReference(ctx context.Context, reference string, excludeID int64) (*domain.Transaction, error)
	MarkProcessing(ctx context.Context, id int64) (bool, error)
	RecordOutcome(ctx context.Context, id int64, status domain.Status, rawResponse, outcomeMessage string) error
	List(ctx context.Context, limit, offset int) ([]domain.Transaction, int64, error)
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	query := `
        INSERT INTO zcredit_transactions (
            reference, terminal_number, terminal_password, card_number,
            expiry_date, cvv, cardholder_name, amount, kind, status
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id, created_at, updated_at
    `
	return r.db.QueryRow(ctx, query,
		tx.Reference,
		tx.Request.TerminalNumber,
		tx.Request.TerminalPassword,
		tx.Request.CardNumber,
		tx.Request.ExpiryDate,
		tx.Request.CVV,
		tx.Request.CardholderName,
		tx.Request.Amount,
		tx.Request.Kind,
		tx.Status,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
}

func (r *transactionRepo) GetByReference(ctx context.Context, reference string) (*domain.Transaction, error) {
	query := selectColumns + ` WHERE reference = $1`

	tx, err := scanTransaction(r.db.QueryRow(ctx, query, reference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}

// FindResolvedByReference looks up a non-draft record with the same reference,
// excluding the record currently being submitted. It backs the duplicate
// guard; no rows is not an error.
func (r *transactionRepo) FindResolvedByReference(ctx context.Context, reference string, excludeID int64) (*domain.Transaction, error) {
	query := selectColumns + ` WHERE reference = $1 AND status != 'draft' AND id != $2`

	tx, err := scanTransaction(r.db.QueryRow(ctx, query, reference, excludeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return tx, nil
}

// MarkProcessing is the compare-and-swap edge of the state machine: it moves
// draft to processing and reports false when the record already left draft.
func (r *transactionRepo) MarkProcessing(ctx context.Context, id int64) (bool, error) {
	query := `
        UPDATE zcredit_transactions
        SET status = 'processing', updated_at = NOW()
        WHERE id = $1 AND status = 'draft'
    `
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *transactionRepo) RecordOutcome(ctx context.Context, id int64, status domain.Status, rawResponse, outcomeMessage string) error {
	query := `
        UPDATE zcredit_transactions
        SET status = $1, raw_response = $2, outcome_message = $3,
            completed_at = NOW(), updated_at = NOW()
        WHERE id = $4
    `
	_, err := r.db.Exec(ctx, query, status, rawResponse, outcomeMessage, id)
	return err
}

func (r *transactionRepo) List(ctx context.Context, limit, offset int) ([]domain.Transaction, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM zcredit_transactions`
	if err := r.db.QueryRow(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := selectColumns + `
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		txs = append(txs, *tx)
	}
	return txs, total, rows.Err()
}

const selectColumns = `
        SELECT
            id, reference, terminal_number, terminal_password, card_number,
            expiry_date, cvv, cardholder_name, amount, kind, status,
            raw_response, outcome_message, created_at, updated_at, completed_at
        FROM zcredit_transactions`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var tx domain.Transaction
	err := row.Scan(
		&tx.ID, &tx.Reference,
		&tx.Request.TerminalNumber, &tx.Request.TerminalPassword,
		&tx.Request.CardNumber, &tx.Request.ExpiryDate,
		&tx.Request.CVV, &tx.Request.CardholderName,
		&tx.Request.Amount, &tx.Request.Kind, &tx.Status,
		&tx.RawResponse, &tx.OutcomeMessage,
		&tx.CreatedAt, &tx.UpdatedAt, &tx.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
