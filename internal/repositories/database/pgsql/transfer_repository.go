package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mocustoms/store_transfer_app/internal/apperrors"
	"github.com/mocustoms/store_transfer_app/internal/core/domain"
	portsrepo "github.com/mocustoms/store_transfer_app/internal/core/ports/repositories"
	"github.com/mocustoms/store_transfer_app/internal/models"
	"github.com/mocustoms/store_transfer_app/internal/utils/mapping"
	"github.com/mocustoms/store_transfer_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTransferRepository persists transfer request aggregates. Header, items
// and ledger rows always move together inside one database transaction; the
// ledger table is append only.
type PgxTransferRepository struct {
	BaseRepository
}

func newPgxTransferRepository(pool *pgxpool.Pool) portsrepo.TransferRepositoryWithTx {
	return &PgxTransferRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TransferRepositoryWithTx = (*PgxTransferRepository)(nil)

const requestColumns = `
	request_id, reference_number, request_date, requesting_store_id, issuing_store_id,
	priority, currency_code, exchange_rate, status, total_items, total_value, mixed_currency, version,
	submitted_by, submitted_at, approved_by, approved_at,
	rejected_by, rejected_at, rejection_reason,
	cancelled_by, cancelled_at, cancellation_reason, fulfilled_at,
	created_at, created_by, last_updated_at, last_updated_by
`

const itemColumns = `
	item_id, request_id, product_id, requested_quantity, approved_quantity,
	issued_quantity, received_quantity, unit_cost, currency_code, exchange_rate,
	equivalent_amount, status, created_at, created_by, last_updated_at, last_updated_by
`

const transactionColumns = `
	transaction_id, request_id, item_id, transaction_type, quantity,
	previous_quantity, new_quantity, notes, performed_by, performed_at
`

func scanStoreRequest(row pgx.Row) (models.StoreRequest, error) {
	var req models.StoreRequest
	err := row.Scan(
		&req.RequestID,
		&req.ReferenceNumber,
		&req.RequestDate,
		&req.RequestingStoreID,
		&req.IssuingStoreID,
		&req.Priority,
		&req.CurrencyCode,
		&req.ExchangeRate,
		&req.Status,
		&req.TotalItems,
		&req.TotalValue,
		&req.MixedCurrency,
		&req.Version,
		&req.SubmittedBy,
		&req.SubmittedAt,
		&req.ApprovedBy,
		&req.ApprovedAt,
		&req.RejectedBy,
		&req.RejectedAt,
		&req.RejectionReason,
		&req.CancelledBy,
		&req.CancelledAt,
		&req.CancellationReason,
		&req.FulfilledAt,
		&req.CreatedAt,
		&req.CreatedBy,
		&req.LastUpdatedAt,
		&req.LastUpdatedBy,
	)
	return req, err
}

func scanStoreRequestItem(row pgx.Row) (models.StoreRequestItem, error) {
	var item models.StoreRequestItem
	err := row.Scan(
		&item.ItemID,
		&item.RequestID,
		&item.ProductID,
		&item.RequestedQuantity,
		&item.ApprovedQuantity,
		&item.IssuedQuantity,
		&item.ReceivedQuantity,
		&item.UnitCost,
		&item.CurrencyCode,
		&item.ExchangeRate,
		&item.EquivalentAmount,
		&item.Status,
		&item.CreatedAt,
		&item.CreatedBy,
		&item.LastUpdatedAt,
		&item.LastUpdatedBy,
	)
	return item, err
}

func scanItemTransaction(row pgx.Row) (models.ItemTransaction, error) {
	var txn models.ItemTransaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.RequestID,
		&txn.ItemID,
		&txn.TransactionType,
		&txn.Quantity,
		&txn.PreviousQuantity,
		&txn.NewQuantity,
		&txn.Notes,
		&txn.PerformedBy,
		&txn.PerformedAt,
	)
	return txn, err
}

// queueItemUpsert adds an item upsert to the batch. Draft edits replace line
// values in place; lifecycle operations only move the quantity counters and
// status.
func queueItemUpsert(batch *pgx.Batch, item models.StoreRequestItem) {
	query := `
		INSERT INTO store_request_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (item_id) DO UPDATE SET
			product_id = EXCLUDED.product_id,
			requested_quantity = EXCLUDED.requested_quantity,
			approved_quantity = EXCLUDED.approved_quantity,
			issued_quantity = EXCLUDED.issued_quantity,
			received_quantity = EXCLUDED.received_quantity,
			unit_cost = EXCLUDED.unit_cost,
			currency_code = EXCLUDED.currency_code,
			exchange_rate = EXCLUDED.exchange_rate,
			equivalent_amount = EXCLUDED.equivalent_amount,
			status = EXCLUDED.status,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by;
	`
	batch.Queue(query,
		item.ItemID,
		item.RequestID,
		item.ProductID,
		item.RequestedQuantity,
		item.ApprovedQuantity,
		item.IssuedQuantity,
		item.ReceivedQuantity,
		item.UnitCost,
		item.CurrencyCode,
		item.ExchangeRate,
		item.EquivalentAmount,
		item.Status,
		item.CreatedAt,
		item.CreatedBy,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
}

func queueTransactionInsert(batch *pgx.Batch, txn models.ItemTransaction) {
	query := `
		INSERT INTO store_request_item_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch.Queue(query,
		txn.TransactionID,
		txn.RequestID,
		txn.ItemID,
		txn.TransactionType,
		txn.Quantity,
		txn.PreviousQuantity,
		txn.NewQuantity,
		txn.Notes,
		txn.PerformedBy,
		txn.PerformedAt,
	)
}

// CreateRequest persists a new draft aggregate with its initial ledger rows.
func (r *PgxTransferRepository) CreateRequest(ctx context.Context, request domain.StoreRequest, txns []domain.ItemTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	modelReq := mapping.ToModelStoreRequest(request)

	headerQuery := `
		INSERT INTO store_requests (` + requestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28);
	`
	_, err = tx.Exec(ctx, headerQuery,
		modelReq.RequestID,
		modelReq.ReferenceNumber,
		modelReq.RequestDate,
		modelReq.RequestingStoreID,
		modelReq.IssuingStoreID,
		modelReq.Priority,
		modelReq.CurrencyCode,
		modelReq.ExchangeRate,
		modelReq.Status,
		modelReq.TotalItems,
		modelReq.TotalValue,
		modelReq.MixedCurrency,
		modelReq.Version,
		modelReq.SubmittedBy,
		modelReq.SubmittedAt,
		modelReq.ApprovedBy,
		modelReq.ApprovedAt,
		modelReq.RejectedBy,
		modelReq.RejectedAt,
		modelReq.RejectionReason,
		modelReq.CancelledBy,
		modelReq.CancelledAt,
		modelReq.CancellationReason,
		modelReq.FulfilledAt,
		modelReq.CreatedAt,
		modelReq.CreatedBy,
		modelReq.LastUpdatedAt,
		modelReq.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: reference number %s already exists", apperrors.ErrDuplicate, modelReq.ReferenceNumber)
		}
		return fmt.Errorf("failed to insert request %s: %w", modelReq.RequestID, err)
	}

	batch := &pgx.Batch{}
	for _, item := range mapping.ToModelStoreRequestItemSlice(request.Items) {
		queueItemUpsert(batch, item)
	}
	for _, txn := range mapping.ToModelItemTransactionSlice(txns) {
		queueTransactionInsert(batch, txn)
	}
	if err := flushBatch(ctx, tx, batch); err != nil {
		return fmt.Errorf("failed to insert items for request %s: %w", modelReq.RequestID, err)
	}

	return r.Commit(ctx, tx)
}

// SaveRequest persists a mutated aggregate plus any new ledger entries. The
// header update is guarded by expectedVersion; zero rows affected means a
// concurrent writer got there first and nothing is written.
func (r *PgxTransferRepository) SaveRequest(ctx context.Context, request domain.StoreRequest, newTxns []domain.ItemTransaction, expectedVersion int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	modelReq := mapping.ToModelStoreRequest(request)

	headerQuery := `
		UPDATE store_requests SET
			request_date = $1, requesting_store_id = $2, issuing_store_id = $3,
			priority = $4, currency_code = $5, exchange_rate = $6, status = $7,
			total_items = $8, total_value = $9, mixed_currency = $10, version = $11,
			submitted_by = $12, submitted_at = $13, approved_by = $14, approved_at = $15,
			rejected_by = $16, rejected_at = $17, rejection_reason = $18,
			cancelled_by = $19, cancelled_at = $20, cancellation_reason = $21,
			fulfilled_at = $22, last_updated_at = $23, last_updated_by = $24
		WHERE request_id = $25 AND version = $26;
	`
	tag, err := tx.Exec(ctx, headerQuery,
		modelReq.RequestDate,
		modelReq.RequestingStoreID,
		modelReq.IssuingStoreID,
		modelReq.Priority,
		modelReq.CurrencyCode,
		modelReq.ExchangeRate,
		modelReq.Status,
		modelReq.TotalItems,
		modelReq.TotalValue,
		modelReq.MixedCurrency,
		modelReq.Version,
		modelReq.SubmittedBy,
		modelReq.SubmittedAt,
		modelReq.ApprovedBy,
		modelReq.ApprovedAt,
		modelReq.RejectedBy,
		modelReq.RejectedAt,
		modelReq.RejectionReason,
		modelReq.CancelledBy,
		modelReq.CancelledAt,
		modelReq.CancellationReason,
		modelReq.FulfilledAt,
		modelReq.LastUpdatedAt,
		modelReq.LastUpdatedBy,
		modelReq.RequestID,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to update request %s: %w", modelReq.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: request %s expected version %d", apperrors.ErrConcurrentModification, modelReq.RequestID, expectedVersion)
	}

	modelItems := mapping.ToModelStoreRequestItemSlice(request.Items)

	batch := &pgx.Batch{}
	for _, item := range modelItems {
		queueItemUpsert(batch, item)
	}

	// Draft edits replace the full line set. Rows absent from the aggregate
	// are removed; the FK cascade takes their ledger rows with them.
	keepIDs := make([]string, 0, len(modelItems))
	for _, item := range modelItems {
		keepIDs = append(keepIDs, item.ItemID)
	}
	batch.Queue(`DELETE FROM store_request_items WHERE request_id = $1 AND NOT (item_id = ANY($2));`, modelReq.RequestID, keepIDs)

	for _, txn := range mapping.ToModelItemTransactionSlice(newTxns) {
		queueTransactionInsert(batch, txn)
	}
	if err := flushBatch(ctx, tx, batch); err != nil {
		return fmt.Errorf("failed to save items for request %s: %w", modelReq.RequestID, err)
	}

	return r.Commit(ctx, tx)
}

func flushBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return results.Close()
}

// FindRequestByID retrieves the header and its items, not the ledger.
func (r *PgxTransferRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.StoreRequest, error) {
	headerQuery := `
		SELECT ` + requestColumns + `
		FROM store_requests
		WHERE request_id = $1;
	`
	modelReq, err := scanStoreRequest(r.Pool.QueryRow(ctx, headerQuery, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find request %s: %w", requestID, err)
	}

	itemsQuery := `
		SELECT ` + itemColumns + `
		FROM store_request_items
		WHERE request_id = $1
		ORDER BY created_at, item_id;
	`
	rows, err := r.Pool.Query(ctx, itemsQuery, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for request %s: %w", requestID, err)
	}
	defer rows.Close()

	modelItems, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.StoreRequestItem, error) {
		return scanStoreRequestItem(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan items for request %s: %w", requestID, err)
	}

	domainReq := mapping.ToDomainStoreRequest(modelReq)
	domainReq.Items = mapping.ToDomainStoreRequestItemSlice(modelItems)
	return &domainReq, nil
}

// ListRequests retrieves a page of request headers, newest first, using
// token-based pagination over (request_date, created_at).
func (r *PgxTransferRepository) ListRequests(ctx context.Context, filter portsrepo.ListRequestsFilter, limit int, nextToken *string) ([]domain.StoreRequest, *string, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM store_requests
		WHERE 1=1`
	args := []interface{}{}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += " AND status = $" + strconv.Itoa(len(args))
	}
	if filter.RequestingStoreID != nil {
		args = append(args, *filter.RequestingStoreID)
		query += " AND requesting_store_id = $" + strconv.Itoa(len(args))
	}
	if filter.IssuingStoreID != nil {
		args = append(args, *filter.IssuingStoreID)
		query += " AND issuing_store_id = $" + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		cursorDate, cursorCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, cursorDate, cursorCreatedAt)
		query += fmt.Sprintf(" AND (request_date, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	// Fetch one extra row to know whether another page exists.
	args = append(args, limit+1)
	query += " ORDER BY request_date DESC, created_at DESC LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	modelReqs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.StoreRequest, error) {
		return scanStoreRequest(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan requests: %w", err)
	}

	var token *string
	if len(modelReqs) > limit {
		modelReqs = modelReqs[:limit]
		last := modelReqs[len(modelReqs)-1]
		encoded := pagination.EncodeToken(last.RequestDate, last.CreatedAt)
		token = &encoded
	}

	return mapping.ToDomainStoreRequestSlice(modelReqs), token, nil
}

// FindTransactionsByRequestID retrieves the full ledger for a request in
// insertion order.
func (r *PgxTransferRepository) FindTransactionsByRequestID(ctx context.Context, requestID string) ([]domain.ItemTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM store_request_item_transactions
		WHERE request_id = $1
		ORDER BY performed_at, transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ItemTransaction, error) {
		return scanItemTransaction(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan ledger entries: %w", err)
	}

	return mapping.ToDomainItemTransactionSlice(modelTxns), nil
}
