package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/mocustoms/store_transfer_app/internal/apperrors"
	"github.com/mocustoms/store_transfer_app/internal/core/domain"
	portsrepo "github.com/mocustoms/store_transfer_app/internal/core/ports/repositories"
	"github.com/mocustoms/store_transfer_app/internal/models"
	"github.com/mocustoms/store_transfer_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxStoreRepository reads store reference data. Stores are maintained by an
// external system; the workflow never writes them.
type PgxStoreRepository struct {
	BaseRepository
}

func newPgxStoreRepository(pool *pgxpool.Pool) portsrepo.StoreRepositoryFacade {
	return &PgxStoreRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.StoreRepositoryFacade = (*PgxStoreRepository)(nil)

const storeColumns = `
	store_id, store_code, name, can_issue, can_receive, is_active,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanStore(row pgx.Row) (models.Store, error) {
	var store models.Store
	err := row.Scan(
		&store.StoreID,
		&store.StoreCode,
		&store.Name,
		&store.CanIssue,
		&store.CanReceive,
		&store.IsActive,
		&store.CreatedAt,
		&store.CreatedBy,
		&store.LastUpdatedAt,
		&store.LastUpdatedBy,
	)
	return store, err
}

// FindStoreByID retrieves a store by its id.
func (r *PgxStoreRepository) FindStoreByID(ctx context.Context, storeID string) (*domain.Store, error) {
	query := `
		SELECT ` + storeColumns + `
		FROM stores
		WHERE store_id = $1;
	`
	modelStore, err := scanStore(r.Pool.QueryRow(ctx, query, storeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find store %s: %w", storeID, err)
	}

	domainStore := mapping.ToDomainStore(modelStore)
	return &domainStore, nil
}

// ListStores retrieves all stores ordered by code.
func (r *PgxStoreRepository) ListStores(ctx context.Context) ([]domain.Store, error) {
	query := `
		SELECT ` + storeColumns + `
		FROM stores
		ORDER BY store_code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	modelStores, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Store, error) {
		return scanStore(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan stores: %w", err)
	}

	return mapping.ToDomainStoreSlice(modelStores), nil
}
