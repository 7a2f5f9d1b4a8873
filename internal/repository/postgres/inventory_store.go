package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/tessera-live/tessera/internal/service/inventory"
)

// InventoryStore adapts the Store to the reservation service's ports.
// Transactions run at ReadCommitted: the explicit FOR UPDATE lock taken by
// TicketTypeForUpdate carries the oversell invariant, so the serializable
// default would only add avoidable retry aborts.
type InventoryStore struct {
	store *Store
}

func NewInventoryStore(store *Store) *InventoryStore {
	return &InventoryStore{store: store}
}

var _ inventory.Store = (*InventoryStore)(nil)

func (s *InventoryStore) InTx(
	ctx context.Context,
	fn func(ctx context.Context, tx inventory.TxStore) error,
) error {
	opts := &pgx.TxOptions{
		IsoLevel:   pgx.ReadCommitted,
		AccessMode: pgx.ReadWrite,
	}

	return s.store.RunTx(ctx, opts, func(ctx context.Context, tx DB) error {
		return fn(ctx, s.store.Inventory().With(tx))
	})
}

func (s *InventoryStore) CountBuyerTickets(ctx context.Context, buyerID, eventID int64) (int64, error) {
	return s.store.Inventory().CountBuyerTickets(ctx, buyerID, eventID)
}
