package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/tessera-live/tessera/internal/domain"
	"github.com/tessera-live/tessera/internal/repository"
	"github.com/tessera-live/tessera/internal/service/inventory"
)

// memStore is an in-memory inventory.Store that models the storage
// contract the service relies on: an exclusive per-row lock on ticket
// types and buyers held until the transaction ends, reads that see only
// committed state plus the transaction's own writes, and writes that
// become visible to other transactions at commit. Concurrency bugs in the
// protocol's lock ordering therefore show up here, not only on a real
// database.
type memStore struct {
	stateMu sync.Mutex
	state   *memState

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	failSetQR     bool
	failIncrement bool
}

type memState struct {
	events  map[int64]bool
	types   map[int64]domain.TicketType
	tickets map[int64]domain.Ticket
	buyers  map[int64]bool
	nextID  int64
}

const (
	testEventID      = int64(1)
	testTicketTypeID = int64(10)
)

func newMemStore(total int) *memStore {
	return &memStore{
		state: &memState{
			events: map[int64]bool{testEventID: true},
			types: map[int64]domain.TicketType{
				testTicketTypeID: {
					ID:            testTicketTypeID,
					EventID:       testEventID,
					Name:          "General",
					Price:         decimal.RequireFromString("45.00"),
					QuantityTotal: total,
				},
			},
			tickets: make(map[int64]domain.Ticket),
			buyers:  make(map[int64]bool),
			nextID:  1,
		},
		locks: make(map[string]*sync.Mutex),
	}
}

func (m *memStore) rowLock(key string) *sync.Mutex {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()

	mu, ok := m.locks[key]
	if !ok {
		mu = &sync.Mutex{}
		m.locks[key] = mu
	}
	return mu
}

func (m *memStore) InTx(ctx context.Context, fn func(ctx context.Context, tx inventory.TxStore) error) error {
	tx := &memTx{
		m:    m,
		held: make(map[string]*sync.Mutex),
		ov:   newOverlay(),
	}
	defer tx.unlockAll()

	if err := fn(ctx, tx); err != nil {
		return err
	}

	tx.commit()
	return nil
}

func (m *memStore) CountBuyerTickets(ctx context.Context, buyerID, eventID int64) (int64, error) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return countCommitted(m.state, buyerID, eventID), nil
}

func (m *memStore) ticketType(id int64) domain.TicketType {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return m.state.types[id]
}

func (m *memStore) ticketCount() int {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return len(m.state.tickets)
}

func (m *memStore) addTicketType(id int64, name string, total int) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	m.state.types[id] = domain.TicketType{
		ID:            id,
		EventID:       testEventID,
		Name:          name,
		Price:         decimal.RequireFromString("45.00"),
		QuantityTotal: total,
	}
}

func (m *memStore) dropTicketType(id int64) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	delete(m.state.types, id)
}

func countCommitted(s *memState, buyerID, eventID int64) int64 {
	var n int64
	for _, t := range s.tickets {
		if t.BuyerID != nil && *t.BuyerID == buyerID && t.EventID == eventID {
			n++
		}
	}
	return n
}

// txOverlay buffers a transaction's writes until commit.
type txOverlay struct {
	inserted  map[int64]domain.Ticket
	deleted   map[int64]bool
	qr        map[int64]string
	soldDelta map[int64]int
	buyers    map[int64]bool
}

func newOverlay() *txOverlay {
	return &txOverlay{
		inserted:  make(map[int64]domain.Ticket),
		deleted:   make(map[int64]bool),
		qr:        make(map[int64]string),
		soldDelta: make(map[int64]int),
		buyers:    make(map[int64]bool),
	}
}

type memTx struct {
	m    *memStore
	held map[string]*sync.Mutex
	ov   *txOverlay
}

func (tx *memTx) lock(key string) {
	if _, ok := tx.held[key]; ok {
		return
	}
	mu := tx.m.rowLock(key)
	mu.Lock()
	tx.held[key] = mu
}

func (tx *memTx) unlockAll() {
	for _, mu := range tx.held {
		mu.Unlock()
	}
}

func (tx *memTx) commit() {
	m := tx.m
	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	for id := range tx.ov.deleted {
		delete(m.state.tickets, id)
	}
	for id, t := range tx.ov.inserted {
		m.state.tickets[id] = t
	}
	for id, url := range tx.ov.qr {
		if t, ok := m.state.tickets[id]; ok {
			t.QRCode = url
			m.state.tickets[id] = t
		}
	}
	for id, d := range tx.ov.soldDelta {
		if tt, ok := m.state.types[id]; ok {
			tt.QuantitySold += d
			m.state.types[id] = tt
		}
	}
	for id := range tx.ov.buyers {
		m.state.buyers[id] = true
	}
}

func (tx *memTx) TicketTypeForUpdate(_ context.Context, id int64) (*domain.TicketType, error) {
	tx.lock(fmt.Sprintf("tt:%d", id))

	tx.m.stateMu.Lock()
	defer tx.m.stateMu.Unlock()

	tt, ok := tx.m.state.types[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := tt
	cp.QuantitySold += tx.ov.soldDelta[id]
	return &cp, nil
}

func (tx *memTx) EventExists(_ context.Context, id int64) (bool, error) {
	tx.m.stateMu.Lock()
	defer tx.m.stateMu.Unlock()
	return tx.m.state.events[id], nil
}

func (tx *memTx) EnsureBuyer(_ context.Context, userID int64) error {
	tx.lock(fmt.Sprintf("buyer:%d", userID))
	tx.ov.buyers[userID] = true
	return nil
}

func (tx *memTx) CountBuyerTickets(_ context.Context, buyerID, eventID int64) (int64, error) {
	tx.m.stateMu.Lock()
	defer tx.m.stateMu.Unlock()

	n := int64(0)
	for id, t := range tx.m.state.tickets {
		if tx.ov.deleted[id] {
			continue
		}
		if t.BuyerID != nil && *t.BuyerID == buyerID && t.EventID == eventID {
			n++
		}
	}
	for _, t := range tx.ov.inserted {
		if t.BuyerID != nil && *t.BuyerID == buyerID && t.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (tx *memTx) InsertTicket(_ context.Context, t *domain.Ticket) (int64, error) {
	tx.m.stateMu.Lock()
	id := tx.m.state.nextID
	tx.m.state.nextID++
	tx.m.stateMu.Unlock()

	cp := *t
	cp.ID = id
	cp.CreatedAt = time.Now()
	tx.ov.inserted[id] = cp

	return id, nil
}

func (tx *memTx) SetTicketQR(_ context.Context, ticketID int64, url string) error {
	if tx.m.failSetQR {
		return errors.New("qr update failed")
	}

	if t, ok := tx.ov.inserted[ticketID]; ok {
		t.QRCode = url
		tx.ov.inserted[ticketID] = t
		return nil
	}

	tx.m.stateMu.Lock()
	_, ok := tx.m.state.tickets[ticketID]
	tx.m.stateMu.Unlock()
	if !ok || tx.ov.deleted[ticketID] {
		return repository.ErrNotFound
	}

	tx.ov.qr[ticketID] = url
	return nil
}

func (tx *memTx) IncrementSold(_ context.Context, ticketTypeID int64) error {
	if tx.m.failIncrement {
		return errors.New("increment failed")
	}

	tx.m.stateMu.Lock()
	tt, ok := tx.m.state.types[ticketTypeID]
	tx.m.stateMu.Unlock()
	if !ok {
		return repository.ErrNotFound
	}

	if tt.QuantitySold+tx.ov.soldDelta[ticketTypeID] >= tt.QuantityTotal {
		return repository.ErrSoldOut
	}
	tx.ov.soldDelta[ticketTypeID]++

	return nil
}

func (tx *memTx) DecrementSoldFloor(_ context.Context, ticketTypeID int64) error {
	tx.m.stateMu.Lock()
	tt, ok := tx.m.state.types[ticketTypeID]
	tx.m.stateMu.Unlock()
	if !ok {
		return nil
	}

	if tt.QuantitySold+tx.ov.soldDelta[ticketTypeID] > 0 {
		tx.ov.soldDelta[ticketTypeID]--
	}

	return nil
}

func (tx *memTx) TicketByID(_ context.Context, id int64) (*domain.Ticket, error) {
	if t, ok := tx.ov.inserted[id]; ok {
		cp := t
		return &cp, nil
	}

	tx.m.stateMu.Lock()
	defer tx.m.stateMu.Unlock()

	t, ok := tx.m.state.tickets[id]
	if !ok || tx.ov.deleted[id] {
		return nil, repository.ErrNotFound
	}
	cp := t
	return &cp, nil
}

func (tx *memTx) DeleteTicket(_ context.Context, id int64) error {
	if _, ok := tx.ov.inserted[id]; ok {
		delete(tx.ov.inserted, id)
		return nil
	}

	tx.m.stateMu.Lock()
	_, ok := tx.m.state.tickets[id]
	tx.m.stateMu.Unlock()
	if !ok || tx.ov.deleted[id] {
		return repository.ErrNotFound
	}

	tx.ov.deleted[id] = true
	return nil
}

type qrStub struct{}

func (qrStub) GenerateURL(ticketID int64, ticketTypeName string) string {
	return fmt.Sprintf("https://qr.test/%d/%s", ticketID, ticketTypeName)
}

type notifierStub struct {
	mu   sync.Mutex
	sent []*domain.TicketWithType
	err  error
}

func (n *notifierStub) Send(_ context.Context, t *domain.TicketWithType) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, t)
	return n.err
}

func (n *notifierStub) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

func newService(store inventory.Store, notifier inventory.Notifier, purchaseCap int) *inventory.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return inventory.New(store, qrStub{}, notifier, nil, nil, nil, logger, inventory.Config{
		PurchaseCap:   purchaseCap,
		NotifyTimeout: time.Second,
	})
}

func buyer(id int64) *int64 { return &id }

func TestReserveAndIssueTicket_IssuesTicket(t *testing.T) {
	store := newMemStore(10)
	svc := newService(store, nil, 2)

	got, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, buyer(7), "", "")
	require.NoError(t, err)

	assert.Equal(t, testTicketTypeID, got.Ticket.TicketTypeID)
	assert.Equal(t, testEventID, got.Ticket.EventID)
	assert.Equal(t, domain.TicketUnused, got.Ticket.Status)
	require.NotNil(t, got.Ticket.BuyerID)
	assert.Equal(t, int64(7), *got.Ticket.BuyerID)
	assert.Equal(t, fmt.Sprintf("https://qr.test/%d/General", got.Ticket.ID), got.Ticket.QRCode)
	assert.Equal(t, 1, got.TicketType.QuantitySold)

	assert.Equal(t, 1, store.ticketType(testTicketTypeID).QuantitySold)
	assert.Equal(t, 1, store.ticketCount())
}

func TestReserveAndIssueTicket_UnknownTicketType(t *testing.T) {
	store := newMemStore(10)
	svc := newService(store, nil, 2)

	_, err := svc.ReserveAndIssueTicket(context.Background(), 999, testEventID, buyer(1), "", "")
	assert.ErrorIs(t, err, inventory.ErrTicketTypeNotFound)
	assert.Equal(t, 0, store.ticketCount())
}

func TestReserveAndIssueTicket_UnknownEvent(t *testing.T) {
	store := newMemStore(10)
	svc := newService(store, nil, 2)

	_, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, 999, buyer(1), "", "")
	assert.ErrorIs(t, err, inventory.ErrEventNotFound)
}

func TestReserveAndIssueTicket_TicketTypeEventMismatch(t *testing.T) {
	store := newMemStore(10)
	store.state.events[2] = true
	svc := newService(store, nil, 2)

	_, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, 2, buyer(1), "", "")
	assert.ErrorIs(t, err, inventory.ErrTicketTypeEventMismatch)
}

func TestReserveAndIssueTicket_InvalidStatus(t *testing.T) {
	store := newMemStore(10)
	svc := newService(store, nil, 2)

	_, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, buyer(1), "Lost", "")
	assert.ErrorIs(t, err, inventory.ErrInvalidStatus)
}

func TestReserveAndIssueTicket_SoldOut(t *testing.T) {
	store := newMemStore(1)
	svc := newService(store, nil, 2)

	_, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, nil, "", "")
	require.NoError(t, err)

	_, err = svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, nil, "", "")
	assert.ErrorIs(t, err, inventory.ErrSoldOut)

	assert.Equal(t, 1, store.ticketType(testTicketTypeID).QuantitySold)
	assert.Equal(t, 1, store.ticketCount())
}

func TestReserveAndIssueTicket_PurchaseCap(t *testing.T) {
	store := newMemStore(10)
	svc := newService(store, nil, 2)

	for i := 0; i < 2; i++ {
		_, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, buyer(5), "", "")
		require.NoError(t, err)
	}

	_, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, buyer(5), "", "")
	assert.ErrorIs(t, err, inventory.ErrPurchaseLimitExceeded)

	got, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, buyer(6), "", "")
	require.NoError(t, err)
	assert.NotZero(t, got.Ticket.ID)

	assert.Equal(t, 3, store.ticketType(testTicketTypeID).QuantitySold)
}

func TestReserveAndIssueTicket_AnonymousBypassesCap(t *testing.T) {
	store := newMemStore(10)
	svc := newService(store, nil, 2)

	for i := 0; i < 5; i++ {
		_, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, nil, "", "")
		require.NoError(t, err)
	}

	assert.Equal(t, 5, store.ticketType(testTicketTypeID).QuantitySold)
}

func TestReserveAndIssueTicket_ConcurrentNeverOversells(t *testing.T) {
	const total = 5
	const attempts = 50

	store := newMemStore(total)
	svc := newService(store, nil, 2)

	var issued, soldOut int64
	var mu sync.Mutex

	g := new(errgroup.Group)
	for i := 0; i < attempts; i++ {
		buyerID := int64(100 + i)
		g.Go(func() error {
			_, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, &buyerID, "", "")

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				issued++
			case errors.Is(err, inventory.ErrSoldOut):
				soldOut++
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(total), issued)
	assert.Equal(t, int64(attempts-total), soldOut)

	tt := store.ticketType(testTicketTypeID)
	assert.Equal(t, total, tt.QuantitySold)
	assert.LessOrEqual(t, tt.QuantitySold, tt.QuantityTotal)
	assert.Equal(t, total, store.ticketCount())
}

func TestReserveAndIssueTicket_ConcurrentCapSingleBuyer(t *testing.T) {
	store := newMemStore(100)
	svc := newService(store, nil, 2)

	var issued int64
	var mu sync.Mutex

	g := new(errgroup.Group)
	for i := 0; i < 10; i++ {
		g.Go(func() error {
			_, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, buyer(42), "", "")
			if err == nil {
				mu.Lock()
				issued++
				mu.Unlock()
				return nil
			}
			if errors.Is(err, inventory.ErrPurchaseLimitExceeded) {
				return nil
			}
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(2), issued)
	assert.Equal(t, 2, store.ticketType(testTicketTypeID).QuantitySold)
}

func TestReserveAndIssueTicket_ConcurrentCapAcrossTicketTypes(t *testing.T) {
	// the cap is per (buyer, event), so purchases through different tiers
	// must still serialize on the buyer and count each other
	for i := 0; i < 20; i++ {
		store := newMemStore(10)
		store.addTicketType(11, "VIP", 10)
		store.addTicketType(12, "Balcony", 10)
		svc := newService(store, nil, 2)

		_, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, buyer(42), "", "")
		require.NoError(t, err)

		var issued, rejected int64
		var mu sync.Mutex

		g := new(errgroup.Group)
		for _, ttID := range []int64{11, 12} {
			ttID := ttID
			g.Go(func() error {
				_, err := svc.ReserveAndIssueTicket(context.Background(), ttID, testEventID, buyer(42), "", "")

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					issued++
				case errors.Is(err, inventory.ErrPurchaseLimitExceeded):
					rejected++
				default:
					return err
				}
				return nil
			})
		}
		require.NoError(t, g.Wait())

		assert.Equal(t, int64(1), issued)
		assert.Equal(t, int64(1), rejected)

		count, err := store.CountBuyerTickets(context.Background(), 42, testEventID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	}
}

func TestReserveAndIssueTicket_LastTicketSingleWinner(t *testing.T) {
	store := newMemStore(1)
	svc := newService(store, nil, 2)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for _, id := range []int64{1, 2} {
		wg.Add(1)
		go func(buyerID int64) {
			defer wg.Done()
			_, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, &buyerID, "", "")
			results <- err
		}(id)
	}
	wg.Wait()
	close(results)

	var ok, rejected int
	for err := range results {
		if err == nil {
			ok++
		} else if errors.Is(err, inventory.ErrSoldOut) {
			rejected++
		}
	}

	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 1, store.ticketType(testTicketTypeID).QuantitySold)
}

func TestReserveAndIssueTicket_FailureLeavesNoTrace(t *testing.T) {
	store := newMemStore(10)
	store.failIncrement = true
	svc := newService(store, nil, 2)

	_, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, buyer(1), "", "")
	require.Error(t, err)

	assert.Equal(t, 0, store.ticketCount())
	assert.Equal(t, 0, store.ticketType(testTicketTypeID).QuantitySold)
	assert.Empty(t, store.state.buyers)
}

func TestReserveAndIssueTicket_QRFailureRollsBack(t *testing.T) {
	store := newMemStore(10)
	store.failSetQR = true
	svc := newService(store, nil, 2)

	_, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, buyer(1), "", "")
	require.Error(t, err)

	assert.Equal(t, 0, store.ticketCount())
	assert.Equal(t, 0, store.ticketType(testTicketTypeID).QuantitySold)
}

func TestReserveAndIssueTicket_NotifierFailureDoesNotFailPurchase(t *testing.T) {
	store := newMemStore(10)
	notifier := &notifierStub{err: errors.New("webhook down")}
	svc := newService(store, notifier, 2)

	got, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, buyer(1), "", "")
	require.NoError(t, err)
	assert.NotZero(t, got.Ticket.ID)
	assert.Equal(t, 1, notifier.count())
}

func TestReserveAndIssueTicket_RetryableTranslated(t *testing.T) {
	svc := newService(retryableStore{}, nil, 2)

	_, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, buyer(1), "", "")
	assert.ErrorIs(t, err, inventory.ErrRetryable)
}

type retryableStore struct{}

func (retryableStore) InTx(context.Context, func(context.Context, inventory.TxStore) error) error {
	return fmt.Errorf("tx: %w", repository.ErrRetryable)
}

func (retryableStore) CountBuyerTickets(context.Context, int64, int64) (int64, error) {
	return 0, nil
}

func TestReleaseTicket_ReturnsUnitToInventory(t *testing.T) {
	store := newMemStore(10)
	svc := newService(store, nil, 2)

	got, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, buyer(3), "", "")
	require.NoError(t, err)
	require.Equal(t, 1, store.ticketType(testTicketTypeID).QuantitySold)

	require.NoError(t, svc.ReleaseTicket(context.Background(), got.Ticket.ID))

	assert.Equal(t, 0, store.ticketType(testTicketTypeID).QuantitySold)
	assert.Equal(t, 0, store.ticketCount())

	// the freed unit can be bought again
	_, err = svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, buyer(4), "", "")
	assert.NoError(t, err)
}

func TestReleaseTicket_UnknownTicket(t *testing.T) {
	store := newMemStore(10)
	svc := newService(store, nil, 2)

	err := svc.ReleaseTicket(context.Background(), 999)
	assert.ErrorIs(t, err, inventory.ErrTicketNotFound)
}

func TestReleaseTicket_RepeatedReleaseFloorsAtZero(t *testing.T) {
	store := newMemStore(10)
	svc := newService(store, nil, 2)

	got, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, nil, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.ReleaseTicket(context.Background(), got.Ticket.ID))

	err = svc.ReleaseTicket(context.Background(), got.Ticket.ID)
	assert.ErrorIs(t, err, inventory.ErrTicketNotFound)
	assert.Equal(t, 0, store.ticketType(testTicketTypeID).QuantitySold)
}

func TestReleaseTicket_ConcurrentDoubleRelease(t *testing.T) {
	// the loser of the race gets a clean not-found and must not decrement
	store := newMemStore(10)
	svc := newService(store, nil, 2)

	got, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, nil, "", "")
	require.NoError(t, err)

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- svc.ReleaseTicket(context.Background(), got.Ticket.ID)
		}()
	}
	wg.Wait()
	close(results)

	var ok, notFound int
	for err := range results {
		if err == nil {
			ok++
		} else if errors.Is(err, inventory.ErrTicketNotFound) {
			notFound++
		}
	}

	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, notFound)
	assert.Equal(t, 0, store.ticketType(testTicketTypeID).QuantitySold)
	assert.Equal(t, 0, store.ticketCount())
}

func TestReleaseTicket_TicketTypeAlreadyGone(t *testing.T) {
	store := newMemStore(10)
	svc := newService(store, nil, 2)

	got, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, nil, "", "")
	require.NoError(t, err)

	store.dropTicketType(testTicketTypeID)

	require.NoError(t, svc.ReleaseTicket(context.Background(), got.Ticket.ID))
	assert.Equal(t, 0, store.ticketCount())
}

func TestCountBuyerTicketsForEvent_Allowance(t *testing.T) {
	store := newMemStore(10)
	svc := newService(store, nil, 2)

	a, err := svc.CountBuyerTicketsForEvent(context.Background(), 8, testEventID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), a.Count)
	assert.Equal(t, int64(2), a.RemainingAllowed)
	assert.Equal(t, int64(2), a.Cap)

	_, err = svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, buyer(8), "", "")
	require.NoError(t, err)

	a, err = svc.CountBuyerTicketsForEvent(context.Background(), 8, testEventID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.Count)
	assert.Equal(t, int64(1), a.RemainingAllowed)

	_, err = svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, buyer(8), "", "")
	require.NoError(t, err)

	a, err = svc.CountBuyerTicketsForEvent(context.Background(), 8, testEventID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), a.Count)
	assert.Equal(t, int64(0), a.RemainingAllowed)
}

func TestReserveAndIssueTicket_ConfigurableCap(t *testing.T) {
	store := newMemStore(10)
	svc := newService(store, nil, 4)

	for i := 0; i < 4; i++ {
		_, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, buyer(9), "", "")
		require.NoError(t, err)
	}

	_, err := svc.ReserveAndIssueTicket(context.Background(), testTicketTypeID, testEventID, buyer(9), "", "")
	assert.ErrorIs(t, err, inventory.ErrPurchaseLimitExceeded)
}
