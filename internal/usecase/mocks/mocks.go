package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/wealthledger/internal/domain"
	"github.com/iho/wealthledger/internal/usecase"
)

// MemoryStore is an in-memory ledger store with row locks held until the
// owning transaction finishes. Writes are buffered on the transaction and
// applied on commit.
type MemoryStore struct {
	mu       sync.Mutex
	accounts map[string]*domain.TradingAccount
	rowLocks map[string]*sync.Mutex
	journal  []*domain.CashTransaction
	events   []*domain.OutboxEvent

	// BeginErr, when set, is returned by every Begin.
	BeginErr error
	// CommitErrs are returned by successive commits before they start succeeding.
	CommitErrs []error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]*domain.TradingAccount),
		rowLocks: make(map[string]*sync.Mutex),
	}
}

// AddAccount stores a copy of acc. Like the database, the opening balance is
// pinned to the cash the account is created with.
func (s *MemoryStore) AddAccount(acc *domain.TradingAccount) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *acc
	cp.OpeningBalance = cp.CashBalance
	s.accounts[acc.ID] = &cp
}

// Account returns a copy of the committed account state.
func (s *MemoryStore) Account(id string) *domain.TradingAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return nil
	}
	cp := *acc
	return &cp
}

// Journal returns committed entries of accountID in insertion order.
func (s *MemoryStore) Journal(accountID string) []*domain.CashTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.CashTransaction
	for _, e := range s.journal {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out
}

// Events returns committed outbox events.
func (s *MemoryStore) Events() []*domain.OutboxEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*domain.OutboxEvent, len(s.events))
	copy(out, s.events)
	return out
}

// SetBalances overwrites committed balances without journaling, for tests
// that need a corrupted account.
func (s *MemoryStore) SetBalances(id string, b domain.Balances) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if acc, ok := s.accounts[id]; ok {
		acc.CashBalance, acc.AvailableBalance, acc.FrozenBalance = b.Cash, b.Available, b.Frozen
	}
}

func (s *MemoryStore) TxManager() *MemoryTransactionManager {
	return &MemoryTransactionManager{store: s}
}

func (s *MemoryStore) Accounts() *MemoryAccountRepository {
	return &MemoryAccountRepository{store: s}
}

func (s *MemoryStore) Transactions() *MemoryCashTransactionRepository {
	return &MemoryCashTransactionRepository{store: s}
}

func (s *MemoryStore) Outbox() *MemoryOutboxRepository {
	return &MemoryOutboxRepository{store: s}
}

func (s *MemoryStore) rowLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.rowLocks[id]
	if !ok {
		l = &sync.Mutex{}
		s.rowLocks[id] = l
	}
	return l
}

func (s *MemoryStore) nextCommitErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.CommitErrs) == 0 {
		return nil
	}
	err := s.CommitErrs[0]
	s.CommitErrs = s.CommitErrs[1:]
	return err
}

// MemoryTransactionManager begins MemoryTx transactions.
type MemoryTransactionManager struct {
	store *MemoryStore
}

func (m *MemoryTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.store.BeginErr != nil {
		return nil, m.store.BeginErr
	}
	return &MemoryTx{
		store:    m.store,
		held:     make(map[string]*sync.Mutex),
		accounts: make(map[string]*domain.TradingAccount),
	}, nil
}

// MemoryTx buffers writes and holds row locks until Commit or Rollback.
type MemoryTx struct {
	store    *MemoryStore
	held     map[string]*sync.Mutex
	accounts map[string]*domain.TradingAccount
	journal  []*domain.CashTransaction
	events   []*domain.OutboxEvent
	done     bool
}

func (t *MemoryTx) lock(id string) {
	if _, ok := t.held[id]; ok {
		return
	}
	l := t.store.rowLock(id)
	l.Lock()
	t.held[id] = l
}

func (t *MemoryTx) release() {
	for id, l := range t.held {
		l.Unlock()
		delete(t.held, id)
	}
	t.done = true
}

func (t *MemoryTx) Commit(ctx context.Context) error {
	if t.done {
		return fmt.Errorf("transaction already finished")
	}
	if err := t.store.nextCommitErr(); err != nil {
		t.release()
		return err
	}

	t.store.mu.Lock()
	for id, acc := range t.accounts {
		t.store.accounts[id] = acc
	}
	t.store.journal = append(t.store.journal, t.journal...)
	t.store.events = append(t.store.events, t.events...)
	t.store.mu.Unlock()

	t.release()
	return nil
}

func (t *MemoryTx) Rollback(ctx context.Context) error {
	if !t.done {
		t.release()
	}
	return nil
}

// MemoryAccountRepository implements usecase.TradingAccountRepository.
type MemoryAccountRepository struct {
	store *MemoryStore
}

func (r *MemoryAccountRepository) Get(ctx context.Context, id string) (*domain.TradingAccount, error) {
	if acc := r.store.Account(id); acc != nil {
		return acc, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (r *MemoryAccountRepository) GetForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.TradingAccount, error) {
	mtx := tx.(*MemoryTx)
	mtx.lock(id)
	return r.Get(ctx, id)
}

func (r *MemoryAccountRepository) GetManyForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.TradingAccount, error) {
	mtx := tx.(*MemoryTx)
	var out []*domain.TradingAccount
	for _, id := range ids {
		mtx.lock(id)
		if acc := r.store.Account(id); acc != nil {
			out = append(out, acc)
		}
	}
	return out, nil
}

func (r *MemoryAccountRepository) UpdateBalances(ctx context.Context, tx usecase.Transaction, account *domain.TradingAccount) error {
	mtx := tx.(*MemoryTx)
	if _, ok := mtx.held[account.ID]; !ok {
		return fmt.Errorf("account %s updated without lock", account.ID)
	}
	cp := *account
	mtx.store.mu.Lock()
	if stored, ok := mtx.store.accounts[account.ID]; ok {
		cp.OpeningBalance = stored.OpeningBalance
	}
	mtx.store.mu.Unlock()
	mtx.accounts[account.ID] = &cp
	return nil
}

func (r *MemoryAccountRepository) ListBalances(ctx context.Context, userID, portfolioID string) ([]*domain.AccountBalance, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var out []*domain.AccountBalance
	for _, acc := range r.store.accounts {
		if !acc.IsActive || acc.OwnerID != userID {
			continue
		}
		if portfolioID != "" && acc.PortfolioID != portfolioID {
			continue
		}
		out = append(out, &domain.AccountBalance{
			AccountID:        acc.ID,
			AccountName:      acc.Name,
			PortfolioID:      acc.PortfolioID,
			Currency:         acc.Currency,
			CashBalance:      acc.CashBalance,
			AvailableBalance: acc.AvailableBalance,
			FrozenBalance:    acc.FrozenBalance,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AccountName != out[j].AccountName {
			return out[i].AccountName < out[j].AccountName
		}
		return out[i].AccountID < out[j].AccountID
	})
	return out, nil
}

func (r *MemoryAccountRepository) Summarize(ctx context.Context, userID, currency string) ([]*domain.CurrencySummary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	byCurrency := make(map[string]*domain.CurrencySummary)
	for _, acc := range r.store.accounts {
		if !acc.IsActive || acc.OwnerID != userID {
			continue
		}
		if currency != "" && acc.Currency != currency {
			continue
		}
		s, ok := byCurrency[acc.Currency]
		if !ok {
			s = &domain.CurrencySummary{
				Currency:              acc.Currency,
				TotalCashBalance:      decimal.Zero,
				TotalAvailableBalance: decimal.Zero,
				TotalFrozenBalance:    decimal.Zero,
			}
			byCurrency[acc.Currency] = s
		}
		s.AccountCount++
		s.TotalCashBalance = s.TotalCashBalance.Add(acc.CashBalance)
		s.TotalAvailableBalance = s.TotalAvailableBalance.Add(acc.AvailableBalance)
		s.TotalFrozenBalance = s.TotalFrozenBalance.Add(acc.FrozenBalance)
	}

	out := make([]*domain.CurrencySummary, 0, len(byCurrency))
	for _, s := range byCurrency {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out, nil
}

func (r *MemoryAccountRepository) ListInconsistent(ctx context.Context, limit int) ([]*domain.TradingAccount, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	last := make(map[string]*domain.CashTransaction)
	for _, e := range r.store.journal {
		if prev, ok := last[e.AccountID]; !ok || e.AccountVersion >= prev.AccountVersion {
			last[e.AccountID] = e
		}
	}

	var out []*domain.TradingAccount
	for _, acc := range r.store.accounts {
		bad := acc.Balances().Validate() != nil
		e, ok := last[acc.ID]
		switch {
		case ok && !e.BalanceAfter.Equal(acc.CashBalance):
			bad = true
		case !ok && !acc.OpeningBalance.Equal(acc.CashBalance):
			bad = true
		}
		if bad {
			cp := *acc
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// MemoryCashTransactionRepository implements usecase.CashTransactionRepository.
type MemoryCashTransactionRepository struct {
	store *MemoryStore
}

func (r *MemoryCashTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.CashTransaction) error {
	mtx := tx.(*MemoryTx)
	mtx.journal = append(mtx.journal, entry)
	return nil
}

func (r *MemoryCashTransactionRepository) List(ctx context.Context, filter usecase.TransactionFilter) ([]*domain.CashTransaction, int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var matched []*domain.CashTransaction
	for _, e := range r.store.journal {
		acc, ok := r.store.accounts[e.AccountID]
		if !ok || acc.OwnerID != filter.UserID {
			continue
		}
		if filter.AccountID != "" && e.AccountID != filter.AccountID {
			continue
		}
		matched = append(matched, e)
	}

	domain.SortJournal(matched)
	for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
		matched[i], matched[j] = matched[j], matched[i]
	}

	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return []*domain.CashTransaction{}, total, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], total, nil
}

func (r *MemoryCashTransactionRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.CashTransaction, error) {
	entries := r.store.Journal(accountID)
	domain.SortJournal(entries)
	return entries, nil
}

// MemoryOutboxRepository implements usecase.OutboxRepository.
type MemoryOutboxRepository struct {
	store *MemoryStore
}

func (r *MemoryOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	mtx := tx.(*MemoryTx)
	mtx.events = append(mtx.events, event)
	return nil
}

func (r *MemoryOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []*domain.OutboxEvent
	for _, e := range r.store.events {
		if !e.Published {
			out = append(out, e)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range r.store.events {
		if e.ID == id {
			e.Published = true
			at := publishedAt
			e.PublishedAt = &at
		}
	}
	return nil
}

func (r *MemoryOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.events[:0]
	for _, e := range r.store.events {
		if e.Published && e.PublishedAt != nil && e.PublishedAt.Before(before) {
			continue
		}
		kept = append(kept, e)
	}
	r.store.events = kept
	return nil
}

// OnceRetrier runs the operation a single time.
type OnceRetrier struct{}

func (OnceRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

// SequenceIDGenerator returns prefix-000001, prefix-000002 and so on.
type SequenceIDGenerator struct {
	Prefix  string
	mu      sync.Mutex
	counter int
}

func NewSequenceIDGenerator(prefix string) *SequenceIDGenerator {
	return &SequenceIDGenerator{Prefix: prefix}
}

func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("%s-%06d", g.Prefix, g.counter)
}

// MemoryIdempotencyStore is an in-memory IdempotencyStore.
type MemoryIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	UpdateFunc      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func NewMemoryIdempotencyStore() *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *MemoryIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte("processing")
	}
	return false, nil, nil
}

func (m *MemoryIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *MemoryIdempotencyStore) Release(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys returns the stored idempotency keys.
func (m *MemoryIdempotencyStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
