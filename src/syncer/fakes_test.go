package syncer

import (
	"banksync-server/src/aggregator"
	"banksync-server/src/cascade"
	"banksync-server/src/models"
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

type fakeRemote struct {
	mu sync.Mutex

	token        string
	tokenErr     error
	accounts     map[string][]aggregator.Account
	accountErrs  map[string]error
	transactions map[string][]aggregator.Transaction
	txnErrs      map[string]error

	tokenCalls   int
	accountCalls int
	txnCalls     int
	lastLimit    int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		token:        "tok-1",
		accounts:     map[string][]aggregator.Account{},
		accountErrs:  map[string]error{},
		transactions: map[string][]aggregator.Transaction{},
		txnErrs:      map[string]error{},
	}
}

func (f *fakeRemote) AcquireToken(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokenCalls++
	if f.tokenErr != nil {
		return "", f.tokenErr
	}
	return f.token, nil
}

func (f *fakeRemote) ListAccounts(ctx context.Context, token string, connectionIDs ...string) ([]aggregator.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.accountCalls++
	var out []aggregator.Account
	for _, id := range connectionIDs {
		if err := f.accountErrs[id]; err != nil {
			return nil, err
		}
		out = append(out, f.accounts[id]...)
	}
	return out, nil
}

func (f *fakeRemote) ListTransactions(ctx context.Context, token, accountID string, limit int) ([]aggregator.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txnCalls++
	f.lastLimit = limit
	if err := f.txnErrs[accountID]; err != nil {
		return nil, err
	}
	return f.transactions[accountID], nil
}

func (f *fakeRemote) networkCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tokenCalls + f.accountCalls + f.txnCalls
}

type fakeStore struct {
	mu sync.Mutex

	accounts     map[string]models.BankAccount
	order        []string
	transactions map[string]models.BankTransaction
	updateErrs   map[string]error
	createErr    func(*models.BankTransaction) error
	updates      int
}

func newFakeStore(accounts ...models.BankAccount) *fakeStore {
	s := &fakeStore{
		accounts:     map[string]models.BankAccount{},
		transactions: map[string]models.BankTransaction{},
		updateErrs:   map[string]error{},
	}
	for _, a := range accounts {
		s.accounts[a.ID] = a
		s.order = append(s.order, a.ID)
	}
	return s
}

func (s *fakeStore) ListAccounts(ctx context.Context) ([]models.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.BankAccount, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.accounts[id])
	}
	return out, nil
}

func (s *fakeStore) GetAccount(ctx context.Context, accountID string) (*models.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, models.ErrAccountNotFound
	}
	return &a, nil
}

func (s *fakeStore) UpdateAccountSync(ctx context.Context, accountID string, balance decimal.Decimal, iban string, syncedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.updateErrs[accountID]; err != nil {
		return err
	}
	a, ok := s.accounts[accountID]
	if !ok {
		return models.ErrAccountNotFound
	}
	a.Balance = balance
	a.IBAN = iban
	a.LastSyncAt = &syncedAt
	s.accounts[accountID] = a
	s.updates++
	return nil
}

func (s *fakeStore) TransactionExists(ctx context.Context, key models.DedupKey) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.transactions[key.String()]
	return ok, nil
}

func (s *fakeStore) CreateTransaction(ctx context.Context, t *models.BankTransaction) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		if err := s.createErr(t); err != nil {
			return false, err
		}
	}
	key := t.Key().String()
	if _, ok := s.transactions[key]; ok {
		return false, nil
	}
	s.transactions[key] = *t
	return true, nil
}

func (s *fakeStore) account(id string) models.BankAccount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[id]
}

func (s *fakeStore) transactionsFor(accountID string) []models.BankTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.BankTransaction
	for _, t := range s.transactions {
		if t.AccountID == accountID {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TransactionDate.Before(out[j].TransactionDate) })
	return out
}

type fakeEmitter struct {
	mu     sync.Mutex
	events []cascade.TransactionsImported
	err    error
}

func (e *fakeEmitter) Emit(ctx context.Context, event cascade.TransactionsImported) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, event)
	return e.err
}

func (e *fakeEmitter) emitted() []cascade.TransactionsImported {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]cascade.TransactionsImported(nil), e.events...)
}

func strPtr(s string) *string { return &s }

func linkedAccount(id, name, connectionID string) models.BankAccount {
	return models.BankAccount{ID: id, Name: name, ConnectionID: strPtr(connectionID), IBAN: "DE00OLD"}
}

func remoteTxn(date aggregator.Date, amount, purpose string) aggregator.Transaction {
	return aggregator.Transaction{
		BankBookingDate: date,
		Amount:          decimal.RequireFromString(amount),
		Purpose:         strPtr(purpose),
	}
}

var testCreds = aggregator.Credentials{
	BaseURL:      "https://aggregator.example",
	ClientID:     "client",
	ClientSecret: "secret",
}
