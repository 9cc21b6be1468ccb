package csvfile

import (
	"context"
	"sync"

	"food-order/models"
)

// AccountStore keeps [identifier, secret] records in a CSV file.
type AccountStore struct {
	path string
	mu   sync.Mutex
}

// NewAccountStore touches path so later reads never see a missing file.
func NewAccountStore(path string) (*AccountStore, error) {
	if err := Touch(path); err != nil {
		return nil, err
	}
	return &AccountStore{path: path}, nil
}

func (s *AccountStore) Find(ctx context.Context, identifier, secret string) (bool, error) {
	accounts, err := s.load()
	if err != nil {
		return false, err
	}
	for _, a := range accounts {
		if a.Identifier == identifier && a.Secret == secret {
			return true, nil
		}
	}
	return false, nil
}

func (s *AccountStore) Exists(ctx context.Context, identifier string) (bool, error) {
	_, ok, err := s.Secret(ctx, identifier)
	return ok, err
}

func (s *AccountStore) Secret(ctx context.Context, identifier string) (string, bool, error) {
	accounts, err := s.load()
	if err != nil {
		return "", false, err
	}
	for _, a := range accounts {
		if a.Identifier == identifier {
			return a.Secret, true, nil
		}
	}
	return "", false, nil
}

func (s *AccountStore) Append(ctx context.Context, account models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendRecord(s.path, []string{account.Identifier, account.Secret})
}

// load reads all accounts. A missing file reads as an empty store and
// short records are skipped.
func (s *AccountStore) load() ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := readRecords(s.path)
	if err != nil {
		if isNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	accounts := make([]models.Account, 0, len(records))
	for _, rec := range records {
		if len(rec) < 2 {
			continue
		}
		accounts = append(accounts, models.Account{Identifier: rec[0], Secret: rec[1]})
	}
	return accounts, nil
}
