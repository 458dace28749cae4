package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrStorageUnavailable marks a store that cannot be reached. The fallback
// store switches to the local file when it sees this error.
var ErrStorageUnavailable = errors.New("storage unavailable")

// Store loads and saves the full account list. There are no partial writes
// and no storage-level querying; filtering and sorting happen in memory.
type Store interface {
	LoadAll(ctx context.Context) ([]Account, error)
	SaveAll(ctx context.Context, accounts []Account) error
}

// NewStore builds the store stack from config: the JSON file store alone,
// or the document store with transparent file fallback when a Mongo URI is
// configured.
func NewStore(cfg *Config, warn io.Writer) Store {
	file := NewFileStore(cfg.DataFile, cfg.BackupsToKeep)
	if cfg.Mongo.URI == "" {
		return file
	}
	return &fallbackStore{
		primary:  NewMongoStore(cfg.Mongo),
		fallback: file,
		warn:     warn,
	}
}

// fallbackStore tries the primary store and drops to the fallback for the
// rest of the process once the primary reports ErrStorageUnavailable.
// Sticking with the fallback avoids splitting reads and writes across two
// stores within one session.
type fallbackStore struct {
	primary       Store
	fallback      Store
	warn          io.Writer
	usingFallback bool
}

func (s *fallbackStore) LoadAll(ctx context.Context) ([]Account, error) {
	if s.usingFallback {
		return s.fallback.LoadAll(ctx)
	}
	accounts, err := s.primary.LoadAll(ctx)
	if errors.Is(err, ErrStorageUnavailable) {
		s.switchToFallback(err)
		return s.fallback.LoadAll(ctx)
	}
	return accounts, err
}

func (s *fallbackStore) SaveAll(ctx context.Context, accounts []Account) error {
	if s.usingFallback {
		return s.fallback.SaveAll(ctx, accounts)
	}
	err := s.primary.SaveAll(ctx, accounts)
	if errors.Is(err, ErrStorageUnavailable) {
		s.switchToFallback(err)
		return s.fallback.SaveAll(ctx, accounts)
	}
	return err
}

func (s *fallbackStore) switchToFallback(err error) {
	s.usingFallback = true
	if s.warn != nil {
		fmt.Fprintf(s.warn, "Warning: %v, falling back to local file store\n", err)
	}
}

// persistAccount is the serialized form of an account, shared by the JSON
// file store and the document store. Dates are YYYY-MM-DD strings; history
// timestamps are RFC 3339.
type persistAccount struct {
	ID              string           `json:"id" bson:"_id"`
	ServiceType     string           `json:"service_type" bson:"service_type"`
	Description     string           `json:"description" bson:"description"`
	Notes           string           `json:"notes,omitempty" bson:"notes,omitempty"`
	Amount          int64            `json:"amount" bson:"amount"`
	IssueDate       string           `json:"issue_date" bson:"issue_date"`
	DueDate         string           `json:"due_date" bson:"due_date"`
	NextReadingDate string           `json:"next_reading_date,omitempty" bson:"next_reading_date,omitempty"`
	CutoffDate      string           `json:"cutoff_date,omitempty" bson:"cutoff_date,omitempty"`
	Paid            bool             `json:"paid" bson:"paid"`
	PaidDate        string           `json:"paid_date,omitempty" bson:"paid_date,omitempty"`
	History         []persistHistory `json:"history,omitempty" bson:"history,omitempty"`
}

type persistHistory struct {
	Kind      string `json:"kind" bson:"kind"`
	Timestamp string `json:"timestamp" bson:"timestamp"`
	Field     string `json:"field,omitempty" bson:"field,omitempty"`
	Old       string `json:"old,omitempty" bson:"old,omitempty"`
	New       string `json:"new,omitempty" bson:"new,omitempty"`
	Note      string `json:"note,omitempty" bson:"note,omitempty"`
}

func toPersist(a Account) persistAccount {
	p := persistAccount{
		ID:              a.ID,
		ServiceType:     string(a.Service),
		Description:     a.Description,
		Notes:           a.Notes,
		Amount:          a.Amount,
		IssueDate:       formatOptionalDate(a.IssueDate),
		DueDate:         formatOptionalDate(a.DueDate),
		NextReadingDate: formatOptionalDate(a.NextReadingDate),
		CutoffDate:      formatOptionalDate(a.CutoffDate),
		Paid:            a.Paid,
		PaidDate:        formatOptionalDate(a.PaidDate),
	}
	for _, h := range a.History {
		p.History = append(p.History, persistHistory{
			Kind:      string(h.Kind),
			Timestamp: h.Timestamp.UTC().Format(time.RFC3339),
			Field:     h.Field,
			Old:       h.Old,
			New:       h.New,
			Note:      h.Note,
		})
	}
	return p
}

func fromPersist(p persistAccount) (Account, error) {
	a := Account{
		ID:          p.ID,
		Service:     ServiceType(p.ServiceType),
		Description: p.Description,
		Notes:       p.Notes,
		Amount:      p.Amount,
		Paid:        p.Paid,
	}

	parse := func(field, value string) (time.Time, error) {
		if value == "" {
			return time.Time{}, nil
		}
		t, err := time.Parse(DateFormat, value)
		if err != nil {
			return time.Time{}, fmt.Errorf("account %s: parsing %s %q: %w", p.ID, field, value, err)
		}
		return t, nil
	}

	var err error
	if a.IssueDate, err = parse("issue_date", p.IssueDate); err != nil {
		return Account{}, err
	}
	if a.DueDate, err = parse("due_date", p.DueDate); err != nil {
		return Account{}, err
	}
	if a.NextReadingDate, err = parse("next_reading_date", p.NextReadingDate); err != nil {
		return Account{}, err
	}
	if a.CutoffDate, err = parse("cutoff_date", p.CutoffDate); err != nil {
		return Account{}, err
	}
	if a.PaidDate, err = parse("paid_date", p.PaidDate); err != nil {
		return Account{}, err
	}

	for _, h := range p.History {
		ts, err := time.Parse(time.RFC3339, h.Timestamp)
		if err != nil {
			return Account{}, fmt.Errorf("account %s: parsing history timestamp %q: %w", p.ID, h.Timestamp, err)
		}
		a.History = append(a.History, HistoryEntry{
			Kind:      ChangeKind(h.Kind),
			Timestamp: ts,
			Field:     h.Field,
			Old:       h.Old,
			New:       h.New,
			Note:      h.Note,
		})
	}

	return a, nil
}

func toPersistList(accounts []Account) []persistAccount {
	out := make([]persistAccount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toPersist(a))
	}
	return out
}

func fromPersistList(persisted []persistAccount) ([]Account, error) {
	var accounts []Account
	for _, p := range persisted {
		a, err := fromPersist(p)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}
