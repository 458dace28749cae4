package internal

import (
	"testing"
	"time"
)

func TestNewAccountRecordsCreation(t *testing.T) {
	now := date("2024-04-28").Add(10 * time.Hour)
	a := NewAccount(ServiceGas, "  Gas refill  ", "", 18000,
		date("2024-04-28"), date("2024-05-12"), time.Time{}, time.Time{}, now)

	if a.ID != "gas_20240428_100000" {
		t.Errorf("unexpected id: %s", a.ID)
	}
	if a.Description != "Gas refill" {
		t.Errorf("description should be trimmed, got %q", a.Description)
	}
	if len(a.History) != 1 || a.History[0].Kind != ChangeCreated {
		t.Fatalf("expected a single creation history entry, got %v", a.History)
	}
}

func TestEnsureUniqueID(t *testing.T) {
	existing := []Account{
		{ID: "gas_20240428_100000"},
		{ID: "gas_20240428_100000_2"},
	}
	got := EnsureUniqueID("gas_20240428_100000", existing)
	if got != "gas_20240428_100000_3" {
		t.Errorf("expected suffix _3, got %s", got)
	}
	if got := EnsureUniqueID("water_20240428_100000", existing); got != "water_20240428_100000" {
		t.Errorf("non-colliding id should be unchanged, got %s", got)
	}
}

func TestMarkPaid(t *testing.T) {
	a := validAccount()
	now := date("2024-05-08").Add(9 * time.Hour)

	if !a.MarkPaid(time.Time{}, now) {
		t.Fatal("expected first MarkPaid to succeed")
	}
	if !a.Paid || !a.PaidDate.Equal(date("2024-05-08")) {
		t.Errorf("expected paid on 2024-05-08, got %v %v", a.Paid, a.PaidDate)
	}
	if len(a.History) != 1 || a.History[0].Kind != ChangePaid {
		t.Fatalf("expected one paid history entry, got %v", a.History)
	}

	if a.MarkPaid(time.Time{}, now) {
		t.Error("marking an already-paid account should be a no-op")
	}
	if len(a.History) != 1 {
		t.Errorf("no-op should not append history, got %d entries", len(a.History))
	}
}

func TestAccountEditApply(t *testing.T) {
	a := validAccount()
	now := date("2024-05-02")

	newAmount := int64(32000)
	newDesc := "Corrected water bill"
	newDue := date("2024-05-15")
	edit := AccountEdit{
		Amount:      &newAmount,
		Description: &newDesc,
		DueDate:     &newDue,
	}

	if !edit.Apply(&a, now) {
		t.Fatal("expected the edit to change the account")
	}
	if a.Amount != 32000 || a.Description != "Corrected water bill" || !a.DueDate.Equal(newDue) {
		t.Errorf("edit not applied: %+v", a)
	}
	if len(a.History) != 3 {
		t.Fatalf("expected one history entry per changed field, got %d", len(a.History))
	}
	for _, h := range a.History {
		if h.Kind != ChangeEdited {
			t.Errorf("expected edited entries, got %s", h.Kind)
		}
	}

	byField := make(map[string]HistoryEntry)
	for _, h := range a.History {
		byField[h.Field] = h
	}
	if h := byField["amount"]; h.Old != "25000" || h.New != "32000" {
		t.Errorf("amount history wrong: %+v", h)
	}
	if h := byField["due_date"]; h.Old != "2024-05-10" || h.New != "2024-05-15" {
		t.Errorf("due_date history wrong: %+v", h)
	}
}

func TestAccountEditNoChanges(t *testing.T) {
	a := validAccount()
	sameAmount := a.Amount
	sameDesc := a.Description
	edit := AccountEdit{Amount: &sameAmount, Description: &sameDesc}

	if edit.Apply(&a, date("2024-05-02")) {
		t.Error("identical values should not count as a change")
	}
	if len(a.History) != 0 {
		t.Errorf("no history expected, got %v", a.History)
	}
}

func TestFindAndRemoveAccount(t *testing.T) {
	accounts := []Account{
		{ID: "a"}, {ID: "b"}, {ID: "c"},
	}

	if got := FindAccount(accounts, "b"); got == nil || got.ID != "b" {
		t.Errorf("expected to find b, got %v", got)
	}
	if got := FindAccount(accounts, "x"); got != nil {
		t.Errorf("expected nil for unknown id, got %v", got)
	}

	accounts, removed := RemoveAccount(accounts, "b")
	if !removed || len(accounts) != 2 {
		t.Fatalf("expected b removed, got %v", accounts)
	}
	if FindAccount(accounts, "b") != nil {
		t.Error("b should be gone")
	}

	_, removed = RemoveAccount(accounts, "x")
	if removed {
		t.Error("removing an unknown id should report false")
	}
}
