package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksuibraheem/arba-sub002/internal/models"
	"github.com/ksuibraheem/arba-sub002/internal/repository"
	"github.com/ksuibraheem/arba-sub002/internal/services/ledger"
	"github.com/ksuibraheem/arba-sub002/internal/testutil"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newService(t *testing.T) *ledger.Service {
	t.Helper()
	db := testutil.OpenDB(t)
	return ledger.NewService(repository.NewLedgerRepository(db))
}

func add(t *testing.T, svc *ledger.Service, entryType models.LedgerEntryType, amount string) *models.LedgerEntry {
	t.Helper()
	entry, err := svc.Add(ledger.AddParams{
		Description: "test entry",
		Type:        entryType,
		Amount:      dec(amount),
		Category:    "payment",
		CreatedBy:   "tester",
	})
	require.NoError(t, err)
	return entry
}

func TestRunningBalance(t *testing.T) {
	svc := newService(t)

	first := add(t, svc, models.LedgerEntryCredit, "500")
	assert.Equal(t, 1, first.Sequence)
	assert.True(t, first.Balance.Equal(dec("500")), "balance %s", first.Balance)

	second := add(t, svc, models.LedgerEntryDebit, "200")
	assert.Equal(t, 2, second.Sequence)
	assert.True(t, second.Balance.Equal(dec("300")), "balance %s", second.Balance)

	third := add(t, svc, models.LedgerEntryCredit, "100")
	assert.Equal(t, 3, third.Sequence)
	assert.True(t, third.Balance.Equal(dec("400")), "balance %s", third.Balance)

	balance, err := svc.CurrentBalance()
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("400")))
}

func TestCurrentBalanceEmpty(t *testing.T) {
	svc := newService(t)

	balance, err := svc.CurrentBalance()
	require.NoError(t, err)
	assert.True(t, balance.IsZero())

	entries, err := svc.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAddValidation(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		name   string
		params ledger.AddParams
	}{
		{"zero amount", ledger.AddParams{Description: "x", Type: models.LedgerEntryCredit, Amount: decimal.Zero}},
		{"negative amount", ledger.AddParams{Description: "x", Type: models.LedgerEntryDebit, Amount: dec("-5")}},
		{"bad type", ledger.AddParams{Description: "x", Type: "transfer", Amount: dec("10")}},
		{"missing description", ledger.AddParams{Type: models.LedgerEntryCredit, Amount: dec("10")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Add(tc.params)
			var validationErr models.ValidationError
			require.ErrorAs(t, err, &validationErr)
		})
	}
}

// Replaying the signed amounts from sequence 1 must reproduce every stored
// running balance.
func TestReplayReproducesBalances(t *testing.T) {
	svc := newService(t)

	add(t, svc, models.LedgerEntryCredit, "1000.50")
	add(t, svc, models.LedgerEntryDebit, "250.25")
	add(t, svc, models.LedgerEntryCredit, "99.99")
	add(t, svc, models.LedgerEntryDebit, "0.01")

	entries, err := svc.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 4)

	running := decimal.Zero
	for _, entry := range entries {
		running = running.Add(entry.Signed())
		assert.True(t, entry.Balance.Equal(running), "seq %d: stored %s, replayed %s", entry.Sequence, entry.Balance, running)
	}
}
