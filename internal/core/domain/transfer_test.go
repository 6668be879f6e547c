package domain_test

import (
	"testing"
	"time"

	"github.com/mocustoms/store_transfer_app/internal/apperrors"
	"github.com/mocustoms/store_transfer_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func decimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}

// newDraftRequest builds a draft aggregate with a single line.
func newDraftRequest(requested int64) *domain.StoreRequest {
	req := &domain.StoreRequest{
		RequestID:         "req-1",
		ReferenceNumber:   "STR-2026-0001",
		RequestDate:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		RequestingStoreID: "store-a",
		IssuingStoreID:    "store-b",
		Priority:          domain.PriorityMedium,
		CurrencyCode:      "USD",
		ExchangeRate:      decimal.NewFromInt(1),
		Items: []domain.StoreRequestItem{
			{
				ItemID:            "item-1",
				RequestID:         "req-1",
				ProductID:         "prod-1",
				UnitCost:          dec(5),
				CurrencyCode:      "USD",
				ExchangeRate:      decimal.NewFromInt(1),
				RequestedQuantity: dec(requested),
			},
		},
	}
	req.Recompute()
	return req
}

func TestDeriveItemStatus(t *testing.T) {
	tests := []struct {
		name      string
		item      domain.StoreRequestItem
		cancelled bool
		want      domain.ItemStatus
	}{
		{
			name: "no approval recorded",
			item: domain.StoreRequestItem{RequestedQuantity: dec(10)},
			want: domain.ItemPending,
		},
		{
			name: "approved at zero is a line rejection",
			item: domain.StoreRequestItem{
				RequestedQuantity: dec(10),
				ApprovedQuantity:  decimalPtr(decimal.Zero),
			},
			want: domain.ItemRejected,
		},
		{
			name: "approved, nothing issued",
			item: domain.StoreRequestItem{
				RequestedQuantity: dec(10),
				ApprovedQuantity:  decimalPtr(dec(8)),
			},
			want: domain.ItemApproved,
		},
		{
			name: "partially issued",
			item: domain.StoreRequestItem{
				RequestedQuantity: dec(10),
				ApprovedQuantity:  decimalPtr(dec(8)),
				IssuedQuantity:    dec(3),
			},
			want: domain.ItemPartialIssued,
		},
		{
			name: "fully issued, nothing received",
			item: domain.StoreRequestItem{
				RequestedQuantity: dec(10),
				ApprovedQuantity:  decimalPtr(dec(8)),
				IssuedQuantity:    dec(8),
			},
			want: domain.ItemIssued,
		},
		{
			name: "partially received",
			item: domain.StoreRequestItem{
				RequestedQuantity: dec(10),
				ApprovedQuantity:  decimalPtr(dec(8)),
				IssuedQuantity:    dec(8),
				ReceivedQuantity:  dec(5),
			},
			want: domain.ItemPartiallyReceived,
		},
		{
			name: "fully received",
			item: domain.StoreRequestItem{
				RequestedQuantity: dec(10),
				ApprovedQuantity:  decimalPtr(dec(8)),
				IssuedQuantity:    dec(8),
				ReceivedQuantity:  dec(8),
			},
			want: domain.ItemFullyReceived,
		},
		{
			name: "cancelled after receiving caught up with a partial issue",
			item: domain.StoreRequestItem{
				RequestedQuantity: dec(10),
				ApprovedQuantity:  decimalPtr(dec(8)),
				IssuedQuantity:    dec(5),
				ReceivedQuantity:  dec(5),
			},
			cancelled: true,
			want:      domain.ItemClosedPartiallyReceived,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.DeriveItemStatus(&tt.item, tt.cancelled)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubmit_RequiresPositiveQuantity(t *testing.T) {
	req := newDraftRequest(0)
	err := req.Submit("user-1", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, domain.StatusDraft, req.Status)
}

func TestSubmit_OnlyFromDraft(t *testing.T) {
	req := newDraftRequest(100)
	require.NoError(t, req.Submit("user-1", time.Now()))
	err := req.Submit("user-1", time.Now())
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestApprove_BoundedByRequested(t *testing.T) {
	req := newDraftRequest(100)
	require.NoError(t, req.Submit("user-1", time.Now()))

	_, err := req.Approve(map[string]decimal.Decimal{"item-1": dec(120)}, "user-2", time.Now(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrQuantityInvariant)
	assert.Equal(t, domain.StatusSubmitted, req.Status)
	assert.Nil(t, req.Items[0].ApprovedQuantity)
}

func TestApprove_AllLinesAtZeroRejectsRequest(t *testing.T) {
	req := newDraftRequest(100)
	require.NoError(t, req.Submit("user-1", time.Now()))

	txns, err := req.Approve(map[string]decimal.Decimal{"item-1": decimal.Zero}, "user-2", time.Now(), "out of stock")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, domain.StatusRejected, req.Status)
	assert.Equal(t, domain.ItemRejected, req.Items[0].Status)
}

// Scenario: requested=100, approve 60, issue 40.
func TestPartialIssueFlow(t *testing.T) {
	now := time.Now()
	req := newDraftRequest(100)
	require.NoError(t, req.Submit("user-1", now))

	txns, err := req.Approve(map[string]decimal.Decimal{"item-1": dec(60)}, "user-2", now, "")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, domain.StatusApproved, req.Status)

	txns, err = req.Issue(map[string]decimal.Decimal{"item-1": dec(40)}, "user-3", now, "")
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, domain.StatusPartialIssued, req.Status)
	assert.True(t, req.Items[0].RemainingQuantity().Equal(dec(20)),
		"remaining = %s", req.Items[0].RemainingQuantity())
	assert.NoError(t, req.Items[0].ValidateQuantities())
}

// Scenario: continue the partial issue, then receive everything in one call.
func TestFullReceiveFlow(t *testing.T) {
	now := time.Now()
	req := newDraftRequest(100)
	require.NoError(t, req.Submit("user-1", now))
	_, err := req.Approve(map[string]decimal.Decimal{"item-1": dec(60)}, "user-2", now, "")
	require.NoError(t, err)
	_, err = req.Issue(map[string]decimal.Decimal{"item-1": dec(40)}, "user-3", now, "")
	require.NoError(t, err)

	_, err = req.Issue(map[string]decimal.Decimal{"item-1": dec(20)}, "user-3", now, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFulfilled, req.Status)
	require.NotNil(t, req.FulfilledAt)

	_, err = req.Receive(map[string]decimal.Decimal{"item-1": dec(60)}, "user-4", now, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusFullyReceived, req.Status)
	assert.True(t, req.Items[0].RemainingReceivingQuantity().IsZero())
	assert.True(t, req.Items[0].FulfilledQuantity().Equal(dec(60)))
}

// Scenario: issuing beyond the remaining quantity fails without mutating.
func TestIssue_OverRemainingFails(t *testing.T) {
	now := time.Now()
	req := newDraftRequest(100)
	require.NoError(t, req.Submit("user-1", now))
	_, err := req.Approve(map[string]decimal.Decimal{"item-1": dec(60)}, "user-2", now, "")
	require.NoError(t, err)
	_, err = req.Issue(map[string]decimal.Decimal{"item-1": dec(40)}, "user-3", now, "")
	require.NoError(t, err)

	_, err = req.Issue(map[string]decimal.Decimal{"item-1": dec(50)}, "user-3", now, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrQuantityInvariant)
	assert.True(t, req.Items[0].IssuedQuantity.Equal(dec(40)), "issued counter must not move")
	assert.Equal(t, domain.StatusPartialIssued, req.Status)
}

// Scenario: cancelling a partially issued request freezes quantities.
func TestCancel_PartialIssuedKeepsQuantities(t *testing.T) {
	now := time.Now()
	req := newDraftRequest(100)
	require.NoError(t, req.Submit("user-1", now))
	_, err := req.Approve(map[string]decimal.Decimal{"item-1": dec(60)}, "user-2", now, "")
	require.NoError(t, err)
	_, err = req.Issue(map[string]decimal.Decimal{"item-1": dec(40)}, "user-3", now, "")
	require.NoError(t, err)

	require.NoError(t, req.Cancel("truck broke down", "user-1", now))
	assert.Equal(t, domain.StatusPartialIssuedCancelled, req.Status)
	assert.True(t, req.Items[0].IssuedQuantity.Equal(dec(40)), "issued stock is not reverted")

	err = req.Cancel("again", "user-1", now)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestCancel_AfterReceiptDistinguishesVariant(t *testing.T) {
	now := time.Now()
	req := newDraftRequest(100)
	require.NoError(t, req.Submit("user-1", now))
	_, err := req.Approve(map[string]decimal.Decimal{"item-1": dec(60)}, "user-2", now, "")
	require.NoError(t, err)
	_, err = req.Issue(map[string]decimal.Decimal{"item-1": dec(40)}, "user-3", now, "")
	require.NoError(t, err)
	_, err = req.Receive(map[string]decimal.Decimal{"item-1": dec(10)}, "user-4", now, "")
	require.NoError(t, err)

	require.NoError(t, req.Cancel("abandoned", "user-1", now))
	assert.Equal(t, domain.StatusPartiallyReceivedCancelled, req.Status)
}

func TestReject_TerminalWithoutQuantityChanges(t *testing.T) {
	now := time.Now()
	req := newDraftRequest(100)
	require.NoError(t, req.Submit("user-1", now))

	txns, err := req.Reject("not needed", "user-2", now)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.True(t, txns[0].Quantity.IsZero())
	assert.Equal(t, domain.StatusRejected, req.Status)

	_, err = req.Issue(map[string]decimal.Decimal{"item-1": dec(1)}, "user-3", now, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestLedgerFoldReproducesCounters(t *testing.T) {
	now := time.Now()
	req := newDraftRequest(100)
	ledger := req.RequestedTransactions("user-1", now)

	require.NoError(t, req.Submit("user-1", now))
	txns, err := req.Approve(map[string]decimal.Decimal{"item-1": dec(60)}, "user-2", now, "")
	require.NoError(t, err)
	ledger = append(ledger, txns...)

	txns, err = req.Issue(map[string]decimal.Decimal{"item-1": dec(40)}, "user-3", now, "")
	require.NoError(t, err)
	ledger = append(ledger, txns...)

	txns, err = req.Issue(map[string]decimal.Decimal{"item-1": dec(20)}, "user-3", now, "")
	require.NoError(t, err)
	ledger = append(ledger, txns...)

	txns, err = req.Receive(map[string]decimal.Decimal{"item-1": dec(25)}, "user-4", now, "")
	require.NoError(t, err)
	ledger = append(ledger, txns...)

	folded := domain.FoldTransactions(ledger)
	assert.True(t, folded.Requested.Equal(dec(100)))
	assert.True(t, folded.Approved.Equal(dec(60)))
	assert.True(t, folded.Issued.Equal(dec(60)))
	assert.True(t, folded.Received.Equal(dec(25)))

	require.NoError(t, domain.ReconcileItem(req.Items[0], ledger))

	// Drift in a stored counter must be caught.
	drifted := req.Items[0]
	drifted.IssuedQuantity = drifted.IssuedQuantity.Add(dec(1))
	assert.Error(t, domain.ReconcileItem(drifted, ledger))
}

func TestLedgerEntrySnapshots(t *testing.T) {
	now := time.Now()
	req := newDraftRequest(100)
	require.NoError(t, req.Submit("user-1", now))
	_, err := req.Approve(map[string]decimal.Decimal{"item-1": dec(60)}, "user-2", now, "")
	require.NoError(t, err)

	first, err := req.Issue(map[string]decimal.Decimal{"item-1": dec(40)}, "user-3", now, "batch 1")
	require.NoError(t, err)
	second, err := req.Issue(map[string]decimal.Decimal{"item-1": dec(20)}, "user-3", now, "batch 2")
	require.NoError(t, err)

	require.Len(t, first, 1)
	assert.True(t, first[0].PreviousQuantity.IsZero())
	assert.True(t, first[0].NewQuantity.Equal(dec(40)))
	require.Len(t, second, 1)
	assert.True(t, second[0].PreviousQuantity.Equal(dec(40)))
	assert.True(t, second[0].NewQuantity.Equal(dec(60)))
	assert.Equal(t, "batch 2", second[0].Notes)
}

// Lines use two different currencies: the line equivalents use their own
// resolved rates and the header total switches to equivalents.
func TestMixedCurrencyTotals(t *testing.T) {
	req := newDraftRequest(100)
	req.Items = append(req.Items, domain.StoreRequestItem{
		ItemID:            "item-2",
		RequestID:         "req-1",
		ProductID:         "prod-2",
		UnitCost:          dec(5),
		CurrencyCode:      "MMK",
		ExchangeRate:      dec(2500),
		RequestedQuantity: dec(10),
	})
	req.Recompute()

	assert.True(t, req.MixedCurrency)
	assert.True(t, req.Items[1].EquivalentAmount.Equal(dec(125000)),
		"equivalent = %s", req.Items[1].EquivalentAmount)
	// Header total = sum of equivalents: 100*5*1 + 10*5*2500.
	assert.True(t, req.TotalValue.Equal(dec(500+125000)), "total = %s", req.TotalValue)
}

func TestSingleCurrencyTotalStaysInLineCurrency(t *testing.T) {
	req := newDraftRequest(100)
	// One line, USD at unit cost 5: total is 500 regardless of the header rate.
	req.ExchangeRate = dec(2)
	req.Recompute()
	assert.False(t, req.MixedCurrency)
	assert.True(t, req.TotalValue.Equal(dec(500)))
}

// All lines share one currency that differs from the header: still not
// mixed, and the total stays in the lines' currency instead of converting
// through the line rates.
func TestUniformNonHeaderCurrencyIsNotMixed(t *testing.T) {
	req := newDraftRequest(100)
	req.Items[0].CurrencyCode = "MMK"
	req.Items[0].ExchangeRate = dec(2500)
	req.Items[0].RequestedQuantity = dec(10)
	req.Recompute()

	assert.False(t, req.MixedCurrency)
	// Total = 10 * 5 in MMK, not 10*5*2500 in the default currency.
	assert.True(t, req.TotalValue.Equal(dec(50)), "total = %s", req.TotalValue)
	// The equivalent amount still carries the converted value per line.
	assert.True(t, req.Items[0].EquivalentAmount.Equal(dec(125000)))
}

func TestValidateHeader(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.StoreRequest)
		wantErr bool
	}{
		{name: "valid", mutate: func(r *domain.StoreRequest) {}, wantErr: false},
		{
			name:    "same store both sides",
			mutate:  func(r *domain.StoreRequest) { r.IssuingStoreID = r.RequestingStoreID },
			wantErr: true,
		},
		{
			name:    "unknown priority",
			mutate:  func(r *domain.StoreRequest) { r.Priority = "WHENEVER" },
			wantErr: true,
		},
		{
			name:    "missing currency",
			mutate:  func(r *domain.StoreRequest) { r.CurrencyCode = "" },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newDraftRequest(10)
			tt.mutate(req)
			err := req.ValidateHeader()
			if tt.wantErr {
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
