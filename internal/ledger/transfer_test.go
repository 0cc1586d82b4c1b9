package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cantina-backend/internal/models"
	"cantina-backend/internal/store"
)

var testClock = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestLedger(t *testing.T) (*Ledger, store.Store) {
	t.Helper()
	st := store.NewMemoryStore(func() *models.AppState {
		return models.Seed(testClock, "not-a-real-hash")
	})
	l := New(st).WithClock(func() time.Time { return testClock })
	return l, st
}

func loadState(t *testing.T, st store.Store) *models.AppState {
	t.Helper()
	state, err := st.Load(context.Background())
	require.NoError(t, err)
	return state
}

func TestReceiveIntoCentral(t *testing.T) {
	l, st := newTestLedger(t)
	ctx := context.Background()

	before := loadState(t, st)
	centralBefore := len(before.Central)
	movementsBefore := len(before.Movements)

	created, err := l.ReceiveIntoCentral(ctx, ProductDraft{
		Name:      "Miel",
		Category:  models.CategoryKitchen,
		Quantity:  12.5,
		Unit:      "kg",
		UnitPrice: 9.0,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 12.5, created.Quantity)

	state := loadState(t, st)
	require.Len(t, state.Central, centralBefore+1)
	require.Len(t, state.Movements, movementsBefore+1)

	movement := state.Movements[len(state.Movements)-1]
	assert.Equal(t, models.MovementInbound, movement.Kind)
	assert.Equal(t, created.ID, movement.ProductID)
	assert.Equal(t, 12.5, movement.Quantity)
	assert.Equal(t, models.EndpointCentral, movement.Destination)
}

func TestReceiveIntoCentralZeroQuantityRecordsNoMovement(t *testing.T) {
	l, st := newTestLedger(t)

	_, err := l.ReceiveIntoCentral(context.Background(), ProductDraft{
		Name:     "Vainilla",
		Category: models.CategoryCanteen,
		Unit:     "frascos",
	})
	require.NoError(t, err)

	state := loadState(t, st)
	assert.Empty(t, state.Movements)
}

func TestReceiveIntoCentralNegativeQuantity(t *testing.T) {
	l, _ := newTestLedger(t)

	_, err := l.ReceiveIntoCentral(context.Background(), ProductDraft{
		Name:     "Malo",
		Category: models.CategoryKitchen,
		Quantity: -1,
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

// Scenario: Harina starts at 100; restocking 50 lands at 150 with exactly
// one new inbound movement.
func TestRestockExisting(t *testing.T) {
	l, st := newTestLedger(t)
	ctx := context.Background()

	updated, err := l.RestockExisting(ctx, "p001", 50)
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.Quantity)

	state := loadState(t, st)
	assert.Equal(t, 150.0, state.FindCentralProduct("p001").Quantity)
	require.Len(t, state.Movements, 1)
	assert.Equal(t, models.MovementInbound, state.Movements[0].Kind)
	assert.Equal(t, 50.0, state.Movements[0].Quantity)
	assert.Equal(t, models.EndpointCentral, state.Movements[0].Destination)
}

func TestRestockExistingRejectsNonPositiveQuantity(t *testing.T) {
	l, st := newTestLedger(t)
	ctx := context.Background()

	for _, quantity := range []float64{0, -3} {
		_, err := l.RestockExisting(ctx, "p001", quantity)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}

	state := loadState(t, st)
	assert.Equal(t, 100.0, state.FindCentralProduct("p001").Quantity)
	assert.Empty(t, state.Movements)
}

func TestRestockExistingUnknownProduct(t *testing.T) {
	l, _ := newTestLedger(t)

	_, err := l.RestockExisting(context.Background(), "missing", 10)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateCentralProductIsNotALedgerEvent(t *testing.T) {
	l, st := newTestLedger(t)

	updated, err := l.UpdateCentralProduct(context.Background(), "p003", "Sal Marina", 2.0)
	require.NoError(t, err)
	assert.Equal(t, "Sal Marina", updated.Name)
	assert.Equal(t, 2.0, updated.UnitPrice)

	state := loadState(t, st)
	assert.Empty(t, state.Movements)
}

// Conservation: supplying Q units moves exactly Q from central to local and
// records one supply movement for the line.
func TestSupplyToLocationConservation(t *testing.T) {
	l, st := newTestLedger(t)
	ctx := context.Background()

	result, err := l.SupplyToLocation(ctx, "local-001", map[string]float64{"p009": 20})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
	assert.Empty(t, result.Rejected)

	state := loadState(t, st)
	central := state.FindCentralProduct("p009")
	assert.Equal(t, 100.0, central.Quantity)

	local := state.FindLocation("local-001").FindProduct("p009")
	require.NotNil(t, local)
	assert.Equal(t, 20.0, local.Quantity)
	assert.Equal(t, 120.0, central.Quantity+local.Quantity)

	// The lazily created local record copies the central master data.
	assert.Equal(t, "Cafe", local.Name)
	assert.Equal(t, models.CategoryCanteen, local.Category)
	assert.Equal(t, "kg", local.Unit)
	assert.Equal(t, 8.5, local.UnitPrice)

	require.Len(t, state.Movements, 1)
	movement := state.Movements[0]
	assert.Equal(t, models.MovementSupply, movement.Kind)
	assert.Equal(t, models.EndpointCentral, movement.Origin)
	assert.Equal(t, "local-001", movement.Destination)
	assert.Equal(t, 20.0, movement.Quantity)
}

func TestSupplyToLocationUpsertsExistingLocalProduct(t *testing.T) {
	l, st := newTestLedger(t)
	ctx := context.Background()

	_, err := l.SupplyToLocation(ctx, "local-001", map[string]float64{"p001": 10})
	require.NoError(t, err)
	_, err = l.SupplyToLocation(ctx, "local-001", map[string]float64{"p001": 5})
	require.NoError(t, err)

	state := loadState(t, st)
	location := state.FindLocation("local-001")
	require.Len(t, location.Warehouse, 1)
	assert.Equal(t, 15.0, location.FindProduct("p001").Quantity)
	assert.Equal(t, 85.0, state.FindCentralProduct("p001").Quantity)
}

// Scenario: requesting 500 of a product holding 120 rejects the line, keeps
// central intact and never creates the local record.
func TestSupplyToLocationInsufficientStock(t *testing.T) {
	l, st := newTestLedger(t)

	result, err := l.SupplyToLocation(context.Background(), "local-001", map[string]float64{"p009": 500})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Applied)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, "p009", result.Rejected[0].ProductID)
	assert.Equal(t, 500.0, result.Rejected[0].Requested)
	assert.Equal(t, 120.0, result.Rejected[0].Available)

	state := loadState(t, st)
	assert.Equal(t, 120.0, state.FindCentralProduct("p009").Quantity)
	assert.Nil(t, state.FindLocation("local-001").FindProduct("p009"))
	assert.Empty(t, state.Movements)
}

// The batch is not atomic across lines: a rejected line does not stop the
// valid ones from applying.
func TestSupplyToLocationPartialBatch(t *testing.T) {
	l, st := newTestLedger(t)

	result, err := l.SupplyToLocation(context.Background(), "local-001", map[string]float64{
		"p001": 10,
		"p002": 10000,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, "p002", result.Rejected[0].ProductID)

	state := loadState(t, st)
	assert.Equal(t, 90.0, state.FindCentralProduct("p001").Quantity)
	assert.Equal(t, 80.0, state.FindCentralProduct("p002").Quantity)
	require.Len(t, state.Movements, 1)
	assert.Equal(t, "p001", state.Movements[0].ProductID)
}

func TestSupplyToLocationUnknownProductIsRejectedLine(t *testing.T) {
	l, st := newTestLedger(t)

	result, err := l.SupplyToLocation(context.Background(), "local-001", map[string]float64{"ghost": 5})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Applied)
	require.Len(t, result.Rejected, 1)
	assert.Contains(t, result.Rejected[0].Reason, "not found")

	state := loadState(t, st)
	assert.Empty(t, state.Movements)
}

func TestSupplyToLocationIgnoresNonPositiveLines(t *testing.T) {
	l, st := newTestLedger(t)

	result, err := l.SupplyToLocation(context.Background(), "local-001", map[string]float64{
		"p001": 0,
		"p002": -4,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Applied)
	assert.Empty(t, result.Rejected)
	assert.Empty(t, loadState(t, st).Movements)
}

func TestSupplyToLocationInactiveLocation(t *testing.T) {
	l, _ := newTestLedger(t)

	_, err := l.SupplyToLocation(context.Background(), "local-002", map[string]float64{"p001": 5})
	assert.ErrorIs(t, err, ErrLocationInactive)
}

func TestSupplyToLocationUnknownLocation(t *testing.T) {
	l, _ := newTestLedger(t)

	_, err := l.SupplyToLocation(context.Background(), "nowhere", map[string]float64{"p001": 5})
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

// The movement log only ever grows, one entry per applied quantity change.
func TestMovementLogIsAppendOnly(t *testing.T) {
	l, st := newTestLedger(t)
	ctx := context.Background()

	lengths := []int{len(loadState(t, st).Movements)}

	_, err := l.RestockExisting(ctx, "p001", 5)
	require.NoError(t, err)
	lengths = append(lengths, len(loadState(t, st).Movements))

	_, err = l.SupplyToLocation(ctx, "local-001", map[string]float64{"p001": 3})
	require.NoError(t, err)
	lengths = append(lengths, len(loadState(t, st).Movements))

	_, err = l.RestockExisting(ctx, "p001", -1)
	assert.Error(t, err)
	lengths = append(lengths, len(loadState(t, st).Movements))

	assert.Equal(t, []int{0, 1, 2, 2}, lengths)
}
