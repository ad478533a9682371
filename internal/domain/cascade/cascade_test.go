package cascade

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bakehouse/internal/core/apperror"
	"bakehouse/internal/core/id"
)

type fakeRow struct {
	parentID  id.ID
	deletedAt *time.Time
}

// fakeDependentSet is an in-memory dependent table keyed by row ID.
type fakeDependentSet struct {
	kind Kind
	rows map[id.ID]*fakeRow
}

func newFakeDependentSet(kind Kind) *fakeDependentSet {
	return &fakeDependentSet{kind: kind, rows: make(map[id.ID]*fakeRow)}
}

func (f *fakeDependentSet) add(parentID id.ID) id.ID {
	rowID := id.New()
	f.rows[rowID] = &fakeRow{parentID: parentID}
	return rowID
}

func (f *fakeDependentSet) addDeleted(parentID id.ID, at time.Time) id.ID {
	rowID := id.New()
	f.rows[rowID] = &fakeRow{parentID: parentID, deletedAt: &at}
	return rowID
}

func (f *fakeDependentSet) Kind() Kind { return f.kind }

func (f *fakeDependentSet) SoftDestroyByParent(_ context.Context, parentID id.ID, at time.Time) ([]id.ID, error) {
	var touched []id.ID
	for rowID, row := range f.rows {
		if row.parentID == parentID && row.deletedAt == nil {
			t := at
			row.deletedAt = &t
			touched = append(touched, rowID)
		}
	}
	return touched, nil
}

func (f *fakeDependentSet) FindDeletedByParent(_ context.Context, parentID id.ID) ([]DeletedDependent, error) {
	var out []DeletedDependent
	for rowID, row := range f.rows {
		if row.parentID == parentID && row.deletedAt != nil {
			out = append(out, DeletedDependent{ID: rowID, DeletedAt: *row.deletedAt})
		}
	}
	return out, nil
}

func (f *fakeDependentSet) Restore(_ context.Context, entityID id.ID) error {
	if row, ok := f.rows[entityID]; ok {
		row.deletedAt = nil
	}
	return nil
}

func TestGraphValidate_AcyclicPasses(t *testing.T) {
	g := NewGraph()
	g.Register(KindOrder, newFakeDependentSet(KindOrderItem))
	g.Register(KindOrder, newFakeDependentSet(KindPayment))

	require.NoError(t, g.Validate())
}

func TestGraphValidate_DetectsCycle(t *testing.T) {
	g := NewGraph()
	g.Register(Kind("a"), newFakeDependentSet(Kind("b")))
	g.Register(Kind("b"), newFakeDependentSet(Kind("a")))

	err := g.Validate()
	require.Error(t, err)
	assert.True(t, apperror.IsCascadeCycle(err))
}

func TestGraphValidate_DetectsSelfLoop(t *testing.T) {
	g := NewGraph()
	g.Register(Kind("a"), newFakeDependentSet(Kind("a")))

	err := g.Validate()
	require.Error(t, err)
	assert.True(t, apperror.IsCascadeCycle(err))
}

func TestNewPropagator_RejectsCyclicGraph(t *testing.T) {
	g := NewGraph()
	g.Register(Kind("a"), newFakeDependentSet(Kind("b")))
	g.Register(Kind("b"), newFakeDependentSet(Kind("a")))

	_, err := NewPropagator(g)
	require.Error(t, err)
	assert.True(t, apperror.IsCascadeCycle(err))
}

func TestDestroy_TouchesAllDependentSets(t *testing.T) {
	items := newFakeDependentSet(KindOrderItem)
	payments := newFakeDependentSet(KindPayment)

	g := NewGraph()
	g.Register(KindOrder, items)
	g.Register(KindOrder, payments)
	p, err := NewPropagator(g)
	require.NoError(t, err)

	orderID := id.New()
	i1 := items.add(orderID)
	i2 := items.add(orderID)
	pay := payments.add(orderID)
	other := items.add(id.New()) // different parent, untouched

	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	n, err := p.Destroy(context.Background(), KindOrder, orderID, at)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, rowID := range []id.ID{i1, i2} {
		require.NotNil(t, items.rows[rowID].deletedAt)
		assert.True(t, items.rows[rowID].deletedAt.Equal(at), "cascade must share one timestamp")
	}
	require.NotNil(t, payments.rows[pay].deletedAt)
	assert.Nil(t, items.rows[other].deletedAt)
}

func TestDestroy_SkipsIndependentlyDeletedDependents(t *testing.T) {
	items := newFakeDependentSet(KindOrderItem)
	g := NewGraph()
	g.Register(KindOrder, items)
	p, err := NewPropagator(g)
	require.NoError(t, err)

	orderID := id.New()
	earlier := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	pre := items.addDeleted(orderID, earlier)

	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	n, err := p.Destroy(context.Background(), KindOrder, orderID, at)
	require.NoError(t, err)
	assert.Zero(t, n)

	// The cascade queries the default scope only, so the independently
	// deleted row keeps its original timestamp.
	assert.True(t, items.rows[pre].deletedAt.Equal(earlier))
}

func TestDestroy_RecursesOneLevelDeeper(t *testing.T) {
	children := newFakeDependentSet(Kind("child"))
	grandchildren := newFakeDependentSet(Kind("grandchild"))

	g := NewGraph()
	g.Register(Kind("root"), children)
	g.Register(Kind("child"), grandchildren)
	p, err := NewPropagator(g)
	require.NoError(t, err)

	rootID := id.New()
	childID := children.add(rootID)
	grandID := grandchildren.add(childID)

	at := time.Now().UTC()
	n, err := p.Destroy(context.Background(), Kind("root"), rootID, at)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	require.NotNil(t, children.rows[childID].deletedAt)
	require.NotNil(t, grandchildren.rows[grandID].deletedAt)
	assert.True(t, grandchildren.rows[grandID].deletedAt.Equal(at))
}

func TestRestoreDependents_OnlySameCascadeTimestamp(t *testing.T) {
	items := newFakeDependentSet(KindOrderItem)
	g := NewGraph()
	g.Register(KindOrder, items)
	p, err := NewPropagator(g)
	require.NoError(t, err)

	orderID := id.New()
	cascadeAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	independentAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	fromCascade := items.addDeleted(orderID, cascadeAt)
	independent := items.addDeleted(orderID, independentAt)

	n, err := p.RestoreDependents(context.Background(), KindOrder, orderID, &cascadeAt)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.Nil(t, items.rows[fromCascade].deletedAt)
	require.NotNil(t, items.rows[independent].deletedAt, "independently deleted dependent must stay deleted")
}

func TestRestoreDependents_NilTimestampRestoresAll(t *testing.T) {
	items := newFakeDependentSet(KindOrderItem)
	payments := newFakeDependentSet(KindPayment)
	g := NewGraph()
	g.Register(KindOrder, items)
	g.Register(KindOrder, payments)
	p, err := NewPropagator(g)
	require.NoError(t, err)

	orderID := id.New()
	items.addDeleted(orderID, time.Now().UTC())
	items.addDeleted(orderID, time.Now().UTC().Add(-time.Hour))
	payments.addDeleted(orderID, time.Now().UTC())

	n, err := p.RestoreDependents(context.Background(), KindOrder, orderID, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRestoreDependents_NeverRunsAutomatically(t *testing.T) {
	// Destroy then Destroy again is the only propagation surface; there is no
	// restore path on the propagator other than the explicit loop. This pins
	// the asymmetry at the API level: Destroy exists, an automatic restore
	// counterpart does not.
	items := newFakeDependentSet(KindOrderItem)
	g := NewGraph()
	g.Register(KindOrder, items)
	p, err := NewPropagator(g)
	require.NoError(t, err)

	orderID := id.New()
	rowID := items.add(orderID)
	at := time.Now().UTC()
	_, err = p.Destroy(context.Background(), KindOrder, orderID, at)
	require.NoError(t, err)
	require.NotNil(t, items.rows[rowID].deletedAt)

	// Restoring the parent elsewhere leaves dependents untouched until the
	// caller asks for them explicitly.
	deps, err := items.FindDeletedByParent(context.Background(), orderID)
	require.NoError(t, err)
	assert.Len(t, deps, 1)
}
