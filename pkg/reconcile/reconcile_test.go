package reconcile_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/termsync/pkg/reconcile"
	"github.com/agentstation/termsync/pkg/terms"
)

func term(name string, id int) terms.Term {
	return terms.Term{Name: name, ID: id}
}

func TestReconcileScenario(t *testing.T) {
	source := []terms.Term{term("Net 30", 30), term("Net 15", 15), term("Net 60", 60)}
	remote := []terms.Term{term("Net 30", 30), term("Different", 15)}

	result := reconcile.Reconcile(source, remote)

	assert.Equal(t, 1, result.Matched())
	assert.Equal(t, []terms.Rename{{SourceName: "Net 15", RemoteName: "Different", ID: 15}}, result.Renamed())
	assert.Equal(t, []terms.Term{term("Net 60", 60)}, result.MissingInRemote())
	assert.Empty(t, result.MissingInSource())
	assert.True(t, result.HasDifferences())
}

func TestReconcileDisjoint(t *testing.T) {
	source := []terms.Term{term("Net 30", 30), term("Net 60", 60)}
	remote := []terms.Term{term("Due on Receipt", 0), term("2% 10 Net 30", 10)}

	result := reconcile.Reconcile(source, remote)

	assert.Zero(t, result.Matched())
	assert.Empty(t, result.Renamed())
	assert.Equal(t, source, result.MissingInRemote())
	assert.Equal(t, remote, result.MissingInSource())
}

func TestReconcileIdentical(t *testing.T) {
	list := []terms.Term{term("Net 30", 30), term("Net 15", 15), term("COD", 0)}
	remote := append([]terms.Term(nil), list...)

	result := reconcile.Reconcile(list, remote)

	assert.Equal(t, len(list), result.Matched())
	assert.Empty(t, result.Renamed())
	assert.Empty(t, result.MissingInRemote())
	assert.Empty(t, result.MissingInSource())
	assert.False(t, result.HasDifferences())
}

func TestReconcileSymmetry(t *testing.T) {
	a := []terms.Term{term("Net 30", 30), term("Net 15", 15), term("Net 60", 60)}
	b := []terms.Term{term("Net 30", 30), term("Net 90", 90), term("Other", 15)}

	ab := reconcile.Reconcile(a, b)
	ba := reconcile.Reconcile(b, a)

	assert.Equal(t, ab.MissingInRemote(), ba.MissingInSource())
	assert.Equal(t, ab.MissingInSource(), ba.MissingInRemote())
	assert.Equal(t, ab.Matched(), ba.Matched())
	assert.Len(t, ba.Renamed(), len(ab.Renamed()))
}

func TestReconcileEmptyInputs(t *testing.T) {
	tests := []struct {
		name            string
		source          []terms.Term
		remote          []terms.Term
		missingInRemote int
		missingInSource int
	}{
		{"both empty", nil, nil, 0, 0},
		{"empty remote", []terms.Term{term("Net 30", 30)}, nil, 1, 0},
		{"empty source", nil, []terms.Term{term("Net 30", 30)}, 0, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := reconcile.Reconcile(tc.source, tc.remote)
			assert.Zero(t, result.Matched())
			assert.Empty(t, result.Renamed())
			assert.Len(t, result.MissingInRemote(), tc.missingInRemote)
			assert.Len(t, result.MissingInSource(), tc.missingInSource)
		})
	}
}

func TestReconcileDuplicateIDsLastWins(t *testing.T) {
	remote := []terms.Term{term("Old name", 30), term("Net 30", 30)}
	source := []terms.Term{term("Net 30", 30)}

	result := reconcile.Reconcile(source, remote)

	assert.Equal(t, 1, result.Matched())
	assert.Empty(t, result.Renamed())
	assert.Empty(t, result.MissingInSource())
}

func TestResultIsImmutable(t *testing.T) {
	result := reconcile.Reconcile([]terms.Term{term("Net 60", 60)}, nil)

	missing := result.MissingInRemote()
	missing[0].Name = "changed"

	assert.Equal(t, "Net 60", result.MissingInRemote()[0].Name)
}

func TestResultSummaryAndJSON(t *testing.T) {
	result := reconcile.Reconcile(
		[]terms.Term{term("Net 30", 30), term("Net 15", 15)},
		[]terms.Term{term("Net 30", 30)},
	)

	assert.Equal(t, "1 matching, 0 renamed, 1 missing in remote, 0 missing in source", result.Summary())

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded reconcile.Snapshot
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded.Matched)
	assert.Equal(t, []terms.Term{term("Net 15", 15)}, decoded.MissingInRemote)
	assert.Empty(t, decoded.Renamed)
	assert.NotNil(t, decoded.MissingInSource)
}
