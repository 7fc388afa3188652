package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTenderStatus_CanTransitionTo(t *testing.T) {
	allowed := map[[2]TenderStatus]bool{
		{CreatedTender, PublishedTender}: true,
		{PublishedTender, ClosedTender}:  true,
	}
	statuses := []TenderStatus{CreatedTender, PublishedTender, ClosedTender}

	for _, from := range statuses {
		for _, to := range statuses {
			t.Run(string(from)+"->"+string(to), func(t *testing.T) {
				require.Equal(t, allowed[[2]TenderStatus{from, to}], from.CanTransitionTo(to))
			})
		}
	}
}

func TestTenderStatus_unknownNeverTransitions(t *testing.T) {
	require.False(t, TenderStatus("Draft").CanTransitionTo(PublishedTender))
	require.False(t, CreatedTender.CanTransitionTo("Draft"))
}

func TestParseTenderStatus(t *testing.T) {
	status, ok := ParseTenderStatus("Published")
	require.True(t, ok)
	require.Equal(t, PublishedTender, status)

	for _, raw := range []string{"", "published", "Canceled", " Closed"} {
		_, ok := ParseTenderStatus(raw)
		require.False(t, ok, raw)
	}
}

func TestPredecessors(t *testing.T) {
	require.Empty(t, Predecessors(CreatedTender))
	require.Equal(t, []TenderStatus{CreatedTender}, Predecessors(PublishedTender))
	require.Equal(t, []TenderStatus{PublishedTender}, Predecessors(ClosedTender))
}

func TestTenderPatch_IsEmpty(t *testing.T) {
	require.True(t, TenderPatch{}.IsEmpty())
	name := "Audit"
	require.False(t, TenderPatch{Name: &name}.IsEmpty())
}
