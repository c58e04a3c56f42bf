package telemetry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecordAndSummarize(t *testing.T) {
	log, err := Open()
	require.NoError(t, err)
	defer log.Close()

	require.NoError(t, log.RecordTurn(Turn{
		ConnectionID: "conn-1", Season: "Spring", Card: "ackerland", Terrain: "FOREST",
		PositionsEvaluated: 100, DepthReached: 2, DecidedAt: time.Unix(0, 0),
	}))
	require.NoError(t, log.RecordTurn(Turn{
		ConnectionID: "conn-1", Season: "Spring", Card: "weiler", Terrain: "VILLAGE",
		PositionsEvaluated: 300, DepthReached: 4, DecidedAt: time.Unix(1, 0),
	}))

	summary, err := log.Summarize()
	require.NoError(t, err)
	require.Equal(t, 2, summary.TurnsPlayed)
	require.Equal(t, uint64(400), summary.TotalPositions)
	require.Equal(t, uint32(4), summary.MaxDepthReached)
	require.Equal(t, 3.0, summary.AverageDepthReached)
}

func TestSummarizeOnEmptyLog(t *testing.T) {
	log, err := Open()
	require.NoError(t, err)
	defer log.Close()

	summary, err := log.Summarize()
	require.NoError(t, err)
	require.Equal(t, 0, summary.TurnsPlayed)
	require.Equal(t, uint64(0), summary.TotalPositions)
}
