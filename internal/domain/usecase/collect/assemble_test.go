package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lindas-hydro/internal/domain/entity"
	"lindas-hydro/internal/domain/model/external"
	"lindas-hydro/internal/domain/query"
)

const (
	base        = "https://environment.ld.admin.ch/foen/hydro"
	collectedAt = "2024-05-01T10:04:00.000000"
)

func binding(subject, predicate, object string) map[string]external.Term {
	row := map[string]external.Term{
		"predicate": {Type: external.TermURI, Value: predicate},
		"object":    {Type: external.TermLiteral, Value: object},
	}
	if subject != "" {
		row["subject"] = external.Term{Type: external.TermURI, Value: subject}
	}
	return row
}

func dim(name string) string {
	return base + "/dimension/" + name
}

func station(code string) string {
	return base + "/station/" + code
}

func subject(code string) string {
	return base + "/river/observation/" + code
}

func TestAssemble_GroupsBySubject(t *testing.T) {
	results := &external.ResultSet{Bindings: []map[string]external.Term{
		binding(subject("2044"), dim("discharge"), "12.5"),
		binding(subject("2112"), dim("station"), station("2112")),
		binding(subject("2044"), dim("station"), station("2044")),
		binding(subject("2112"), dim("measurementTime"), "2024-05-01T10:00:00+02:00"),
		binding(subject("2044"), dim("measurementTime"), "2024-05-01T10:00:00+02:00"),
		binding(subject("2044"), "http://example.com/isLiter", "false"),
		binding(subject("2112"), dim("waterTemperature"), "9.1"),
	}}

	observations := Assemble(results, query.NewVocabulary(base), collectedAt)

	require.Len(t, observations, 2)
	assert.Equal(t, entity.Observation{
		Timestamp:      "2024-05-01T10:00:00+02:00",
		StationID:      "2044",
		Discharge:      "12.5",
		CollectionTime: collectedAt,
	}, observations[0])
	assert.Equal(t, "2112", observations[1].StationID)
	assert.Equal(t, "9.1", observations[1].WaterTemperature)
}

func TestAssemble_SubjectWithoutStation(t *testing.T) {
	results := &external.ResultSet{Bindings: []map[string]external.Term{
		binding(subject("2491"), dim("waterLevel"), "437.1"),
	}}

	observations := Assemble(results, query.NewVocabulary(base), collectedAt)

	require.Len(t, observations, 1)
	assert.Equal(t, "2491", observations[0].StationID)
	assert.Equal(t, "437.1", observations[0].WaterLevel)
}

func TestAssemble_ResultOrderWithoutSubject(t *testing.T) {
	results := &external.ResultSet{Bindings: []map[string]external.Term{
		binding("", dim("discharge"), "1.0"),
		binding("", dim("station"), station("2044")),
		binding("", dim("measurementTime"), "t1"),
		binding("", dim("dangerLevel"), "2"),
		binding("", dim("station"), station("2112")),
		binding("", dim("measurementTime"), "t2"),
		binding("", dim("waterLevel"), "401.0"),
	}}

	observations := Assemble(results, query.NewVocabulary(base), collectedAt)

	require.Len(t, observations, 2)
	assert.Equal(t, entity.Observation{Timestamp: "t1", StationID: "2044", DangerLevel: "2", CollectionTime: collectedAt}, observations[0])
	assert.Equal(t, entity.Observation{Timestamp: "t2", StationID: "2112", WaterLevel: "401.0", CollectionTime: collectedAt}, observations[1])
}

func TestAssemble_NoStationAtAll(t *testing.T) {
	results := &external.ResultSet{Bindings: []map[string]external.Term{
		binding("", dim("discharge"), "1.0"),
		binding("", "http://example.com/isLiter", "true"),
	}}

	observations := Assemble(results, query.NewVocabulary(base), collectedAt)

	require.Len(t, observations, 1)
	assert.Equal(t, "1.0", observations[0].Discharge)
	assert.Empty(t, observations[0].StationID)
}

func TestAssemble_OnlyUnmappedPredicates(t *testing.T) {
	results := &external.ResultSet{Bindings: []map[string]external.Term{
		binding("", "http://example.com/isLiter", "true"),
	}}

	assert.Empty(t, Assemble(results, query.NewVocabulary(base), collectedAt))
	assert.Empty(t, Assemble(nil, query.NewVocabulary(base), collectedAt))
}
