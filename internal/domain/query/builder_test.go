package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const expectedQuery = `PREFIX schema: <http://schema.org/>
PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>

SELECT ?subject ?predicate ?object
FROM <https://lindas.admin.ch/foen/hydro>
WHERE {
  VALUES ?subject {
    <https://environment.ld.admin.ch/foen/hydro/river/observation/2044>
    <https://environment.ld.admin.ch/foen/hydro/river/observation/123>
  }
  ?subject ?predicate ?object .
  FILTER (?predicate IN (
    <https://environment.ld.admin.ch/foen/hydro/dimension/station>,
    <http://example.com/isLiter>
  ))
}
`

func newBuilder() *Builder {
	return NewBuilder(NewVocabulary(""), "")
}

func TestBuild(t *testing.T) {
	b := newBuilder()
	require.NoError(t, b.AddSites([]string{"2044", " 0123 ", "2044"}))
	require.NoError(t, b.AddParameters([]string{"station", "isLiter", "station"}))

	q, err := b.Build()

	require.NoError(t, err)
	assert.Equal(t, expectedQuery, q)
	assert.Equal(t, []string{"2044", "123"}, b.Sites())
	assert.Equal(t, []string{"station", "isLiter"}, b.Parameters())
}

func TestBuild_CustomBaseURLAndGraph(t *testing.T) {
	b := NewBuilder(NewVocabulary("https://example.org/hydro/"), "https://example.org/graph")
	require.NoError(t, b.AddSites([]string{"7"}))
	require.NoError(t, b.AddParameters([]string{"discharge"}))

	q, err := b.Build()

	require.NoError(t, err)
	assert.Contains(t, q, "FROM <https://example.org/graph>")
	assert.Contains(t, q, "<https://example.org/hydro/river/observation/7>")
	assert.Contains(t, q, "<https://example.org/hydro/dimension/discharge>")
}

func TestBuild_Errors(t *testing.T) {
	noSites := newBuilder()
	require.NoError(t, noSites.AddParameters([]string{"station"}))
	_, err := noSites.Build()
	assert.EqualError(t, err, "no site codes specified")

	noParameters := newBuilder()
	require.NoError(t, noParameters.AddSites([]string{"2044"}))
	_, err = noParameters.Build()
	assert.EqualError(t, err, "no parameters specified")
}

func TestAddSites(t *testing.T) {
	tests := []struct {
		name    string
		codes   []string
		wantErr string
		want    []string
	}{
		{name: "valid bounds", codes: []string{"1", "9999"}, want: []string{"1", "9999"}},
		{name: "zero", codes: []string{"2044", "0"}, wantErr: `invalid site code "0": must be between 1 and 9999`},
		{name: "too large", codes: []string{"10000"}, wantErr: `invalid site code "10000": must be between 1 and 9999`},
		{name: "not a number", codes: []string{"abc"}, wantErr: `invalid site code "abc": not an integer`},
		{name: "empty", codes: []string{""}, wantErr: `invalid site code "": not an integer`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBuilder()
			err := b.AddSites(tt.codes)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.Empty(t, b.Sites())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, b.Sites())
		})
	}
}

func TestAddParameters_RejectsWholeBatch(t *testing.T) {
	b := newBuilder()

	err := b.AddParameters([]string{"discharge", "flow", "speed"})

	assert.EqualError(t, err, "invalid parameters: flow, speed")
	assert.Empty(t, b.Parameters())
}

func TestVocabularyParameters(t *testing.T) {
	parameters := NewVocabulary("").Parameters()

	assert.Len(t, parameters, len(DefaultParameters))
	for _, name := range DefaultParameters {
		assert.Contains(t, parameters, name)
	}
	assert.Equal(t, "https://environment.ld.admin.ch/foen/hydro/dimension/waterTemperature", parameters["waterTemperature"])
}
