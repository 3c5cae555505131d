package external

import (
	"encoding/json"
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonResults = `{
  "head": {"vars": ["subject", "predicate", "object"]},
  "results": {"bindings": [
    {"subject": {"type": "uri", "value": "https://environment.ld.admin.ch/foen/hydro/river/observation/2044"},
     "predicate": {"type": "uri", "value": "https://environment.ld.admin.ch/foen/hydro/dimension/discharge"},
     "object": {"type": "typed-literal", "value": "12.5", "datatype": "http://www.w3.org/2001/XMLSchema#double"}},
    {"predicate": {"type": "uri", "value": "https://environment.ld.admin.ch/foen/hydro/dimension/station"},
     "object": {"type": "literal", "value": "Rhein", "xml:lang": "de"}}
  ]}
}`

const xmlResults = `<?xml version="1.0"?>
<sparql xmlns="http://www.w3.org/2005/sparql-results#">
  <head>
    <variable name="subject"/>
    <variable name="predicate"/>
    <variable name="object"/>
  </head>
  <results>
    <result>
      <binding name="subject"><uri>https://environment.ld.admin.ch/foen/hydro/river/observation/2044</uri></binding>
      <binding name="predicate"><uri>https://environment.ld.admin.ch/foen/hydro/dimension/discharge</uri></binding>
      <binding name="object"><literal datatype="http://www.w3.org/2001/XMLSchema#double">12.5</literal></binding>
    </result>
    <result>
      <binding name="predicate"><uri>https://environment.ld.admin.ch/foen/hydro/dimension/station</uri></binding>
      <binding name="object"><literal xml:lang="de">Rhein</literal></binding>
    </result>
  </results>
</sparql>`

func assertResultSet(t *testing.T, set *ResultSet) {
	t.Helper()

	assert.Equal(t, []string{"subject", "predicate", "object"}, set.Vars)
	require.Len(t, set.Bindings, 2)
	assert.False(t, set.Empty())

	first := set.Bindings[0]
	assert.Equal(t, Term{Type: TermURI, Value: "https://environment.ld.admin.ch/foen/hydro/river/observation/2044"}, first["subject"])
	assert.Equal(t, Term{Type: TermLiteral, Value: "12.5", Datatype: "http://www.w3.org/2001/XMLSchema#double"}, first["object"])

	second := set.Bindings[1]
	_, hasSubject := second["subject"]
	assert.False(t, hasSubject)
	assert.Equal(t, Term{Type: TermLiteral, Value: "Rhein", Lang: "de"}, second["object"])
}

func TestJSONResults(t *testing.T) {
	var results JSONResults
	require.NoError(t, json.Unmarshal([]byte(jsonResults), &results))
	assertResultSet(t, results.ResultSet())
}

func TestXMLResults(t *testing.T) {
	var results XMLResults
	require.NoError(t, xml.Unmarshal([]byte(xmlResults), &results))
	assertResultSet(t, results.ResultSet())
}

func TestEmpty(t *testing.T) {
	var nilSet *ResultSet
	assert.True(t, nilSet.Empty())
	assert.True(t, (&ResultSet{}).Empty())
}
