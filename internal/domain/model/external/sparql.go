package external

import "encoding/xml"

const (
	TermURI     = "uri"
	TermLiteral = "literal"
	TermBNode   = "bnode"
)

// Term is one RDF term bound to a variable.
type Term struct {
	Type     string
	Value    string
	Datatype string
	Lang     string
}

// ResultSet is a SPARQL SELECT result independent of its wire format.
type ResultSet struct {
	Vars     []string
	Bindings []map[string]Term
}

func (r *ResultSet) Empty() bool {
	return r == nil || len(r.Bindings) == 0
}

// JSONResults is application/sparql-results+json.
type JSONResults struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]JSONTerm `json:"bindings"`
	} `json:"results"`
}

type JSONTerm struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Datatype string `json:"datatype,omitempty"`
	Lang     string `json:"xml:lang,omitempty"`
}

func (r *JSONResults) ResultSet() *ResultSet {
	set := &ResultSet{
		Vars:     r.Head.Vars,
		Bindings: make([]map[string]Term, 0, len(r.Results.Bindings)),
	}
	for _, binding := range r.Results.Bindings {
		row := make(map[string]Term, len(binding))
		for name, term := range binding {
			termType := term.Type
			// SPARQL 1.0 servers still emit typed-literal
			if termType == "typed-literal" {
				termType = TermLiteral
			}
			row[name] = Term{Type: termType, Value: term.Value, Datatype: term.Datatype, Lang: term.Lang}
		}
		set.Bindings = append(set.Bindings, row)
	}
	return set
}

// XMLResults is application/sparql-results+xml.
type XMLResults struct {
	XMLName xml.Name `xml:"sparql"`
	Head    struct {
		Variables []struct {
			Name string `xml:"name,attr"`
		} `xml:"variable"`
	} `xml:"head"`
	Results []XMLResult `xml:"results>result"`
}

type XMLResult struct {
	Bindings []XMLBinding `xml:"binding"`
}

type XMLBinding struct {
	Name    string      `xml:"name,attr"`
	URI     *string     `xml:"uri"`
	BNode   *string     `xml:"bnode"`
	Literal *XMLLiteral `xml:"literal"`
}

type XMLLiteral struct {
	Value    string `xml:",chardata"`
	Datatype string `xml:"datatype,attr"`
	Lang     string `xml:"http://www.w3.org/XML/1998/namespace lang,attr"`
}

func (r *XMLResults) ResultSet() *ResultSet {
	set := &ResultSet{Bindings: make([]map[string]Term, 0, len(r.Results))}
	for _, variable := range r.Head.Variables {
		set.Vars = append(set.Vars, variable.Name)
	}

	for _, result := range r.Results {
		row := make(map[string]Term, len(result.Bindings))
		for _, binding := range result.Bindings {
			switch {
			case binding.URI != nil:
				row[binding.Name] = Term{Type: TermURI, Value: *binding.URI}
			case binding.BNode != nil:
				row[binding.Name] = Term{Type: TermBNode, Value: *binding.BNode}
			case binding.Literal != nil:
				row[binding.Name] = Term{
					Type:     TermLiteral,
					Value:    binding.Literal.Value,
					Datatype: binding.Literal.Datatype,
					Lang:     binding.Literal.Lang,
				}
			}
		}
		set.Bindings = append(set.Bindings, row)
	}
	return set
}
