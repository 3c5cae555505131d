package query

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultBaseURL = "https://environment.ld.admin.ch/foen/hydro"
	DefaultGraph   = "https://lindas.admin.ch/foen/hydro"

	// ExtensionPrefix holds predicates that are not LINDAS cube dimensions.
	ExtensionPrefix = "http://example.com/"

	minSiteCode = 1
	maxSiteCode = 9999
)

var (
	DefaultSiteCodes  = []string{"2044", "2112", "2491", "2355"}
	DefaultParameters = []string{"station", "discharge", "measurementTime", "waterLevel", "dangerLevel", "waterTemperature", "isLiter"}
)

// Vocabulary derives the hydro URIs from a base URL.
type Vocabulary struct {
	BaseURL string
}

func NewVocabulary(baseURL string) Vocabulary {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return Vocabulary{BaseURL: strings.TrimRight(baseURL, "/")}
}

func (v Vocabulary) DimensionPrefix() string {
	return v.BaseURL + "/dimension/"
}

func (v Vocabulary) StationPrefix() string {
	return v.BaseURL + "/station/"
}

func (v Vocabulary) Observation(siteCode string) string {
	return v.BaseURL + "/river/observation/" + siteCode
}

// Parameters maps the short parameter names to their predicate URIs.
func (v Vocabulary) Parameters() map[string]string {
	dimension := v.DimensionPrefix()
	return map[string]string{
		"station":          dimension + "station",
		"discharge":        dimension + "discharge",
		"measurementTime":  dimension + "measurementTime",
		"waterLevel":       dimension + "waterLevel",
		"dangerLevel":      dimension + "dangerLevel",
		"waterTemperature": dimension + "waterTemperature",
		"isLiter":          ExtensionPrefix + "isLiter",
	}
}

// Builder accumulates validated site codes and parameters into a SPARQL SELECT query.
type Builder struct {
	vocabulary Vocabulary
	graph      string
	mapping    map[string]string
	sites      []string
	parameters []string
}

func NewBuilder(vocabulary Vocabulary, graph string) *Builder {
	if graph == "" {
		graph = DefaultGraph
	}
	return &Builder{
		vocabulary: vocabulary,
		graph:      graph,
		mapping:    vocabulary.Parameters(),
	}
}

// NormalizeSiteCode parses a code in 1..9999 and returns its canonical form ("0123" becomes "123").
func NormalizeSiteCode(code string) (string, error) {
	value, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("invalid site code %q: not an integer", code)
	}
	if value < minSiteCode || value > maxSiteCode {
		return "", fmt.Errorf("invalid site code %q: must be between %d and %d", code, minSiteCode, maxSiteCode)
	}
	return strconv.Itoa(value), nil
}

// AddSites validates every code before adding any of them.
func (b *Builder) AddSites(codes []string) error {
	normalized := make([]string, 0, len(codes))
	for _, code := range codes {
		site, err := NormalizeSiteCode(code)
		if err != nil {
			return err
		}
		normalized = append(normalized, site)
	}

	b.sites = append(b.sites, normalized...)
	return nil
}

// AddParameters rejects the whole batch when any name is unknown.
func (b *Builder) AddParameters(names []string) error {
	var invalid []string
	for _, name := range names {
		if _, ok := b.mapping[name]; !ok {
			invalid = append(invalid, name)
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("invalid parameters: %s", strings.Join(invalid, ", "))
	}

	b.parameters = append(b.parameters, names...)
	return nil
}

func (b *Builder) Sites() []string {
	return unique(b.sites)
}

func (b *Builder) Parameters() []string {
	return unique(b.parameters)
}

func (b *Builder) Build() (string, error) {
	if len(b.sites) == 0 {
		return "", fmt.Errorf("no site codes specified")
	}
	if len(b.parameters) == 0 {
		return "", fmt.Errorf("no parameters specified")
	}

	sites := b.Sites()
	subjects := make([]string, 0, len(sites))
	for _, site := range sites {
		subjects = append(subjects, "<"+b.vocabulary.Observation(site)+">")
	}

	parameters := b.Parameters()
	predicates := make([]string, 0, len(parameters))
	for _, parameter := range parameters {
		predicates = append(predicates, "<"+b.mapping[parameter]+">")
	}

	var sb strings.Builder
	sb.WriteString("PREFIX schema: <http://schema.org/>\n")
	sb.WriteString("PREFIX rdf: <http://www.w3.org/1999/02/22-rdf-syntax-ns#>\n")
	sb.WriteString("PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>\n\n")
	sb.WriteString("SELECT ?subject ?predicate ?object\n")
	fmt.Fprintf(&sb, "FROM <%s>\n", b.graph)
	sb.WriteString("WHERE {\n")
	sb.WriteString("  VALUES ?subject {\n    ")
	sb.WriteString(strings.Join(subjects, "\n    "))
	sb.WriteString("\n  }\n")
	sb.WriteString("  ?subject ?predicate ?object .\n")
	sb.WriteString("  FILTER (?predicate IN (\n    ")
	sb.WriteString(strings.Join(predicates, ",\n    "))
	sb.WriteString("\n  ))\n")
	sb.WriteString("}\n")
	return sb.String(), nil
}

func unique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}
