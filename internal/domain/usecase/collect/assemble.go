package collect

import (
	"path"
	"strings"

	"lindas-hydro/internal/domain/entity"
	"lindas-hydro/internal/domain/model/external"
	"lindas-hydro/internal/domain/query"
)

type group struct {
	subject     string
	observation entity.Observation
	hasStation  bool
	discarded   bool
}

func (g *group) apply(predicate string, object string) {
	switch predicate {
	case "station":
		g.observation.StationID = object
		g.hasStation = true
	case "measurementTime":
		g.observation.Timestamp = object
	case "discharge":
		g.observation.Discharge = object
	case "waterLevel":
		g.observation.WaterLevel = object
	case "dangerLevel":
		g.observation.DangerLevel = object
	case "waterTemperature":
		g.observation.WaterTemperature = object
	}
}

// Assemble turns predicate/object bindings into observations.
// Bindings carrying a subject are grouped per subject in order of first appearance.
// Bindings without one follow result order: a station predicate opens a new observation
// and readings seen before the first station are dropped once a station shows up.
func Assemble(results *external.ResultSet, vocabulary query.Vocabulary, collectionTime string) []entity.Observation {
	if results.Empty() {
		return nil
	}

	dimensionPrefix := vocabulary.DimensionPrefix()
	stationPrefix := vocabulary.StationPrefix()

	var order []*group
	bySubject := make(map[string]*group)
	var current *group

	for _, binding := range results.Bindings {
		predicate := binding["predicate"].Value
		predicate = strings.ReplaceAll(predicate, dimensionPrefix, "")
		predicate = strings.ReplaceAll(predicate, query.ExtensionPrefix, "")
		object := strings.ReplaceAll(binding["object"].Value, stationPrefix, "")

		if subject := binding["subject"].Value; subject != "" {
			g, ok := bySubject[subject]
			if !ok {
				g = &group{subject: subject}
				bySubject[subject] = g
				order = append(order, g)
			}
			g.apply(predicate, object)
			continue
		}

		if predicate == "station" || current == nil {
			if predicate == "station" && current != nil && !current.hasStation {
				current.discarded = true
			}
			current = &group{}
			order = append(order, current)
		}
		current.apply(predicate, object)
	}

	observations := make([]entity.Observation, 0, len(order))
	for _, g := range order {
		if g.discarded || (g.subject == "" && g.observation == entity.Observation{}) {
			continue
		}
		if !g.hasStation && g.subject != "" {
			g.observation.StationID = path.Base(strings.TrimRight(g.subject, "/"))
		}
		g.observation.CollectionTime = collectionTime
		observations = append(observations, g.observation)
	}
	return observations
}
