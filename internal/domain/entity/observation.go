package entity

// CollectionTimeLayout is the local wall-clock layout of Observation.CollectionTime.
const CollectionTimeLayout = "2006-01-02T15:04:05.000000"

// CSVHeader is the fixed column order of the observation file.
var CSVHeader = []string{"timestamp", "station_id", "discharge", "water_level", "danger_level", "water_temperature", "collection_time"}

// Observation is one gauge reading as stored in the CSV file. Values are kept verbatim.
type Observation struct {
	Timestamp        string `json:"timestamp"`
	StationID        string `json:"stationId"`
	Discharge        string `json:"discharge"`
	WaterLevel       string `json:"waterLevel"`
	DangerLevel      string `json:"dangerLevel"`
	WaterTemperature string `json:"waterTemperature"`
	CollectionTime   string `json:"collectionTime"`
}

// Key identifies an observation across runs.
func (o Observation) Key() string {
	return ObservationKey(o.Timestamp, o.StationID)
}

func ObservationKey(timestamp, stationID string) string {
	return timestamp + "_" + stationID
}

// Record returns the CSV row in CSVHeader order.
func (o Observation) Record() []string {
	return []string{o.Timestamp, o.StationID, o.Discharge, o.WaterLevel, o.DangerLevel, o.WaterTemperature, o.CollectionTime}
}

// ObservationFromRecord maps a CSV row in CSVHeader order. Missing trailing columns stay empty.
func ObservationFromRecord(record []string) Observation {
	field := func(i int) string {
		if i < len(record) {
			return record[i]
		}
		return ""
	}
	return Observation{
		Timestamp:        field(0),
		StationID:        field(1),
		Discharge:        field(2),
		WaterLevel:       field(3),
		DangerLevel:      field(4),
		WaterTemperature: field(5),
		CollectionTime:   field(6),
	}
}
