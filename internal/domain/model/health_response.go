package model

// HealthStatus represents the possible health status values
type HealthStatus string

const (
	StatusUp       HealthStatus = "UP"
	StatusDown     HealthStatus = "DOWN"
	StatusUnknown  HealthStatus = "UNKNOWN"
	StatusDisabled HealthStatus = "DISABLED"
)

// ComponentHealthStatus represents the health check structure of a application component
type ComponentHealthStatus struct {
	Status  HealthStatus      `json:"status"`
	Details map[string]string `json:"details"`
}

// HealthResponse represents the health check response of all application
type HealthResponse struct {
	Status         HealthStatus          `json:"status"`
	Storage        ComponentHealthStatus `json:"storage"`
	Database       ComponentHealthStatus `json:"database"`
	Cache          ComponentHealthStatus `json:"cache"`
	Queue          ComponentHealthStatus `json:"queue"`
	LastCollection ComponentHealthStatus `json:"lastCollection"`
}

// Disabled is the health of a component that is switched off in configuration.
func Disabled() ComponentHealthStatus {
	return ComponentHealthStatus{
		Status:  StatusDisabled,
		Details: map[string]string{"message": string(StatusDisabled)},
	}
}

// Down builds a DOWN status carrying err as message.
func Down(err error) ComponentHealthStatus {
	return ComponentHealthStatus{
		Status:  StatusDown,
		Details: map[string]string{"message": err.Error()},
	}
}

// Up builds an UP status with optional extra details.
func Up(details map[string]string) ComponentHealthStatus {
	merged := map[string]string{"message": string(StatusUp)}
	for k, v := range details {
		merged[k] = v
	}
	return ComponentHealthStatus{Status: StatusUp, Details: merged}
}
