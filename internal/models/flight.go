package models

// FlightConfig is a reusable waypoint plan saved from a project. Flight
// configs live in a single global collection and are browsed by category
// or by originating project.
type FlightConfig struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	OriginalProjectPath string         `json:"original_project_path"`
	Category            string         `json:"category"`
	Description         string         `json:"description"`
	Plan                map[string]any `json:"flight_config"`
	CreatedAt           string         `json:"created_at"`
	UpdatedAt           string         `json:"updated_at"`
}
