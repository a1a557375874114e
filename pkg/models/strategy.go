package models

// ActiveStrategy is the strategy configuration currently in effect
type ActiveStrategy struct {
	File     string
	Strategy string
	Settings map[string]interface{}
}
