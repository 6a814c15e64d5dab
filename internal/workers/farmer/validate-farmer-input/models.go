// internal/workers/farmer/validate-farmer-input/models.go
package validatefarmerinput

import "farm-advisor/internal/models"

type Input struct {
	Farmer map[string]interface{} `json:"farmer"`
}

type Output struct {
	Farmer    models.FarmerInput `json:"farmer"`
	Validated bool               `json:"validated"`
}
