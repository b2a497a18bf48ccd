package dto

import "github.com/stylahq/styla-backend/internal/models"

type CreateBoxRequest struct {
	CustomerID string   `json:"customerId"`
	ProductIDs []string `json:"productIds"`
}

// BoxRow is one joined box × product row, mirroring the box listing shape
// the dashboard consumes.
type BoxRow struct {
	Box     models.Box     `json:"box"`
	Product models.Product `json:"product"`
}

// BoxItemRow is one product row of a single box.
type BoxItemRow struct {
	BoxProduct models.BoxProduct `json:"boxProduct"`
	Product    models.Product    `json:"product"`
}

type NewestBoxResponse struct {
	Data []BoxItemRow `json:"data"`
}
