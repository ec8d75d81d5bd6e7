package client

import (
	"context"

	"github.com/MPIO1002/CINEME-sub001/constants"
	"github.com/MPIO1002/CINEME-sub001/model"
)

// Combos tải danh mục combo bắp nước
func (c *Client) Combos(ctx context.Context) ([]model.Combo, error) {
	var combos []model.Combo
	if err := c.get(ctx, "/combos", &combos); err != nil {
		return nil, model.NewBookingError(model.ErrCatalogUnavailable, constants.COMBOS_UNAVAILABLE, err)
	}
	return combos, nil
}
