package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MPIO1002/CINEME-sub001/constants"
	"github.com/MPIO1002/CINEME-sub001/model"
)

// ShowtimeSeats tải sơ đồ ghế của một suất chiếu, gồm cả ghế lối đi
// để UI render lưới liền mạch
func (c *Client) ShowtimeSeats(ctx context.Context, showtimeId string) ([]model.Seat, error) {
	var seats []model.Seat
	path := fmt.Sprintf("/showtimes/%s/seats", url.PathEscape(showtimeId))
	if err := c.get(ctx, path, &seats); err != nil {
		return nil, model.NewBookingError(model.ErrCatalogUnavailable, constants.CATALOG_UNAVAILABLE, err)
	}
	return seats, nil
}
