package client

import (
	"context"

	"github.com/MPIO1002/CINEME-sub001/constants"
	"github.com/MPIO1002/CINEME-sub001/model"
)

// FindCustomerByPhone tra khách hàng theo số điện thoại tại quầy.
// Trả về (nil, nil) nếu không có ai khớp.
func (c *Client) FindCustomerByPhone(ctx context.Context, phone string) (*model.Customer, error) {
	var users []model.Customer
	if err := c.get(ctx, "/users", &users); err != nil {
		return nil, model.NewBookingError(model.ErrCatalogUnavailable, constants.CUSTOMER_LOOKUP_FAILED, err)
	}
	for i := range users {
		if users[i].Phone == phone {
			return &users[i], nil
		}
	}
	return nil, nil
}
