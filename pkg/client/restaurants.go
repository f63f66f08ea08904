package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/naveenspark/tripdesk/pkg/domain"
)

// TableReservationRequest is the payload for reserving a table.
type TableReservationRequest struct {
	RestaurantID    int64  `json:"restaurant_id"`
	UserID          int64  `json:"user_id"`
	ReservationDate string `json:"reservation_date"`
	ReservationTime string `json:"reservation_time"`
	NumberOfGuests  int    `json:"number_of_guests"`
	SpecialRequests string `json:"special_requests"`
	Status          string `json:"status"`
}

// ListRestaurants returns every restaurant.
func (c *Client) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	resp, err := c.get(ctx, "/restaurant/restaurants/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Restaurant](resp), nil
}

// GetRestaurant fetches one restaurant.
func (c *Client) GetRestaurant(ctx context.Context, id int64) (*domain.Restaurant, error) {
	resp, err := c.get(ctx, idPath("/restaurant/restaurants/", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeDetail[domain.Restaurant](resp), nil
}

// ListMenus returns the menu of one restaurant.
func (c *Client) ListMenus(ctx context.Context, restaurantID int64) ([]domain.MenuItem, error) {
	q := url.Values{"restaurant": {strconv.FormatInt(restaurantID, 10)}}
	resp, err := c.get(ctx, "/restaurant/menus/", q)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.MenuItem](resp), nil
}

// GetMenu fetches one menu item.
func (c *Client) GetMenu(ctx context.Context, id int64) (*domain.MenuItem, error) {
	resp, err := c.get(ctx, idPath("/restaurant/menus/", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeDetail[domain.MenuItem](resp), nil
}

// ListOnlineOrders returns the session user's online orders.
func (c *Client) ListOnlineOrders(ctx context.Context) ([]domain.OnlineOrder, error) {
	resp, err := c.get(ctx, "/restaurant/online-orders/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.OnlineOrder](resp), nil
}

// DeleteOnlineOrder cancels an online order.
func (c *Client) DeleteOnlineOrder(ctx context.Context, id int64) error {
	return c.delete(ctx, idPath("/restaurant/online-orders/", id))
}

// ListTableReservations returns the session user's table reservations.
func (c *Client) ListTableReservations(ctx context.Context) ([]domain.TableReservation, error) {
	resp, err := c.get(ctx, "/restaurant/table-reservations/", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.TableReservation](resp), nil
}

// CreateTableReservation reserves a table.
func (c *Client) CreateTableReservation(ctx context.Context, r TableReservationRequest) (*domain.TableReservation, error) {
	resp, err := c.post(ctx, "/restaurant/table-reservations/", r)
	if err != nil {
		return nil, err
	}
	return decodeDetail[domain.TableReservation](resp), nil
}

// DeleteTableReservation cancels a table reservation.
func (c *Client) DeleteTableReservation(ctx context.Context, id int64) error {
	return c.delete(ctx, idPath("/restaurant/table-reservations/", id))
}
