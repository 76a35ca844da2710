package commercetools

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"strconv"

	"orderexport/internal/core/order"
	perr "orderexport/internal/platform/errors"
)

// Query runs one orders query for f and returns the first page as a ResultSet
// Pagination is not followed; Total carries the upstream match count when reported
func (c *Client) Query(ctx context.Context, f order.Filter) (order.ResultSet, error) {
	path := "/orders"
	if qs := queryString(f); qs != "" {
		path += "?" + qs
	}

	resp, err := c.get(ctx, path)
	if err != nil {
		return order.ResultSet{}, err
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Error().Err(cerr).Str("path", path).Msg("commercetools close body failed")
		}
	}()

	var page PagedOrders
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&page); err != nil {
		return order.ResultSet{}, perr.Wrap(err, perr.ErrorCodeFetch, "decode orders page")
	}

	rs := order.ResultSet{Orders: make([]order.Order, 0, len(page.Results))}
	for _, d := range page.Results {
		rs.Orders = append(rs.Orders, order.Order{
			ID:             d.ID,
			CreatedAt:      d.CreatedAt,
			LastModifiedAt: d.LastModifiedAt,
		})
	}
	if page.Total != nil {
		rs.Total = *page.Total
	}
	return rs, nil
}

// queryString renders where, sort and limit; empty parts are left out
func queryString(f order.Filter) string {
	v := url.Values{}
	if w := f.Where(); w != "" {
		v.Set("where", w)
	}
	if f.Sort != "" {
		v.Set("sort", f.Sort)
	}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	return v.Encode()
}
