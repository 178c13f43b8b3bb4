package avro

import (
	"fmt"
	"time"

	"giftshop/internal/domain/cart"
	"giftshop/internal/domain/order"
)

func toNative(rec *order.Record) map[string]interface{} {
	items := make([]interface{}, 0, len(rec.Items))
	for _, item := range rec.Items {
		items = append(items, map[string]interface{}{
			"id":         item.ID,
			"title":      optionalString(item.Title),
			"quantity":   int64(item.Quantity),
			"unit_price": item.UnitPrice,
			"category":   optionalString(item.Category),
		})
	}

	return map[string]interface{}{
		"order_id":      rec.OrderID,
		"customer_name": optionalString(rec.Customer.Name),
		"phone":         optionalString(rec.Customer.Phone),
		"address":       optionalString(rec.Customer.Address),
		"notes":         optionalString(rec.Customer.Notes),
		"total":         rec.Total,
		"submitted_at":  rec.SubmittedAt.UTC().Format(time.RFC3339Nano),
		"status":        optionalString(string(rec.Status)),
		"items":         items,
	}
}

func fromNative(m map[string]interface{}) (*order.Record, error) {
	orderID, ok := m["order_id"].(string)
	if !ok || orderID == "" {
		return nil, fmt.Errorf("avro order has no order_id")
	}

	rec := &order.Record{
		OrderID: orderID,
		Customer: order.Customer{
			Name:    unionString(m["customer_name"]),
			Phone:   unionString(m["phone"]),
			Address: unionString(m["address"]),
			Notes:   unionString(m["notes"]),
		},
		Status: order.DispatchStatus(unionString(m["status"])),
	}

	if total, ok := m["total"].(float64); ok {
		rec.Total = total
	}
	if raw, ok := m["submitted_at"].(string); ok {
		if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
			rec.SubmittedAt = ts
		}
	}

	rawItems, _ := m["items"].([]interface{})
	for _, rawItem := range rawItems {
		itemMap, ok := rawItem.(map[string]interface{})
		if !ok {
			continue
		}
		line := cart.Line{
			ID:       unionString(itemMap["id"]),
			Title:    unionString(itemMap["title"]),
			Category: unionString(itemMap["category"]),
		}
		if qty, ok := itemMap["quantity"].(int64); ok {
			line.Quantity = int(qty)
		}
		if price, ok := itemMap["unit_price"].(float64); ok {
			line.UnitPrice = price
		}
		rec.Items = append(rec.Items, line)
	}

	return rec, nil
}

// optionalString wraps a Go string into the goavro representation of a
// ["null", "string"] union. Empty strings map to null.
func optionalString(s string) interface{} {
	if s == "" {
		return nil
	}
	return map[string]interface{}{"string": s}
}

// unionString unwraps a goavro union value back into a plain string.
func unionString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]interface{}:
		if s, ok := val["string"].(string); ok {
			return s
		}
	}
	return ""
}
