package avro

// OrderEventSchema is the Avro schema for order events on the Kafka
// topic. Optional customer fields are ["null", "string"] unions so a
// record with missing data still encodes.
const OrderEventSchema = `{
	"type": "record",
	"name": "ShopOrder",
	"namespace": "com.giftshop.order",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "customer_name", "type": ["null", "string"], "default": null},
		{"name": "phone", "type": ["null", "string"], "default": null},
		{"name": "address", "type": ["null", "string"], "default": null},
		{"name": "notes", "type": ["null", "string"], "default": null},
		{"name": "total", "type": "double"},
		{"name": "submitted_at", "type": "string"},
		{"name": "status", "type": ["null", "string"], "default": null},

		{"name": "items", "type": {
			"type": "array",
			"items": {
				"type": "record",
				"name": "OrderLine",
				"fields": [
					{"name": "id", "type": "string"},
					{"name": "title", "type": ["null", "string"], "default": null},
					{"name": "quantity", "type": "long"},
					{"name": "unit_price", "type": "double"},
					{"name": "category", "type": ["null", "string"], "default": null}
				]
			}
		}}
	]
}`
