package activity

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"
)

// Record is the journal row. Its parquet tags double as the file schema.
type Record struct {
	Timestamp     int64   `json:"timestamp" parquet:"name=timestamp, type=INT64"`
	EventType     string  `json:"event_type" parquet:"name=event_type, type=BYTE_ARRAY, convertedtype=UTF8"`
	UserEmail     string  `json:"user_email" parquet:"name=user_email, type=BYTE_ARRAY, convertedtype=UTF8"`
	ItemID        int64   `json:"item_id" parquet:"name=item_id, type=INT64"`
	Quantity      int64   `json:"quantity" parquet:"name=quantity, type=INT64"`
	CartCount     int64   `json:"cart_count" parquet:"name=cart_count, type=INT64"`
	CartTotal     float64 `json:"cart_total" parquet:"name=cart_total, type=DOUBLE"`
	OrderID       string  `json:"order_id" parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	OrderTotal    float64 `json:"order_total" parquet:"name=order_total, type=DOUBLE"`
	PaymentMethod string  `json:"payment_method" parquet:"name=payment_method, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func decodeRecord(msg []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(msg, &r); err != nil {
		return Record{}, fmt.Errorf("invalid activity record: %w", err)
	}
	if r.Timestamp <= 0 {
		return Record{}, fmt.Errorf("invalid timestamp")
	}
	return r, nil
}

// partition returns the hive-style directory a record belongs to.
func partition(topic string, timestamp int64) string {
	t := time.Unix(timestamp, 0).UTC()
	year, month, day := t.Date()
	return filepath.Join(
		topic,
		fmt.Sprintf("year=%d", year),
		fmt.Sprintf("month=%02d", month),
		fmt.Sprintf("day=%02d", day),
		fmt.Sprintf("hour=%02d", t.Hour()),
	)
}
