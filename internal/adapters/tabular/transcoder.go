package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"
	"storefront/internal/pkg/errs"
)

// columns is the fixed header set shared by export and import. Import accepts
// the columns in any order but matches them by these exact names.
var columns = []string{
	"order_number",
	"created_at",
	"customer_name",
	"customer_email",
	"customer_phone",
	"status",
	"payment_status",
	"total_amount",
	"currency",
	"shipping_method",
	"shipping_address",
	"tracking_number",
	"notes",
	"source",
	"item_count",
	"products",
}

// Transcoder maps between the order aggregate and a flat, one-row-per-order
// CSV representation for human-editable bulk interchange.
//
// The mapping is lossy by design: item-level detail is summarized into a
// single products cell, and the shipping address is flattened into one
// comma-joined cell. Exported rows are meant for review and bulk
// status/shipping edits, not for full order reconstruction. What does round
// trip exactly: order number, customer identity, status, payment status,
// totals, and notes.
type Transcoder struct {
	validator services.BulkValidator
}

// NewTranscoder creates a new Transcoder instance.
func NewTranscoder() Transcoder {
	return Transcoder{validator: services.NewBulkValidator()}
}

// ImportResult is the outcome of parsing and validating one CSV payload:
// rows that passed every check, plus the full error set for rows that did
// not. A row with any error is excluded from Valid; callers decide whether
// to admit the valid subset or reject the whole file.
type ImportResult struct {
	Valid  []services.ImportedOrderRow
	Errors []services.FieldError
}

// IsValid reports whether every parsed row passed validation.
func (r ImportResult) IsValid() bool {
	return len(r.Errors) == 0
}

// ExportOrders flattens the given orders into CSV text with the fixed column
// header set. Monetary amounts are written as bare decimal strings with the
// currency in its own column; timestamps are RFC 3339 in UTC.
func (t Transcoder) ExportOrders(orders []*order.Order) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, o := range orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if err := w.Write(rowFromOrder(o)); err != nil {
			return nil, fmt.Errorf("write csv row for order %s: %w", o.OrderNumber(), err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ImportOrders parses raw CSV text into rows and validates every row before
// returning. Parse failures (malformed CSV, missing header) are returned as
// an error; per-field validation failures land in the result's Errors with
// the zero-based row index, and never stop later rows from being evaluated.
func (t Transcoder) ImportOrders(content []byte) (ImportResult, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return ImportResult{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return ImportResult{}, errs.NewValueIsRequiredError("csv header")
	}

	index, err := headerIndex(records[0])
	if err != nil {
		return ImportResult{}, err
	}

	rows := make([]services.ImportedOrderRow, 0, len(records)-1)
	for _, record := range records[1:] {
		rows = append(rows, rowFromRecord(record, index))
	}

	validation := t.validator.ValidateImportedOrders(rows)

	failed := make(map[int]bool, len(validation.Errors))
	for _, e := range validation.Errors {
		if e.Index != nil {
			failed[*e.Index] = true
		}
	}

	result := ImportResult{Errors: validation.Errors}
	for i, row := range rows {
		if !failed[i] {
			result.Valid = append(result.Valid, row)
		}
	}
	return result, nil
}

// ConvertImportedRows maps validated rows into partial order patches for the
// mutation boundary. Fields the flat format cannot carry (full item list,
// address breakdown) stay absent in the patch rather than being guessed.
func (t Transcoder) ConvertImportedRows(rows []services.ImportedOrderRow) ([]order.Patch, error) {
	patches := make([]order.Patch, 0, len(rows))

	for i, row := range rows {
		patch := order.Patch{OrderNumber: strings.TrimSpace(row.OrderNumber)}

		if row.Status != "" {
			status, err := order.StatusFromString(row.Status)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			patch.Status = &status
		}
		if row.PaymentStatus != "" {
			paymentStatus, err := order.PaymentStatusFromString(row.PaymentStatus)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			patch.PaymentStatus = &paymentStatus
		}
		if row.ShippingMethod != "" {
			method, err := order.ShippingMethodFromString(row.ShippingMethod)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			patch.ShippingMethod = &method
		}

		if row.TrackingNumber != "" {
			tracking := row.TrackingNumber
			patch.TrackingNumber = &tracking
		}
		if row.Notes != "" {
			notes := row.Notes
			patch.Notes = &notes
		}

		if name := strings.TrimSpace(row.CustomerName); name != "" {
			patch.CustomerName = &name
		}
		if email := strings.TrimSpace(row.CustomerEmail); email != "" {
			patch.CustomerEmail = &email
		}
		if phone := strings.TrimSpace(row.CustomerPhone); phone != "" {
			patch.CustomerPhone = &phone
		}

		if row.TotalAmount != "" && row.Currency != "" {
			total, err := kernel.MoneyFromString(row.TotalAmount, row.Currency)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i, err)
			}
			patch.Total = &total
		}

		patches = append(patches, patch)
	}
	return patches, nil
}

func rowFromOrder(o *order.Order) []string {
	tracking := ""
	if t := o.Shipping().TrackingNumber(); t != nil {
		tracking = *t
	}

	return []string{
		o.OrderNumber(),
		o.CreatedAt().UTC().Format(time.RFC3339),
		o.Customer().Name(),
		o.Customer().Email(),
		o.Customer().Phone(),
		o.Status().String(),
		o.Payment().Status().String(),
		o.Total().AmountString(),
		o.Total().Currency(),
		o.Shipping().Method().String(),
		o.Shipping().Address().Flatten(),
		tracking,
		o.Notes(),
		o.Source(),
		strconv.Itoa(o.TotalItems()),
		summarizeItems(o.Items()),
	}
}

// summarizeItems renders the item list as `Name (qty); Name (qty)`.
func summarizeItems(items []order.Item) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%s (%d)", item.Name(), item.Quantity()))
	}
	return strings.Join(parts, "; ")
}

func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, required := range columns {
		if _, ok := index[required]; !ok {
			return nil, errs.NewValueIsRequiredError(fmt.Sprintf("csv column %q", required))
		}
	}
	return index, nil
}

func rowFromRecord(record []string, index map[string]int) services.ImportedOrderRow {
	cell := func(name string) string {
		i := index[name]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	return services.ImportedOrderRow{
		OrderNumber:     cell("order_number"),
		CreatedAt:       cell("created_at"),
		CustomerName:    cell("customer_name"),
		CustomerEmail:   cell("customer_email"),
		CustomerPhone:   cell("customer_phone"),
		Status:          cell("status"),
		PaymentStatus:   cell("payment_status"),
		TotalAmount:     cell("total_amount"),
		Currency:        cell("currency"),
		ShippingMethod:  cell("shipping_method"),
		ShippingAddress: cell("shipping_address"),
		TrackingNumber:  cell("tracking_number"),
		Notes:           cell("notes"),
		Source:          cell("source"),
		ItemCount:       cell("item_count"),
		Products:        cell("products"),
	}
}
