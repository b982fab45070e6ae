package tabular_test

import (
	"strings"
	"testing"

	"storefront/internal/adapters/tabular"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustMoney(t *testing.T, amount string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(amount, "USD")
	require.NoError(t, err)
	return m
}

func fixtureOrder(t *testing.T) *order.Order {
	t.Helper()

	customer, err := order.NewCustomer("Ada Lovelace", "ada@example.com", "+1-555-0101", false)
	require.NoError(t, err)

	first, err := order.NewItem("prod-1", "Widget", 2, mustMoney(t, "19.99"))
	require.NoError(t, err)
	second, err := order.NewItem("prod-2", "Gadget", 1, mustMoney(t, "49.92"))
	require.NoError(t, err)

	payment, err := order.NewPayment(order.Card, order.PaymentCompleted, mustMoney(t, "97.09"), nil)
	require.NoError(t, err)

	tracking := "TRK-9001"
	shipping, err := order.NewShipping(order.Standard, order.Address{
		Line1: "12 Crunch St", City: "Austin", State: "TX", PostalCode: "78701", Country: "US",
	}, mustMoney(t, "0"), &tracking)
	require.NoError(t, err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(),
		"ORD-1042", "idem-1042",
		customer, []order.Item{first, second},
		mustMoney(t, "89.90"), mustMoney(t, "7.19"), mustMoney(t, "97.09"),
		payment, shipping,
		"web",
	)
	require.NoError(t, err)
	require.NoError(t, o.MarkPaid("txn-1", "system"))
	o.SetNotes("fragile")
	return o
}

func TestExportOrders(t *testing.T) {
	transcoder := tabular.NewTranscoder()

	t.Run("should write the fixed header for an empty set", func(t *testing.T) {
		out, err := transcoder.ExportOrders(nil)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(out)), "\n")
		require.Len(t, lines, 1)
		assert.Equal(t,
			"order_number,created_at,customer_name,customer_email,customer_phone,"+
				"status,payment_status,total_amount,currency,shipping_method,"+
				"shipping_address,tracking_number,notes,source,item_count,products",
			lines[0])
	})

	t.Run("should flatten one order per row", func(t *testing.T) {
		out, err := transcoder.ExportOrders([]*order.Order{fixtureOrder(t)})
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(out)), "\n")
		require.Len(t, lines, 2)

		row := lines[1]
		assert.Contains(t, row, "ORD-1042")
		assert.Contains(t, row, "ada@example.com")
		assert.Contains(t, row, "PAID")
		assert.Contains(t, row, "COMPLETED")
		assert.Contains(t, row, "97.09")
		assert.Contains(t, row, "USD")
		assert.Contains(t, row, "TRK-9001")
		assert.Contains(t, row, "Widget (2); Gadget (1)")
		assert.Contains(t, row, "12 Crunch St, Austin, TX, 78701, US")
	})
}

func TestImportOrders(t *testing.T) {
	transcoder := tabular.NewTranscoder()

	header := "order_number,created_at,customer_name,customer_email,customer_phone," +
		"status,payment_status,total_amount,currency,shipping_method," +
		"shipping_address,tracking_number,notes,source,item_count,products\n"

	t.Run("should parse and accept a valid row", func(t *testing.T) {
		content := header +
			"ORD-1,2026-08-01T10:00:00Z,Ada,ada@example.com,+1-555-0101," +
			"PAID,COMPLETED,97.09,USD,STANDARD," +
			"\"12 Crunch St, Austin\",TRK-1,fragile,web,3,Widget (2)\n"

		result, err := transcoder.ImportOrders([]byte(content))
		require.NoError(t, err)

		assert.True(t, result.IsValid())
		require.Len(t, result.Valid, 1)
		assert.Equal(t, "ORD-1", result.Valid[0].OrderNumber)
		assert.Equal(t, "12 Crunch St, Austin", result.Valid[0].ShippingAddress)
	})

	t.Run("should exclude rows with a bad email and report the index", func(t *testing.T) {
		content := header +
			"ORD-1,,Ada,ada@example.com,+1-555-0101,,,,,,,,,,,\n" +
			"ORD-2,,Bob,not-an-email,+1-555-0102,,,,,,,,,,,\n"

		result, err := transcoder.ImportOrders([]byte(content))
		require.NoError(t, err)

		assert.False(t, result.IsValid())
		require.Len(t, result.Valid, 1)
		assert.Equal(t, "ORD-1", result.Valid[0].OrderNumber)

		require.Len(t, result.Errors, 1)
		assert.Equal(t, "customer_email", result.Errors[0].Field)
		assert.Contains(t, result.Errors[0].Message, "Invalid email format")
		require.NotNil(t, result.Errors[0].Index)
		assert.Equal(t, 1, *result.Errors[0].Index)
	})

	t.Run("should reject a payload missing a required column", func(t *testing.T) {
		_, err := transcoder.ImportOrders([]byte("order_number,customer_name\nORD-1,Ada\n"))

		assert.Error(t, err)
	})

	t.Run("should reject empty content", func(t *testing.T) {
		_, err := transcoder.ImportOrders(nil)

		assert.Error(t, err)
	})

	t.Run("should accept reordered columns", func(t *testing.T) {
		reordered := "customer_email,order_number,created_at,customer_name,customer_phone," +
			"status,payment_status,total_amount,currency,shipping_method," +
			"shipping_address,tracking_number,notes,source,item_count,products\n" +
			"ada@example.com,ORD-5,,Ada,+1-555-0101,,,,,,,,,,,\n"

		result, err := transcoder.ImportOrders([]byte(reordered))
		require.NoError(t, err)

		assert.True(t, result.IsValid())
		require.Len(t, result.Valid, 1)
		assert.Equal(t, "ORD-5", result.Valid[0].OrderNumber)
		assert.Equal(t, "ada@example.com", result.Valid[0].CustomerEmail)
	})
}

func TestConvertImportedRows(t *testing.T) {
	transcoder := tabular.NewTranscoder()

	t.Run("should map present fields into a patch", func(t *testing.T) {
		rows, err := transcoder.ImportOrders([]byte(
			"order_number,created_at,customer_name,customer_email,customer_phone," +
				"status,payment_status,total_amount,currency,shipping_method," +
				"shipping_address,tracking_number,notes,source,item_count,products\n" +
				"ORD-7,,Ada,ada@example.com,+1-555-0101," +
				"SHIPPED,COMPLETED,50.00,USD,EXPRESS," +
				",TRK-7,bulk note,web,1,Widget (1)\n"))
		require.NoError(t, err)
		require.True(t, rows.IsValid())

		patches, err := transcoder.ConvertImportedRows(rows.Valid)
		require.NoError(t, err)
		require.Len(t, patches, 1)

		patch := patches[0]
		assert.Equal(t, "ORD-7", patch.OrderNumber)
		require.NotNil(t, patch.Status)
		assert.Equal(t, order.Shipped, *patch.Status)
		require.NotNil(t, patch.PaymentStatus)
		assert.Equal(t, order.PaymentCompleted, *patch.PaymentStatus)
		require.NotNil(t, patch.ShippingMethod)
		assert.Equal(t, order.Express, *patch.ShippingMethod)
		require.NotNil(t, patch.TrackingNumber)
		assert.Equal(t, "TRK-7", *patch.TrackingNumber)
		require.NotNil(t, patch.Notes)
		assert.Equal(t, "bulk note", *patch.Notes)
		require.NotNil(t, patch.Total)
		assert.Equal(t, "USD", patch.Total.Currency())
	})

	t.Run("should leave absent fields nil", func(t *testing.T) {
		patches, err := transcoder.ConvertImportedRows([]services.ImportedOrderRow{{
			OrderNumber:   "ORD-8",
			CustomerName:  "Ada",
			CustomerEmail: "ada@example.com",
			CustomerPhone: "+1-555-0101",
		}})
		require.NoError(t, err)
		require.Len(t, patches, 1)

		patch := patches[0]
		assert.Nil(t, patch.Status)
		assert.Nil(t, patch.PaymentStatus)
		assert.Nil(t, patch.ShippingMethod)
		assert.Nil(t, patch.TrackingNumber)
		assert.Nil(t, patch.Notes)
		assert.Nil(t, patch.Total)
	})

	t.Run("should fail on an unvalidated bogus enum", func(t *testing.T) {
		_, err := transcoder.ConvertImportedRows([]services.ImportedOrderRow{{
			OrderNumber: "ORD-9",
			Status:      "NOT_A_STATUS",
		}})

		assert.Error(t, err)
	})
}

func TestRoundTrip(t *testing.T) {
	transcoder := tabular.NewTranscoder()

	t.Run("should reproduce safe fields through export, import, and convert", func(t *testing.T) {
		original := fixtureOrder(t)

		exported, err := transcoder.ExportOrders([]*order.Order{original})
		require.NoError(t, err)

		imported, err := transcoder.ImportOrders(exported)
		require.NoError(t, err)
		require.True(t, imported.IsValid())
		require.Len(t, imported.Valid, 1)

		patches, err := transcoder.ConvertImportedRows(imported.Valid)
		require.NoError(t, err)
		require.Len(t, patches, 1)

		patch := patches[0]
		assert.Equal(t, original.OrderNumber(), patch.OrderNumber)
		require.NotNil(t, patch.CustomerEmail)
		assert.Equal(t, original.Customer().Email(), *patch.CustomerEmail)
		require.NotNil(t, patch.Status)
		assert.Equal(t, original.Status(), *patch.Status)
		require.NotNil(t, patch.PaymentStatus)
		assert.Equal(t, original.Payment().Status(), *patch.PaymentStatus)
		require.NotNil(t, patch.Total)
		assert.True(t, patch.Total.IsEqual(original.Total()))
		require.NotNil(t, patch.Notes)
		assert.Equal(t, original.Notes(), *patch.Notes)
	})
}
