package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"paymint.backend/internal/domain/entities"
	domainerrors "paymint.backend/internal/domain/errors"
	"paymint.backend/pkg/utils"
)

func seedInvoiceOrder(t *testing.T, repo *OrderRepository, orderNo, owner string) *entities.Order {
	t.Helper()
	o := &entities.Order{
		OrderNo:  orderNo,
		Owner:    uuid.MustParse(owner),
		Type:     entities.OrderTypeInvoice,
		Status:   entities.OrderStatusPending,
		Total:    decimal.NewFromFloat(275.00),
		Currency: "USD",
		Invoice: &entities.InvoiceDetails{
			ClientName:  "Acme Inc",
			ClientEmail: null.StringFrom("billing@acme.test"),
			Items: []entities.Item{
				{Title: "Design work", Quantity: 5, Price: decimal.NewFromFloat(50)},
			},
			Subtotal:       decimal.NewFromFloat(250),
			TaxRate:        decimal.NewFromFloat(10),
			Tax:            decimal.NewFromFloat(25),
			Discount:       decimal.Zero,
			ExpirationDate: time.Now().Add(30 * 24 * time.Hour).UTC().Truncate(time.Second),
			IsVisible:      true,
		},
	}
	require.NoError(t, repo.Create(context.Background(), o))
	return o
}

func TestOrderRepository_CreateAndGetInvoice(t *testing.T) {
	db := newTestDB(t)
	createOrderTable(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	owner := utils.GenerateUUIDv7().String()
	o := seedInvoiceOrder(t, repo, "ORD-AB12CD34", owner)

	got, err := repo.GetByOrderNo(ctx, o.OrderNo)
	require.NoError(t, err)
	require.Equal(t, entities.OrderTypeInvoice, got.Type)
	require.NotNil(t, got.Invoice)
	require.Nil(t, got.Payroll)
	require.Equal(t, "Acme Inc", got.Invoice.ClientName)
	require.Len(t, got.Invoice.Items, 1)
	require.Equal(t, "Design work", got.Invoice.Items[0].Title)
	require.True(t, got.Invoice.Items[0].Price.Equal(decimal.NewFromFloat(50)))
	require.True(t, got.Total.Equal(decimal.NewFromFloat(275)))
	require.True(t, got.Invoice.IsVisible)
}

func TestOrderRepository_CreateAndGetPayroll(t *testing.T) {
	db := newTestDB(t)
	createOrderTable(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	o := &entities.Order{
		OrderNo:  "ORD-11223344",
		Owner:    utils.GenerateUUIDv7(),
		Type:     entities.OrderTypePayroll,
		Status:   entities.OrderStatusPending,
		Total:    decimal.NewFromFloat(2850),
		Currency: "USD",
		Payroll: &entities.PayrollDetails{
			PayrollType:  "salary",
			PaymentCycle: "monthly",
			Recipients: []entities.Recipient{
				{Wallet: "0x1111111111111111111111111111111111111111", Amount: decimal.NewFromFloat(1000)},
				{Wallet: "0x2222222222222222222222222222222222222222", Amount: decimal.NewFromFloat(2000), Deduction: decimal.NewFromFloat(150)},
			},
			GrossPay:    decimal.NewFromFloat(3000),
			NetPay:      decimal.NewFromFloat(2850),
			PaymentDate: time.Now().UTC().Truncate(time.Second),
		},
	}
	require.NoError(t, repo.Create(ctx, o))

	got, err := repo.GetByOrderNo(ctx, o.OrderNo)
	require.NoError(t, err)
	require.Equal(t, entities.OrderTypePayroll, got.Type)
	require.NotNil(t, got.Payroll)
	require.Nil(t, got.Invoice)
	require.Len(t, got.Payroll.Recipients, 2)
	require.True(t, got.Payroll.NetPay.Equal(decimal.NewFromFloat(2850)))
	require.True(t, got.Payroll.Recipients[1].Deduction.Equal(decimal.NewFromFloat(150)))
}

func TestOrderRepository_DuplicateOrderNo(t *testing.T) {
	db := newTestDB(t)
	createOrderTable(t, db)
	repo := NewOrderRepository(db)

	owner := utils.GenerateUUIDv7().String()
	seedInvoiceOrder(t, repo, "ORD-DUP00001", owner)

	dup := &entities.Order{
		OrderNo:  "ORD-DUP00001",
		Owner:    uuid.MustParse(owner),
		Type:     entities.OrderTypeInvoice,
		Status:   entities.OrderStatusPending,
		Total:    decimal.Zero,
		Currency: "USD",
		Invoice:  &entities.InvoiceDetails{ClientName: "Dup", ExpirationDate: time.Now()},
	}
	require.ErrorIs(t, repo.Create(context.Background(), dup), domainerrors.ErrAlreadyExists)
}

func TestOrderRepository_UpdateSerializesJSONColumns(t *testing.T) {
	db := newTestDB(t)
	createOrderTable(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	o := seedInvoiceOrder(t, repo, "ORD-55667788", utils.GenerateUUIDv7().String())

	items := []entities.Item{
		{Title: "Consulting", Quantity: 2, Price: decimal.NewFromFloat(120)},
		{Title: "Hosting", Quantity: 1, Price: decimal.NewFromFloat(30)},
	}
	amountPaid := decimal.NewFromFloat(100)
	payments := []entities.PaymentDetails{
		{PaymentNo: "PAY-00000001", AmountPaid: &amountPaid, Status: string(entities.PaymentStatusCompleted)},
	}
	err := repo.Update(ctx, o.OrderNo, map[string]interface{}{
		"items":    items,
		"payments": payments,
		"status":   string(entities.OrderStatusPaid),
		"notes":    "updated",
	})
	require.NoError(t, err)

	got, err := repo.GetByOrderNo(ctx, o.OrderNo)
	require.NoError(t, err)
	require.Equal(t, entities.OrderStatusPaid, got.Status)
	require.Equal(t, "updated", got.Notes.String)
	require.Len(t, got.Invoice.Items, 2)
	require.Equal(t, "Hosting", got.Invoice.Items[1].Title)
	require.Len(t, got.Payments, 1)
	require.Equal(t, "PAY-00000001", got.Payments[0].PaymentNo)

	err = repo.Update(ctx, "ORD-MISSING0", map[string]interface{}{"notes": "x"})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestOrderRepository_ListAndOwnerScoping(t *testing.T) {
	db := newTestDB(t)
	createOrderTable(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	ownerA := utils.GenerateUUIDv7().String()
	ownerB := utils.GenerateUUIDv7().String()
	seedInvoiceOrder(t, repo, "ORD-A0000001", ownerA)
	seedInvoiceOrder(t, repo, "ORD-A0000002", ownerA)
	seedInvoiceOrder(t, repo, "ORD-B0000001", ownerB)

	orders, total, err := repo.List(ctx, entities.OrderFilter{Owner: ownerA}, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, orders, 2)

	orders, total, err = repo.List(ctx, entities.OrderFilter{Type: string(entities.OrderTypePayroll)}, 10, 0)
	require.NoError(t, err)
	require.EqualValues(t, 0, total)
	require.Empty(t, orders)

	orderNos, err := repo.ListOrderNosByOwner(ctx, ownerA)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"ORD-A0000001", "ORD-A0000002"}, orderNos)

	orderNos, err = repo.ListOrderNosByOwner(ctx, utils.GenerateUUIDv7().String())
	require.NoError(t, err)
	require.Empty(t, orderNos)
}

func TestOrderRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	createOrderTable(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	o := seedInvoiceOrder(t, repo, "ORD-DEL00001", utils.GenerateUUIDv7().String())

	require.NoError(t, repo.Delete(ctx, o.OrderNo))
	_, err := repo.GetByOrderNo(ctx, o.OrderNo)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.Delete(ctx, o.OrderNo), domainerrors.ErrNotFound)
}

func TestOrderRepository_ExpireOrders(t *testing.T) {
	db := newTestDB(t)
	createOrderTable(t, db)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	owner := utils.GenerateUUIDv7().String()
	stale := seedInvoiceOrder(t, repo, "ORD-EXP00001", owner)
	fresh := seedInvoiceOrder(t, repo, "ORD-EXP00002", owner)

	// Push the first order's expiration into the past.
	mustExec(t, db, `UPDATE orders SET expiration_date = ? WHERE order_no = ?`,
		time.Now().Add(-time.Hour), stale.OrderNo)

	orderNos, err := repo.ListExpiredPending(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, []string{stale.OrderNo}, orderNos)

	require.NoError(t, repo.ExpireOrders(ctx, orderNos))
	require.NoError(t, repo.ExpireOrders(ctx, nil))

	got, err := repo.GetByOrderNo(ctx, stale.OrderNo)
	require.NoError(t, err)
	require.Equal(t, entities.OrderStatusExpired, got.Status)

	got, err = repo.GetByOrderNo(ctx, fresh.OrderNo)
	require.NoError(t, err)
	require.Equal(t, entities.OrderStatusPending, got.Status)

	// Expired orders drop out of the pending scan.
	orderNos, err = repo.ListExpiredPending(ctx, 100)
	require.NoError(t, err)
	require.Empty(t, orderNos)
}
