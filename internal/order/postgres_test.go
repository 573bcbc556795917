package order

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhinay142/mom-made-goodies-house/internal/catalog"
)

const (
	insertOrderSQL = `INSERT INTO orders (id, customer_id, payment_mode, total_amount, created_at)
         VALUES ($1, $2, $3, $4, $5)`
	insertItemSQL = `INSERT INTO order_items (id, order_id, position, product_id, name, size, quantity, unit_price)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	selectOrderSQL = `SELECT id, customer_id, payment_mode, total_amount, created_at
         FROM orders WHERE id = $1`
	selectItemsSQL = `SELECT product_id, name, size, quantity, unit_price
         FROM order_items WHERE order_id = $1 ORDER BY position`
)

func sampleOrder(now time.Time) *Order {
	return &Order{
		ID:          "order-123",
		CustomerID:  "CUST-ABCDEF12",
		PaymentMode: PaymentCOD,
		Total:       decimal.NewFromInt(580),
		CreatedAt:   now,
		Items: []Line{
			{ProductID: "basmati-rice", Name: "Basmati Rice", Size: catalog.Size1kg, Quantity: 2, UnitPrice: decimal.NewFromInt(250)},
			{ProductID: "turmeric-powder", Name: "Turmeric Powder", Size: catalog.Size250g, Quantity: 1, UnitPrice: decimal.NewFromInt(80)},
		},
	}
}

func TestPostgresCreate_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	o := sampleOrder(time.Now())

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertOrderSQL)).
		WithArgs(o.ID, o.CustomerID, "cod", "580", o.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertItemSQL)).
		WithArgs(sqlmock.AnyArg(), o.ID, 0, "basmati-rice", "Basmati Rice", "1kg", 2, "250").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertItemSQL)).
		WithArgs(sqlmock.AnyArg(), o.ID, 1, "turmeric-powder", "Turmeric Powder", "250g", 1, "80").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), o))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreate_ItemInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	o := sampleOrder(time.Now())
	o.Items = o.Items[:1]

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(insertOrderSQL)).
		WithArgs(o.ID, o.CustomerID, "cod", "580", o.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta(insertItemSQL)).
		WillReturnError(errors.New("item insert failed"))
	mock.ExpectRollback()

	err = repo.Create(context.Background(), o)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert order_item")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(selectOrderSQL)).
		WithArgs("order-123").
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "payment_mode", "total_amount", "created_at"}).
			AddRow("order-123", "CUST-ABCDEF12", "online", "580.00", now))
	mock.ExpectQuery(regexp.QuoteMeta(selectItemsSQL)).
		WithArgs("order-123").
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "name", "size", "quantity", "unit_price"}).
			AddRow("basmati-rice", "Basmati Rice", "1kg", 2, "250.00").
			AddRow("turmeric-powder", "Turmeric Powder", "250g", 1, "80.00"))

	o, err := repo.GetByID(context.Background(), "order-123")
	require.NoError(t, err)
	assert.Equal(t, PaymentOnline, o.PaymentMode)
	assert.True(t, o.Total.Equal(decimal.NewFromInt(580)))
	require.Len(t, o.Items, 2)
	assert.Equal(t, catalog.Size1kg, o.Items[0].Size)
	assert.True(t, o.Items[1].UnitPrice.Equal(decimal.NewFromInt(80)))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(selectOrderSQL)).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	o, err := repo.GetByID(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
	require.Nil(t, o)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresList_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostgresRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, customer_id, payment_mode, total_amount, created_at
         FROM orders ORDER BY created_at, id`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "customer_id", "payment_mode", "total_amount", "created_at"}))

	orders, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
	require.NoError(t, mock.ExpectationsWereMet())
}
