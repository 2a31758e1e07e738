package repositories

import (
	"regexp"
	"testing"

	"talento_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)
	return db, mock
}

func TestFindOrderByOrderID(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "order_id", "amount", "currency", "receipt", "status"}).
		AddRow("ord-uuid", "user-1", "order_abc", int64(49900), "INR", "rcpt_1", "created")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payment_orders" WHERE order_id = $1`)).
		WithArgs("order_abc", 1).
		WillReturnRows(rows)

	order, err := repo.FindOrderByOrderID("order_abc")
	require.NoError(t, err)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, int64(49900), order.Amount)
	assert.Equal(t, models.PaymentStatus("created"), order.Status)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOrderByOrderID_NotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payment_orders" WHERE order_id = $1`)).
		WithArgs("order_missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindOrderByOrderID("order_missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkOrderStatus(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "payment_orders" SET`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.MarkOrderStatus("order_abc", models.PaymentStatusPaid)
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindTransactionByPaymentID_NotFound(t *testing.T) {
	t.Parallel()

	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "payment_transactions" WHERE payment_id = $1`)).
		WithArgs("pay_missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindTransactionByPaymentID("pay_missing")
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
