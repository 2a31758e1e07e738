package repositories

import (
	"errors"
	"time"

	"talento_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound       = errors.New("payment order not found")
	ErrTransactionNotFound = errors.New("payment transaction not found")
)

type PaymentRepository interface {
	CreateOrder(order *models.PaymentOrder) error
	FindOrderByOrderID(orderID string) (*models.PaymentOrder, error)
	MarkOrderStatus(orderID string, status models.PaymentStatus) error

	CreateTransaction(tx *models.PaymentTransaction) error
	FindTransactionByPaymentID(paymentID string) (*models.PaymentTransaction, error)
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) CreateOrder(order *models.PaymentOrder) error {
	return r.db.Create(order).Error
}

func (r *PaymentRepositoryImpl) FindOrderByOrderID(orderID string) (*models.PaymentOrder, error) {
	var order models.PaymentOrder
	err := r.db.First(&order, "order_id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *PaymentRepositoryImpl) MarkOrderStatus(orderID string, status models.PaymentStatus) error {
	return r.db.Model(&models.PaymentOrder{}).
		Where("order_id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		}).Error
}

func (r *PaymentRepositoryImpl) CreateTransaction(tx *models.PaymentTransaction) error {
	return r.db.Create(tx).Error
}

func (r *PaymentRepositoryImpl) FindTransactionByPaymentID(paymentID string) (*models.PaymentTransaction, error) {
	var tx models.PaymentTransaction
	err := r.db.First(&tx, "payment_id = ?", paymentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &tx, nil
}
