package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/your-org/storefront-api/internal/config"
	"github.com/your-org/storefront-api/internal/pkg/apperrors"
)

// PaymentService simulates payment settlement against pending orders
type PaymentService struct {
	db     *gorm.DB
	config *config.Config
}

// NewPaymentService creates a new payment service
func NewPaymentService(db *gorm.DB, cfg *config.Config) *PaymentService {
	return &PaymentService{
		db:     db,
		config: cfg,
	}
}

// ProcessRequest carries a payment submission
type ProcessRequest struct {
	OrderNumber   string `json:"orderNumber" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required,oneof=card upi netbanking cod wallet"`
}

// ProcessResult summarizes a settled payment
type ProcessResult struct {
	OrderID       uint   `json:"orderId"`
	OrderNumber   string `json:"orderNumber"`
	TransactionID string `json:"transactionId"`
	Amount        int64  `json:"amount"`
	Status        Status `json:"status"`
}

// Process settles payment for a pending order: records a Payment row with a
// generated transaction id and moves the order to confirmed.
func (s *PaymentService) Process(userID uint, req *ProcessRequest) (*ProcessResult, error) {
	orderID, err := ParseOrderNumber(req.OrderNumber)
	if err != nil {
		return nil, apperrors.New(apperrors.CodeValidation, "Invalid order number")
	}

	var result *ProcessResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var placed Order
		err := tx.Where("id = ? AND user_id = ?", orderID, userID).First(&placed).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.New(apperrors.CodeNotFound, "Order not found")
			}
			return apperrors.FromStore(err, "Failed to load order")
		}
		if placed.Status != StatusPendingPayment {
			return apperrors.Newf(apperrors.CodeInvalidState, "Order in status %s cannot be paid", placed.Status)
		}

		now := time.Now()
		payment := Payment{
			OrderID:       placed.ID,
			TransactionID: newTransactionID(now),
			Amount:        placed.TotalAmount,
			Method:        req.PaymentMethod,
			Status:        PaymentSuccess,
			PaidAt:        now,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return apperrors.FromStore(err, "Failed to record payment")
		}
		if err := tx.Model(&placed).Update("status", StatusConfirmed).Error; err != nil {
			return apperrors.FromStore(err, "Failed to confirm order")
		}

		result = &ProcessResult{
			OrderID:       placed.ID,
			OrderNumber:   placed.OrderNumber(),
			TransactionID: payment.TransactionID,
			Amount:        payment.Amount,
			Status:        StatusConfirmed,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// newTransactionID builds a time-based id with a random suffix. Uniqueness is
// enforced by the payments.transaction_id index.
func newTransactionID(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:5]
	return fmt.Sprintf("TXN%d%s", now.UnixMilli(), suffix)
}
