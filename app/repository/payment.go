package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vibast-solutions/ms-go-payment-notifier/app/entity"
)

var ErrPaymentAlreadyExists = errors.New("payment already exists")

const paymentColumns = `transaction_id, order_number, first_name, last_name, zip_code,
			encrypted_card_number, status, created_at`

type PaymentRepository struct {
	db DBTX
}

func NewPaymentRepository(db DBTX) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts the payment and assigns its TransactionID. A duplicate
// order number is reported as ErrPaymentAlreadyExists.
func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (
			order_number, first_name, last_name, zip_code, encrypted_card_number, status, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		payment.OrderNumber,
		payment.FirstName,
		payment.LastName,
		payment.ZipCode,
		payment.EncryptedCardNumber,
		payment.Status,
		payment.CreatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrPaymentAlreadyExists
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	payment.TransactionID = uint64(id)
	return nil
}

func (r *PaymentRepository) FindByTransactionID(ctx context.Context, id uint64) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE transaction_id = ?`
	return r.findOne(ctx, query, id)
}

func (r *PaymentRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE order_number = ? LIMIT 1`
	return r.findOne(ctx, query, orderNumber)
}

func (r *PaymentRepository) findOne(ctx context.Context, query string, args ...interface{}) (*entity.Payment, error) {
	payment := &entity.Payment{}
	if err := scanPayment(r.db.QueryRowContext(ctx, query, args...), payment); err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return payment, nil
}

func scanPayment(scan rowScanner, payment *entity.Payment) error {
	return scan.Scan(
		&payment.TransactionID,
		&payment.OrderNumber,
		&payment.FirstName,
		&payment.LastName,
		&payment.ZipCode,
		&payment.EncryptedCardNumber,
		&payment.Status,
		&payment.CreatedAt,
	)
}
