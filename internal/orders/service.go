package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/voltmart-backend/pkg/db"
	"github.com/angelmondragon/voltmart-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/voltmart-backend/pkg/errors"
	"github.com/angelmondragon/voltmart-backend/pkg/logger"
	"github.com/angelmondragon/voltmart-backend/pkg/pagination"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type stockRestorer interface {
	IncrementStockWithTx(tx *gorm.DB, offerID int64, qty int) error
}

// Service exposes order lookups for customers and lifecycle management for admins.
type Service interface {
	GetByNumber(ctx context.Context, number string) (*OrderDTO, error)
	Get(ctx context.Context, id int64) (*OrderDTO, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error)
	UpdateStatus(ctx context.Context, id int64, status enums.OrderStatus) (*OrderDTO, error)
}

type service struct {
	repo  Repository
	tx    txRunner
	stock stockRestorer
	logg  *logger.Logger
	now   func() time.Time
}

// NewService builds the order service.
func NewService(repo Repository, tx txRunner, stock stockRestorer, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if stock == nil {
		return nil, fmt.Errorf("stock restorer required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, tx: tx, stock: stock, logg: logg, now: time.Now}, nil
}

func (s *service) GetByNumber(ctx context.Context, number string) (*OrderDTO, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}
	order, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		return nil, mapLoadErr(err)
	}
	return FromModel(order), nil
}

func (s *service) Get(ctx context.Context, id int64) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLoadErr(err)
	}
	return FromModel(order), nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error) {
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid status %q", *filters.Status)
	}
	if _, err := pagination.ParseCursor(params.Cursor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

// UpdateStatus moves an order along its lifecycle. Canceling returns every
// line item's quantity to its offer's stock in the same transaction.
func (s *service) UpdateStatus(ctx context.Context, id int64, status enums.OrderStatus) (*OrderDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid status %q", status)
	}

	var from enums.OrderStatus
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		order, err := txRepo.FindForUpdate(ctx, id)
		if err != nil {
			return mapLoadErr(err)
		}
		from = order.Status
		if !order.Status.CanTransitionTo(status) {
			return pkgerrors.Newf(pkgerrors.CodeStateConflict, "cannot move order from %s to %s", order.Status, status).
				WithDetails(map[string]any{"from": order.Status, "to": status})
		}

		now := s.now().UTC()
		updates := map[string]any{"status": status}
		switch status {
		case enums.OrderStatusCanceled:
			updates["canceled_at"] = now
			for _, item := range order.LineItems {
				if err := s.stock.IncrementStockWithTx(tx, item.OfferID, item.Quantity); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restock offer")
				}
			}
		case enums.OrderStatusDelivered:
			updates["delivered_at"] = now
		}

		if err := txRepo.UpdateStatus(ctx, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{"order_id": id, "from": string(from), "to": string(status)})
	s.logg.Info(logCtx, "order.status_changed")

	return s.Get(ctx, id)
}

func mapLoadErr(err error) error {
	if pkgerrors.As(err) != nil {
		return err
	}
	if db.IsNotFound(err) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
}
