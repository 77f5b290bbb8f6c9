package orders

import (
	"context"
	"fmt"

	"github.com/angelmondragon/voltmart-backend/internal/repo"
	"github.com/angelmondragon/voltmart-backend/pkg/db/models"
	"github.com/angelmondragon/voltmart-backend/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	repo.Base
	tx *gorm.DB
}

// NewRepository binds a GORM DB to order operations.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: r.Base, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return r.Conn(ctx, r.tx)
}

func (r *repository) Create(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("order is required")
	}
	return r.conn(ctx).Create(order).Error
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	return r.findOne(r.conn(ctx).Where("id = ?", id))
}

func (r *repository) FindByNumber(ctx context.Context, number string) (*models.Order, error) {
	return r.findOne(r.conn(ctx).Where("order_number = ?", number))
}

// FindForUpdate loads an order and locks its row where the driver supports it.
func (r *repository) FindForUpdate(ctx context.Context, id int64) (*models.Order, error) {
	return r.findOne(r.conn(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id))
}

func (r *repository) findOne(q *gorm.DB) (*models.Order, error) {
	var order models.Order
	err := q.
		Preload("LineItems", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("StoreFees", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters ListFilters) (*OrderList, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	qb := r.conn(ctx).Model(&models.Order{})
	if filters.Status != nil {
		qb = qb.Where("status = ?", *filters.Status)
	}
	if cursor != nil {
		qb = qb.Where("id < ?", cursor.ID)
	}

	var rows []models.Order
	if err := qb.Order("id DESC").Limit(pagination.LimitWithBuffer(params.Limit)).Find(&rows).Error; err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{ID: rows[len(rows)-1].ID})
	}

	summaries := make([]OrderSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, OrderSummary{
			ID:            row.ID,
			OrderNumber:   row.OrderNumber,
			Status:        row.Status,
			CustomerName:  row.CustomerName,
			CustomerPhone: row.CustomerPhone,
			ItemCount:     row.ItemCount,
			Currency:      row.Currency,
			GrandTotal:    row.GrandTotal,
			PlacedAt:      row.PlacedAt,
		})
	}
	return &OrderList{Orders: summaries, NextCursor: nextCursor}, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	res := r.conn(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
