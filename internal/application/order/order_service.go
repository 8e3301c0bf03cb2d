package order

import (
	"context"

	"github.com/eezystore/backend/internal/domain/order"
	"github.com/eezystore/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderService handles order lifecycle operations
type OrderService struct {
	orderRepo order.Repository
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo order.Repository) *OrderService {
	return &OrderService{orderRepo: orderRepo}
}

// GetByID retrieves one of the customer's orders
func (s *OrderService) GetByID(ctx context.Context, customerID, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByIDForCustomer(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// List retrieves the customer's orders, newest first
func (s *OrderService) List(ctx context.Context, customerID uuid.UUID, filter OrderListFilter) (*shared.Paginated[OrderListItemResponse], error) {
	f := toSharedFilter(filter)

	orders, err := s.orderRepo.FindAllForCustomer(ctx, customerID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.CountForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToOrderListItemResponses(orders), total, f.Page, f.PageSize)
	return &result, nil
}

// RateItem rates one item of the customer's delivered order. The write is
// conditioned on the item being unrated, so a racing duplicate loses.
func (s *OrderService) RateItem(ctx context.Context, customerID, orderID, itemID uuid.UUID, req RateItemRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByIDForCustomer(ctx, customerID, orderID)
	if err != nil {
		return nil, err
	}

	// Domain checks first: delivery gate, range, one-time rule
	if _, err := o.RateItem(itemID, req.Rating); err != nil {
		return nil, err
	}

	if err := s.orderRepo.RateItem(ctx, itemID, req.Rating); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// ==================== Admin operations ====================

// AdminGetByID retrieves any order by ID
func (s *OrderService) AdminGetByID(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// AdminList retrieves orders across all customers, optionally by status
func (s *OrderService) AdminList(ctx context.Context, filter OrderListFilter) (*shared.Paginated[OrderListItemResponse], error) {
	f := toSharedFilter(filter)

	orders, err := s.orderRepo.FindAll(ctx, filter.Status, f)
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter.Status)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToOrderListItemResponses(orders), total, f.Page, f.PageSize)
	return &result, nil
}

// AdminUpdateStatus advances an order's status. The write is keyed on the
// status the transition starts from, so two admins racing the same step
// cannot both win.
func (s *OrderService) AdminUpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := o.Status
	if req.ExpectedStatus != nil {
		if o.Status != *req.ExpectedStatus {
			return nil, shared.ErrConcurrencyConflict
		}
		from = *req.ExpectedStatus
	}

	// Validate the transition on the aggregate before touching the store
	if err := o.Transition(req.Status); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, from, req.Status); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

func toSharedFilter(filter OrderListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	return f
}
