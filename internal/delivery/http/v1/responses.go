package v1

import (
	"time"

	"zeecrown-admin/internal/domain"
	"zeecrown-admin/internal/usecase"
)

// Response shapes carry money as fixed two-decimal strings.

type productDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	MRP         *string   `json:"mrp,omitempty"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

func newProductDTO(p *domain.Product) *productDTO {
	if p == nil {
		return nil
	}
	dto := &productDTO{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       money(p.Price),
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		CreatedAt:   p.CreatedAt,
	}
	if p.MRP != nil {
		mrp := money(*p.MRP)
		dto.MRP = &mrp
	}
	return dto
}

func newProductDTOs(products []domain.Product) []*productDTO {
	out := make([]*productDTO, 0, len(products))
	for i := range products {
		out = append(out, newProductDTO(&products[i]))
	}
	return out
}

type orderItemDTO struct {
	ID          string `json:"id"`
	OrderID     string `json:"orderId"`
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
}

type orderDTO struct {
	ID           string         `json:"id"`
	UserID       string         `json:"userId"`
	CustomerName string         `json:"customerName"`
	TotalPrice   string         `json:"totalPrice"`
	Status       string         `json:"status"`
	Items        []orderItemDTO `json:"items"`
	CreatedAt    time.Time      `json:"createdAt"`
}

func newOrderDTO(o *domain.Order) *orderDTO {
	if o == nil {
		return nil
	}
	items := make([]orderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDTO{
			ID:          it.ID,
			OrderID:     it.OrderID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       money(it.Price),
		})
	}
	return &orderDTO{
		ID:           o.ID,
		UserID:       o.UserID,
		CustomerName: o.CustomerName,
		TotalPrice:   money(o.TotalPrice),
		Status:       o.Status,
		Items:        items,
		CreatedAt:    o.CreatedAt,
	}
}

func newOrderDTOs(orders []domain.Order) []*orderDTO {
	out := make([]*orderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, newOrderDTO(&orders[i]))
	}
	return out
}

type customerDetailDTO struct {
	Profile   domain.Profile   `json:"profile"`
	Addresses []domain.Address `json:"addresses"`
	Orders    []*orderDTO      `json:"orders"`
}

func newCustomerDetailDTO(d *usecase.CustomerDetail) *customerDetailDTO {
	if d == nil {
		return nil
	}
	return &customerDetailDTO{
		Profile:   d.Profile,
		Addresses: d.Addresses,
		Orders:    newOrderDTOs(d.Orders),
	}
}
