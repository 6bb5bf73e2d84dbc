package http

import (
	"time"

	"pizzeria/internal/core/application/usecases/queries"
)

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CheckoutCustomerRequest identifies the ordering customer by phone.
type CheckoutCustomerRequest struct {
	Phone string `json:"phone"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CheckoutAddressRequest is the delivery destination of a checkout request.
type CheckoutAddressRequest struct {
	Street         string `json:"street"`
	PostalCode     string `json:"postalCode"`
	City           string `json:"city"`
	Label          string `json:"label"`
	AdditionalInfo string `json:"additionalInfo"`
}

// CheckoutLineRequest is one cart line. Prices are never accepted here.
type CheckoutLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	IsReward  bool   `json:"isReward"`
	IsFree    bool   `json:"isFree"`
	Notes     string `json:"notes"`
}

// CheckoutRequest is the POST /orders body.
type CheckoutRequest struct {
	Customer CheckoutCustomerRequest `json:"customer"`
	Mode     string                  `json:"mode"`
	Address  *CheckoutAddressRequest `json:"address"`
	Items    []CheckoutLineRequest   `json:"items"`
	Comment  string                  `json:"comment"`
}

// CheckoutResponse returns the identifier assigned to the new order plus
// the loyalty feedback of the purchase.
type CheckoutResponse struct {
	OrderID        string `json:"orderId"`
	Status         string `json:"status"`
	StampsEarned   int    `json:"stampsEarned,omitempty"`
	PointsDeducted int    `json:"pointsDeducted,omitempty"`
}

// AssignDriverRequest is the PATCH assign-driver body.
type AssignDriverRequest struct {
	DriverID string `json:"driverId"`
}

// UpdateStatusRequest is the PATCH status body.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// DriverActionRequest identifies the acting driver for start/complete.
type DriverActionRequest struct {
	DriverID string `json:"driverId"`
}

// OpenServiceResponse returns the identifier of the newly opened period.
type OpenServiceResponse struct {
	ServiceID string `json:"serviceId"`
}

// OrderTrackingResponse is the public GET /orders/:id body.
type OrderTrackingResponse struct {
	OrderID        string    `json:"orderId"`
	Status         string    `json:"status"`
	Mode           string    `json:"mode"`
	TotalAmount    float64   `json:"totalAmount"`
	CreatedAt      time.Time `json:"createdAt"`
	DeliveryStatus *string   `json:"deliveryStatus,omitempty"`
	MinutesEnRoute *int      `json:"minutesEnRoute,omitempty"`
}

// OrderItemResponse is one line of the staff order detail.
type OrderItemResponse struct {
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Notes     string  `json:"notes,omitempty"`
	Kind      string  `json:"kind"`
}

// AddressResponse is the destination block of the staff order detail.
type AddressResponse struct {
	Street         string `json:"street"`
	PostalCode     string `json:"postalCode"`
	City           string `json:"city"`
	Label          string `json:"label,omitempty"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
}

// DeliveryResponse is the delivery leg of the staff order detail.
type DeliveryResponse struct {
	DriverID    string     `json:"driverId"`
	Status      string     `json:"status"`
	AssignedAt  time.Time  `json:"assignedAt"`
	DepartedAt  *time.Time `json:"departedAt,omitempty"`
	DeliveredAt *time.Time `json:"deliveredAt,omitempty"`
}

// OrderDetailResponse is the staff GET /orders/:id/tracking body.
type OrderDetailResponse struct {
	OrderID       string              `json:"orderId"`
	Status        string              `json:"status"`
	Mode          string              `json:"mode"`
	CustomerPhone string              `json:"customerPhone"`
	CustomerName  string              `json:"customerName"`
	Address       *AddressResponse    `json:"address,omitempty"`
	Items         []OrderItemResponse `json:"items"`
	DeliveryFee   float64             `json:"deliveryFee"`
	TotalAmount   float64             `json:"totalAmount"`
	Comment       string              `json:"comment,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	Delivery      *DeliveryResponse   `json:"delivery,omitempty"`
}

// ServiceStatusResponse is the GET /admin/service/status body.
type ServiceStatusResponse struct {
	IsOpen       bool       `json:"isOpen"`
	ServiceID    string     `json:"serviceId,omitempty"`
	StartTime    *time.Time `json:"startTime,omitempty"`
	OrderCount   int        `json:"orderCount"`
	TotalRevenue float64    `json:"totalRevenue"`
}

// ServicePeriodResponse is one entry of the GET /admin/service/history body.
type ServicePeriodResponse struct {
	ServiceID     string    `json:"serviceId"`
	StartTime     time.Time `json:"startTime"`
	EndTime       time.Time `json:"endTime"`
	OrderCount    int       `json:"orderCount"`
	TotalRevenue  float64   `json:"totalRevenue"`
	AverageTicket float64   `json:"averageTicket"`
	TopItem       string    `json:"topItem,omitempty"`
}

func toOrderDetailResponse(detail queries.GetOrderDetailQueryResponse) OrderDetailResponse {
	response := OrderDetailResponse{
		OrderID:       detail.ID.String(),
		Status:        detail.Status,
		Mode:          detail.Mode,
		CustomerPhone: detail.CustomerPhone,
		CustomerName:  detail.CustomerName,
		DeliveryFee:   detail.DeliveryFee.Float64(),
		TotalAmount:   detail.TotalAmount.Float64(),
		Comment:       detail.Comment,
		CreatedAt:     detail.CreatedAt,
		Items:         make([]OrderItemResponse, 0, len(detail.Items)),
	}

	for _, item := range detail.Items {
		response.Items = append(response.Items, OrderItemResponse{
			Name:      item.Name,
			Category:  item.Category,
			UnitPrice: item.UnitPrice.Float64(),
			Quantity:  item.Quantity,
			Notes:     item.Notes,
			Kind:      item.Kind,
		})
	}

	if detail.Address != nil {
		response.Address = &AddressResponse{
			Street:         detail.Address.Street,
			PostalCode:     detail.Address.PostalCode,
			City:           detail.Address.City,
			Label:          detail.Address.Label,
			AdditionalInfo: detail.Address.AdditionalInfo,
		}
	}

	if detail.Delivery != nil {
		response.Delivery = &DeliveryResponse{
			DriverID:    detail.Delivery.DriverID.String(),
			Status:      detail.Delivery.Status,
			AssignedAt:  detail.Delivery.AssignedAt,
			DepartedAt:  detail.Delivery.DepartedAt,
			DeliveredAt: detail.Delivery.DeliveredAt,
		}
	}

	return response
}
