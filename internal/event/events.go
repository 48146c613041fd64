package event

const (
	TopicProductCreated = "product.created"
	TopicSaleCompleted  = "sale.completed"
)

type ProductCreatedEvent struct {
	ProductID int64   `json:"product_id"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	SellPrice float64 `json:"sell_price"`
	Stock     int     `json:"stock"`
}

type SaleCompletedEvent struct {
	SaleID     int64               `json:"sale_id"`
	GrandTotal float64             `json:"grand_total"`
	Items      []SaleCompletedItem `json:"items"`
}

type SaleCompletedItem struct {
	ProductID      int64  `json:"product_id"`
	ProductCode    string `json:"product_code"`
	Qty            int    `json:"qty"`
	RemainingStock int    `json:"remaining_stock"`
}
