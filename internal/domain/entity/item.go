package entity

import "time"

// Item representa un artículo del catálogo vendible.
// ExternalArticleNumber es el número de artículo externo que llega como
// Product Code en el CSV del distribuidor. Los artículos creados al vuelo
// desde el centinela OTHER llevan ExternalArticleNumber = "OTHER" para que
// importaciones posteriores los reconozcan.
type Item struct {
	ID                    string
	CompanyID             string
	Code                  string // único por empresa
	Name                  string
	Description           string
	ExternalArticleNumber string
	ItemGroup             string
	StockUOM              string
	IsStockItem           bool
	IsSalesItem           bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
