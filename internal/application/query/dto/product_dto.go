// internal/application/query/dto/product_dto.go
package dto

import (
	"time"

	"github.com/apaluca/ReactRetail/internal/domain/common"
	productdom "github.com/apaluca/ReactRetail/internal/domain/product"
	reviewdom "github.com/apaluca/ReactRetail/internal/domain/review"
)

type ProductDTO struct {
	ID          string   `json:"_id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	Images      []string `json:"images"`
}

type ProductPageDTO struct {
	Products   []ProductDTO `json:"products"`
	Page       int          `json:"page"`
	PerPage    int          `json:"perPage"`
	TotalCount int          `json:"totalCount"`
	TotalPages int          `json:"totalPages"`
}

type ReviewDTO struct {
	ID        string `json:"_id"`
	Product   string `json:"product"`
	User      string `json:"user"`
	UserName  string `json:"userName"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"createdAt"`
}

type ProductReviewsDTO struct {
	Reviews       []ReviewDTO `json:"reviews"`
	Count         int         `json:"count"`
	AverageRating float64     `json:"averageRating"`
}

func ToProductDTO(p productdom.Product) ProductDTO {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductDTO{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.Float64(),
		Stock:       p.Stock,
		Category:    p.Category,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Images:      images,
	}
}

func ToProductPageDTO(res common.PageResult[productdom.Product]) ProductPageDTO {
	out := ProductPageDTO{
		Products:   make([]ProductDTO, 0, len(res.Items)),
		Page:       res.Page,
		PerPage:    res.PerPage,
		TotalCount: res.TotalCount,
		TotalPages: res.TotalPages,
	}
	for _, p := range res.Items {
		out.Products = append(out.Products, ToProductDTO(p))
	}
	return out
}

func ToReviewDTO(r reviewdom.Review) ReviewDTO {
	return ReviewDTO{
		ID:        r.ID,
		Product:   r.ProductID,
		User:      r.UserID,
		UserName:  r.UserName,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func ToProductReviewsDTO(reviews []reviewdom.Review, summary reviewdom.Summary) ProductReviewsDTO {
	out := ProductReviewsDTO{
		Reviews:       make([]ReviewDTO, 0, len(reviews)),
		Count:         summary.Count,
		AverageRating: summary.Average,
	}
	for _, r := range reviews {
		out.Reviews = append(out.Reviews, ToReviewDTO(r))
	}
	return out
}
