// ABOUTME: Marketplace endpoint facade for digital products
// ABOUTME: Product listings are public, purchases go through payments

package api

import (
	"context"
	"fmt"
	"time"
)

// Product is a digital product listed in the marketplace.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	SellerID    int64     `json:"seller_id"`
	SellerName  string    `json:"seller_name,omitempty"`
	Category    string    `json:"category,omitempty"`
	DownloadURL string    `json:"download_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductInput carries the editable product fields.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
}

// Products lists marketplace products. Visible without authentication.
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.Get(ctx, "/marketplace/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Product fetches a single marketplace product.
func (c *Client) Product(ctx context.Context, id int64) (*Product, error) {
	var product Product
	if err := c.Get(ctx, fmt.Sprintf("/marketplace/products/%d", id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateProduct lists a new product for sale.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	var product Product
	if err := c.Post(ctx, "/marketplace/products", input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// MyProducts lists products the caller has listed for sale.
func (c *Client) MyProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.Get(ctx, "/marketplace/my-products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// MyPurchases lists products the caller has bought.
func (c *Client) MyPurchases(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.Get(ctx, "/marketplace/purchases", &products); err != nil {
		return nil, err
	}
	return products, nil
}
