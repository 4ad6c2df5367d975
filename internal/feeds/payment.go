package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Stripe payment links need a price object first, so creation is two
// calls: POST /prices with inline product data, then POST /payment_links
// referencing the price.

// CreatePaymentLink creates a Stripe payment link for a product. amount is
// "19.99" or "19.99 USD"; the currency defaults to USD.
func (c *Client) CreatePaymentLink(ctx context.Context, product, amount string) json.RawMessage {
	if c.stripeKey == "" {
		return failure("payment_link", "stripe", "stripe API key not configured")
	}

	cents, currency, err := parseAmount(amount)
	if err != nil {
		return failure("payment_link", "stripe", err.Error())
	}

	headers := map[string]string{"Authorization": "Bearer " + c.stripeKey}

	var price struct {
		ID string `json:"id"`
	}
	priceForm := url.Values{
		"unit_amount":        {strconv.FormatInt(cents, 10)},
		"currency":           {currency},
		"product_data[name]": {product},
	}
	if err := c.postForm(ctx, c.stripeURL+"/prices", headers, priceForm.Encode(), &price); err != nil {
		return failure("payment_link", "stripe", err.Error())
	}

	var link struct {
		URL    string `json:"url"`
		Active bool   `json:"active"`
	}
	linkForm := url.Values{
		"line_items[0][price]":    {price.ID},
		"line_items[0][quantity]": {"1"},
	}
	if err := c.postForm(ctx, c.stripeURL+"/payment_links", headers, linkForm.Encode(), &link); err != nil {
		return failure("payment_link", "stripe", err.Error())
	}

	status := "inactive"
	if link.Active {
		status = "active"
	}
	return structured("payment_link", "stripe", map[string]any{
		"product": product,
		"amount":  fmt.Sprintf("%.2f %s", float64(cents)/100, strings.ToUpper(currency)),
		"url":     link.URL,
		"status":  status,
	})
}

// parseAmount converts "19.99 USD" to integer cents and a lowercase
// currency code.
func parseAmount(amount string) (int64, string, error) {
	fields := strings.Fields(strings.TrimSpace(amount))
	if len(fields) == 0 {
		return 0, "", fmt.Errorf("amount is required")
	}

	value, err := strconv.ParseFloat(strings.TrimPrefix(fields[0], "$"), 64)
	if err != nil || value <= 0 {
		return 0, "", fmt.Errorf("invalid amount: %s", amount)
	}

	currency := "usd"
	if len(fields) > 1 {
		currency = strings.ToLower(fields[1])
	}
	return int64(value*100 + 0.5), currency, nil
}
