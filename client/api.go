package client

import (
	"context"  // Request cancellation
	"fmt"      // Path formatting
	"net/http" // Method constants
	"net/url"  // Path escaping
)

// Register creates an account and mirrors the auto-login session
func (c *Client) Register(ctx context.Context, email, password, firstName, lastName string) (*User, error) {
	body := map[string]string{
		"email":     email,     // Email
		"password":  password,  // Plaintext, sent once over the transport
		"firstName": firstName, // First name
		"lastName":  lastName,  // Last name
	}
	var resp struct {
		User User `json:"user"` // Created account
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &resp); err != nil {
		return nil, err
	}
	// A fresh session means the old token is gone
	c.csrfToken = ""
	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login authenticates and refreshes the state mirror wholesale
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		User User `json:"user"` // Authenticated account
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &resp); err != nil {
		return nil, err
	}
	// A fresh session means the old token is gone
	c.csrfToken = ""
	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout destroys the session and drops all local state
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.csrfToken = "" // Token died with the session
	c.store.Reset()  // Mirror is meaningless without a session
	return nil
}

// Verify returns the account bound to the current session
func (c *Client) Verify(ctx context.Context) (*User, error) {
	var resp struct {
		User User `json:"user"` // Current account
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/verify", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Products lists the public catalog
func (c *Client) Products(ctx context.Context) ([]Product, error) {
	var resp struct {
		Products []Product `json:"products"` // Catalog entries
	}
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

// Refresh reloads the favorites and cart mirrors wholesale from the server
func (c *Client) Refresh(ctx context.Context) error {
	favorites, err := c.Favorites(ctx)
	if err != nil {
		return err
	}
	cart, err := c.Cart(ctx)
	if err != nil {
		return err
	}
	c.store.Reset() // Replace, never merge
	for _, f := range favorites {
		c.store.Favorites[f.Product.Name] = true
	}
	for _, line := range cart {
		c.store.Cart[line.Product.Name] = line.Quantity
	}
	return nil
}

// Favorites lists the caller's favorited products
func (c *Client) Favorites(ctx context.Context) ([]Favorite, error) {
	var resp struct {
		Favorites []Favorite `json:"favorites"` // Favorite rows with products
	}
	if err := c.do(ctx, http.MethodGet, "/api/users/favorites", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Favorites, nil
}

// ToggleFavorite flips the favorite state of a product and syncs the mirror
func (c *Client) ToggleFavorite(ctx context.Context, productName string) (bool, error) {
	var resp struct {
		IsFavorite bool `json:"isFavorite"` // Resulting state
	}
	path := "/api/users/favorites/" + url.PathEscape(productName)
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return false, err
	}
	c.store.setFavorite(productName, resp.IsFavorite) // Lockstep mirror update
	return resp.IsFavorite, nil
}

// Cart lists the caller's cart lines
func (c *Client) Cart(ctx context.Context) ([]CartLine, error) {
	var resp struct {
		Cart []CartLine `json:"cart"` // Cart rows with products
	}
	if err := c.do(ctx, http.MethodGet, "/api/users/cart", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Cart, nil
}

// AddToCart adds one unit of a product and syncs the mirror
func (c *Client) AddToCart(ctx context.Context, productName string) (int, error) {
	var resp struct {
		Quantity int `json:"quantity"` // Resulting line quantity
	}
	path := "/api/users/cart/" + url.PathEscape(productName)
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return 0, err
	}
	c.store.setCartQuantity(productName, resp.Quantity) // Lockstep mirror update
	return resp.Quantity, nil
}

// RemoveFromCart deletes the whole cart line and syncs the mirror
func (c *Client) RemoveFromCart(ctx context.Context, productName string) error {
	path := "/api/users/cart/" + url.PathEscape(productName)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	c.store.setCartQuantity(productName, 0) // Line is gone
	return nil
}

// AdminUsers lists every account, administrator role required
func (c *Client) AdminUsers(ctx context.Context) ([]User, error) {
	var resp struct {
		Users []User `json:"users"` // All accounts
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}

// AdminStats returns the dashboard counters
func (c *Client) AdminStats(ctx context.Context) (*Stats, error) {
	var resp struct {
		Stats Stats `json:"stats"` // Dashboard counters
	}
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Stats, nil
}

// AdminUpdateUser changes another account's role and/or active flag
func (c *Client) AdminUpdateUser(ctx context.Context, userID uint, update UserUpdate) (*User, error) {
	var resp struct {
		User User `json:"user"` // Updated account
	}
	path := fmt.Sprintf("/api/admin/users/%d", userID)
	if err := c.do(ctx, http.MethodPut, path, update, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// AdminDeleteUser removes another account
func (c *Client) AdminDeleteUser(ctx context.Context, userID uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", userID), nil, nil)
}

// AdminAddProduct inserts a catalog entry
func (c *Client) AdminAddProduct(ctx context.Context, p NewProduct) (*Product, error) {
	var resp struct {
		Product Product `json:"product"` // Created entry
	}
	if err := c.do(ctx, http.MethodPost, "/api/admin/products", p, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}
