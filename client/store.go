package client

// Store is an explicit client-side mirror of the caller's favorites and
// cart, keyed by product name. It is a cache of server state: refreshed
// wholesale on login and mutated in lockstep with each confirmed server
// response. It is never the source of truth.
type Store struct {
	Favorites map[string]bool // Product name -> favorited
	Cart      map[string]int  // Product name -> quantity
}

// NewStore returns an empty mirror
func NewStore() *Store {
	return &Store{
		Favorites: make(map[string]bool), // Empty favorites mirror
		Cart:      make(map[string]int),  // Empty cart mirror
	}
}

// Reset drops all mirrored state, used on logout
func (s *Store) Reset() {
	s.Favorites = make(map[string]bool)
	s.Cart = make(map[string]int)
}

// setFavorite records the server-confirmed favorite state of a product
func (s *Store) setFavorite(name string, isFavorite bool) {
	if isFavorite {
		s.Favorites[name] = true
		return
	}
	delete(s.Favorites, name)
}

// setCartQuantity records the server-confirmed quantity of a cart line
func (s *Store) setCartQuantity(name string, quantity int) {
	if quantity <= 0 {
		delete(s.Cart, name) // No zero-quantity entries
		return
	}
	s.Cart[name] = quantity
}
