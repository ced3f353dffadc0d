package cart

// Service orchestrates cart mutations. Every operation loads the snapshot,
// applies one transition, recomputes the total from scratch and persists
// the result.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(userID int) (Cart, error) {
	if userID <= 0 {
		return Cart{}, ErrNotFound
	}
	return s.repo.Get(userID)
}

// AddItem merges the item onto an existing line with the same product+size
// key (summing quantities, keeping the existing price snapshot so a
// mid-session price change cannot drift an existing line) or appends a new
// line. Quantity defaults to 1.
func (s *Service) AddItem(userID int, item LineItem) (Cart, error) {
	if userID <= 0 {
		return Cart{}, ErrNotFound
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}
	item.LineID = LineKey(item.ProductID, item.Variant.Size)

	c, err := s.repo.Get(userID)
	if err != nil {
		return Cart{}, err
	}

	merged := false
	for i := range c.Items {
		if c.Items[i].LineID == item.LineID {
			c.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		c.Items = append(c.Items, item)
	}

	c.recomputeTotal()
	if err := s.repo.Save(userID, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// RemoveItem drops the line with the given id. Removing a nonexistent line
// is a no-op, not an error.
func (s *Service) RemoveItem(userID int, lineID string) (Cart, error) {
	if userID <= 0 {
		return Cart{}, ErrNotFound
	}
	c, err := s.repo.Get(userID)
	if err != nil {
		return Cart{}, err
	}

	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.LineID != lineID {
			kept = append(kept, item)
		}
	}
	c.Items = kept

	c.recomputeTotal()
	if err := s.repo.Save(userID, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// UpdateQuantity overwrites a line's quantity; zero or negative behaves as
// removal.
func (s *Service) UpdateQuantity(userID int, lineID string, quantity int) (Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(userID, lineID)
	}
	if userID <= 0 {
		return Cart{}, ErrNotFound
	}
	c, err := s.repo.Get(userID)
	if err != nil {
		return Cart{}, err
	}

	for i := range c.Items {
		if c.Items[i].LineID == lineID {
			c.Items[i].Quantity = quantity
			break
		}
	}

	c.recomputeTotal()
	if err := s.repo.Save(userID, c); err != nil {
		return Cart{}, err
	}
	return c, nil
}

// Clear empties the cart.
func (s *Service) Clear(userID int) error {
	if userID <= 0 {
		return ErrNotFound
	}
	return s.repo.Clear(userID)
}
