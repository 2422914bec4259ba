package model

import "strings"

// Dish is a menu item. Price is in the smallest currency unit (VND has no
// minor unit, so it is whole dong). Categories holds Category identifiers;
// they are expected but not guaranteed to exist.
type Dish struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Price      int64    `json:"price"`
	Categories []string `json:"categories"`
	Image      string   `json:"image"`
}

// DishFields is a dish without its identifier, as submitted for creation.
type DishFields struct {
	Name       string   `json:"name"`
	Price      int64    `json:"price"`
	Categories []string `json:"categories"`
	Image      string   `json:"image"`
}

// DishPatch lists the fields of a partial update. Nil means untouched.
type DishPatch struct {
	Name       *string   `json:"name,omitempty"`
	Price      *int64    `json:"price,omitempty"`
	Categories *[]string `json:"categories,omitempty"`
	Image      *string   `json:"image,omitempty"`
}

// DishFromDocument decodes a stored dish. Documents written before dishes
// could belong to several categories carry a single "category" string; it
// is read as a one element list.
func DishFromDocument(id string, data map[string]any) Dish {
	cats := stringsField(data, "categories")
	if len(cats) == 0 {
		if legacy := stringField(data, "category"); legacy != "" {
			cats = []string{legacy}
		}
	}
	return Dish{
		ID:         id,
		Name:       stringField(data, "name"),
		Price:      intField(data, "price"),
		Categories: cats,
		Image:      stringField(data, "image"),
	}
}

// Document returns the stored representation of the fields.
func (f DishFields) Document() map[string]any {
	cats := f.Categories
	if cats == nil {
		cats = []string{}
	}
	return map[string]any{
		"name":       f.Name,
		"price":      f.Price,
		"categories": cats,
		"image":      f.Image,
	}
}

// WithID builds the full record once the store has assigned an identifier.
func (f DishFields) WithID(id string) Dish {
	cats := append([]string{}, f.Categories...)
	return Dish{ID: id, Name: f.Name, Price: f.Price, Categories: cats, Image: f.Image}
}

// Empty reports whether the patch sets nothing.
func (p DishPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Categories == nil && p.Image == nil
}

// Document returns only the fields the patch sets.
func (p DishPatch) Document() map[string]any {
	out := map[string]any{}
	if p.Name != nil {
		out["name"] = *p.Name
	}
	if p.Price != nil {
		out["price"] = *p.Price
	}
	if p.Categories != nil {
		cats := *p.Categories
		if cats == nil {
			cats = []string{}
		}
		out["categories"] = cats
	}
	if p.Image != nil {
		out["image"] = *p.Image
	}
	return out
}

// Apply shallow-merges the patch over the dish.
func (d Dish) Apply(p DishPatch) Dish {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Price != nil {
		d.Price = *p.Price
	}
	if p.Categories != nil {
		d.Categories = append([]string{}, (*p.Categories)...)
	}
	if p.Image != nil {
		d.Image = *p.Image
	}
	return d
}

// InCategory reports whether the dish is listed under the category id.
func (d Dish) InCategory(id string) bool {
	for _, c := range d.Categories {
		if c == id {
			return true
		}
	}
	return false
}

// DishFilter narrows the public menu and the admin dish table.
type DishFilter struct {
	Query    string
	Category string
}

// Match reports whether the dish passes the filter. Query matches the name
// case-insensitively.
func (f DishFilter) Match(d Dish) bool {
	if f.Category != "" && !d.InCategory(f.Category) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	return q == "" || strings.Contains(strings.ToLower(d.Name), q)
}

// FilterDishes returns the dishes passing f, keeping their order.
func FilterDishes(items []Dish, f DishFilter) []Dish {
	out := make([]Dish, 0, len(items))
	for _, d := range items {
		if f.Match(d) {
			out = append(out, d)
		}
	}
	return out
}
