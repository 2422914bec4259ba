package model

// Category groups dishes on the menu. Categories are managed out of band
// (see flavorctl); the web admin only reads them.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategoryFields is a category without its identifier.
type CategoryFields struct {
	Name string `json:"name" yaml:"name"`
}

func CategoryFromDocument(id string, data map[string]any) Category {
	return Category{ID: id, Name: stringField(data, "name")}
}

func (f CategoryFields) Document() map[string]any {
	return map[string]any{"name": f.Name}
}

func (f CategoryFields) WithID(id string) Category {
	return Category{ID: id, Name: f.Name}
}
