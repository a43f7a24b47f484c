package models

// Calendar groups events for display. Order drives the UI sort.
type Calendar struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Color  string `json:"color"`
	Active bool   `json:"active"`
	Order  int    `json:"order"`
}

func (c Calendar) Attributes() map[string]any {
	return map[string]any{
		"id":     c.ID,
		"text":   c.Text,
		"color":  c.Color,
		"active": c.Active,
		"order":  c.Order,
	}
}

// Unit and Section are read-only lookup tables for the evolved scheduler
// views; they have no mutation endpoints.
type Unit struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Order int    `json:"order"`
}

func (u Unit) Attributes() map[string]any {
	return map[string]any{
		"id":    u.ID,
		"text":  u.Text,
		"order": u.Order,
	}
}

type Section struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

func (s Section) Attributes() map[string]any {
	return map[string]any{
		"id":   s.ID,
		"text": s.Text,
	}
}
