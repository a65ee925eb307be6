package dto

import (
	"strings"
	"time"

	"github.com/legit-games/catalog-service/models"
)

const dateLayout = "2006-01-02"

// Date is a calendar date serialized as "2006-01-02".
type Date struct{ time.Time }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ClientRequest is the body of POST and PUT /clients.
type ClientRequest struct {
	Name      string  `json:"name" binding:"required,max=120"`
	CPF       string  `json:"cpf" binding:"required,numeric,len=11"`
	Income    float64 `json:"income" binding:"gte=0"`
	BirthDate Date    `json:"birthDate" binding:"pastorpresent"`
	Children  int     `json:"children" binding:"gte=0"`
}

func (r ClientRequest) ToModel() *models.Client {
	return &models.Client{
		Name:      strings.TrimSpace(r.Name),
		CPF:       r.CPF,
		Income:    r.Income,
		BirthDate: r.BirthDate.Time,
		Children:  r.Children,
	}
}

// ClientResponse represents a client in API responses.
type ClientResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	CPF       string  `json:"cpf"`
	Income    float64 `json:"income"`
	BirthDate Date    `json:"birthDate"`
	Children  int     `json:"children"`
}

// FromClient converts a models.Client to ClientResponse.
func FromClient(c models.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		CPF:       c.CPF,
		Income:    c.Income,
		BirthDate: Date{c.BirthDate},
		Children:  c.Children,
	}
}
