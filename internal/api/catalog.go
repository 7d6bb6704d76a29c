package api

import "context"

const (
	pathCars     = "/admin/cars"
	pathProducts = "/admin/products"
)

type Car struct {
	ID             string `json:"id"`
	Make           string `json:"make"`
	Model          string `json:"model"`
	Year           int    `json:"year"`
	RegistrationNo string `json:"registrationNo"`
	Status         string `json:"status"`
}

func (c *Client) ListCars(ctx context.Context) ([]Car, error) {
	var out dataEnvelope[[]Car]
	_, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(pathCars)
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) UpdateCar(ctx context.Context, id string, car Car) (Car, error) {
	var out dataEnvelope[Car]
	_, err := c.http.R().
		SetContext(ctx).
		SetBody(car).
		SetResult(&out).
		Put(pathCars + "/" + id)
	if err != nil {
		return Car{}, err
	}
	return out.Data, nil
}

func (c *Client) DeleteCar(ctx context.Context, id string) error {
	_, err := c.http.R().
		SetContext(ctx).
		Delete(pathCars + "/" + id)
	return err
}

type Product struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	Active bool    `json:"active"`
}

func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var out dataEnvelope[[]Product]
	_, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(pathProducts)
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) CreateProduct(ctx context.Context, p Product) (Product, error) {
	var out dataEnvelope[Product]
	_, err := c.http.R().
		SetContext(ctx).
		SetBody(p).
		SetResult(&out).
		Post(pathProducts)
	if err != nil {
		return Product{}, err
	}
	return out.Data, nil
}
