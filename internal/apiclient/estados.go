package apiclient

import (
	"context"
	"strconv"
)

// Estado is one entry of the dynamic event-status lookup.
type Estado struct {
	ID     int    `json:"id"`
	Nombre string `json:"nombre"`
}

type estadoRequest struct {
	Nombre string `json:"nombre"`
}

func (c *Client) ListEstados(ctx context.Context) ([]Estado, error) {
	var estados []Estado
	if err := c.getJSON(ctx, "/evento-estado", &estados); err != nil {
		return nil, err
	}
	return estados, nil
}

func (c *Client) CreateEstado(ctx context.Context, nombre string) (*Estado, error) {
	var estado Estado
	if err := c.sendJSON(ctx, "POST", "/evento-estado", estadoRequest{Nombre: nombre}, &estado); err != nil {
		return nil, err
	}
	return &estado, nil
}

func (c *Client) UpdateEstado(ctx context.Context, id int, nombre string) (*Estado, error) {
	var estado Estado
	path := "/evento-estado/" + strconv.Itoa(id)
	if err := c.sendJSON(ctx, "PUT", path, estadoRequest{Nombre: nombre}, &estado); err != nil {
		return nil, err
	}
	return &estado, nil
}
