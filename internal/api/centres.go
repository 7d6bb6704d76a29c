package api

import (
	"context"
	"strconv"
)

const pathInspectionCentre = "/admin/inspection-centre"

type InspectionCentre struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	City     string `json:"city"`
	CityID   int    `json:"cityId"`
	Capacity int    `json:"capacity"`
	Active   bool   `json:"active"`
}

// CentreUpdate carries the editable fields of an inspection centre. Zero
// values are sent as-is; the edit screen always submits the full form.
type CentreUpdate struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	CityID   int    `json:"cityId"`
	Capacity int    `json:"capacity"`
	Active   bool   `json:"active"`
}

func (c *Client) ListCentres(ctx context.Context) ([]InspectionCentre, error) {
	var out dataEnvelope[[]InspectionCentre]
	_, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(pathInspectionCentre)
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) UpdateCentre(ctx context.Context, id string, in CentreUpdate) (InspectionCentre, error) {
	var out dataEnvelope[InspectionCentre]
	_, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&out).
		Put(pathInspectionCentre + "/" + id)
	if err != nil {
		return InspectionCentre{}, err
	}
	return out.Data, nil
}

type CitySuggestion struct {
	CityID int    `json:"cityId"`
	Name   string `json:"name"`
	State  string `json:"state,omitempty"`
}

type CitySuggestionQuery struct {
	Q      string
	Page   int
	Limit  int
	CityID int
}

func (c *Client) CitySuggestions(ctx context.Context, q CitySuggestionQuery) ([]CitySuggestion, error) {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("q", q.Q)
	if q.Page > 0 {
		req.SetQueryParam("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(q.Limit))
	}
	if q.CityID > 0 {
		req.SetQueryParam("cityId", strconv.Itoa(q.CityID))
	}

	var out dataEnvelope[[]CitySuggestion]
	_, err := req.SetResult(&out).Get(pathInspectionCentre + "/city-suggestions")
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}
