package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/fake-oleg29/train-schedule-cli/internal/domain"
)

// CreateTrainRequest is the POST /trains body.
type CreateTrainRequest struct {
	TrainNumber string `json:"trainNumber"`
	TotalSeats  int    `json:"totalSeats"`
}

// UpdateTrainRequest is the PATCH /trains/{id} body. Nil fields are left
// unchanged by the server.
type UpdateTrainRequest struct {
	TrainNumber *string `json:"trainNumber,omitempty"`
	TotalSeats  *int    `json:"totalSeats,omitempty"`
}

// ListTrains returns the full train inventory.
func (c *Client) ListTrains(ctx context.Context) ([]domain.Train, error) {
	var trains []domain.Train
	if err := c.do(ctx, http.MethodGet, "/trains", nil, nil, &trains); err != nil {
		return nil, err
	}
	return trains, nil
}

// CreateTrain registers a new train.
func (c *Client) CreateTrain(ctx context.Context, req CreateTrainRequest) (domain.Train, error) {
	var train domain.Train
	if err := c.do(ctx, http.MethodPost, "/trains", nil, req, &train); err != nil {
		return domain.Train{}, err
	}
	return train, nil
}

// UpdateTrain patches an existing train and returns the updated record.
func (c *Client) UpdateTrain(ctx context.Context, id uuid.UUID, req UpdateTrainRequest) (domain.Train, error) {
	var train domain.Train
	if err := c.do(ctx, http.MethodPatch, "/trains/"+id.String(), nil, req, &train); err != nil {
		return domain.Train{}, err
	}
	return train, nil
}

// DeleteTrain removes a train.
func (c *Client) DeleteTrain(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/trains/"+id.String(), nil, nil, nil)
}
