package api

import (
	"context"
	"strconv"

	"adminpro/console/internal/models"
)

const pathUserManagement = "/admin/user-management"

// CreateUserInput creates any console-managed person; the role is
// discriminated by RoleID in the payload (manager, inspector, staff).
type CreateUserInput struct {
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	RoleID    int    `json:"roleId"`
	ManagerID string `json:"managerId,omitempty"`
	CentreID  string `json:"centreId,omitempty"`
}

func (c *Client) CreateUser(ctx context.Context, in CreateUserInput) (models.User, error) {
	var out dataEnvelope[models.User]
	_, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&out).
		Post(pathUserManagement + "/create-user")
	if err != nil {
		return models.User{}, err
	}
	return out.Data, nil
}

func (c *Client) ListUsers(ctx context.Context, roleID int) ([]models.User, error) {
	req := c.http.R().SetContext(ctx)
	if roleID != 0 {
		req.SetQueryParam("roleId", strconv.Itoa(roleID))
	}
	var out dataEnvelope[[]models.User]
	_, err := req.SetResult(&out).Get(pathUserManagement + "/users")
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

// InspectorsByManager lists the inspectors assigned to a manager.
func (c *Client) InspectorsByManager(ctx context.Context, managerID string) ([]models.User, error) {
	var out dataEnvelope[[]models.User]
	_, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get(pathUserManagement + "/inspectors/" + managerID)
	if err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	_, err := c.http.R().
		SetContext(ctx).
		Delete(pathUserManagement + "/users/" + id)
	return err
}
