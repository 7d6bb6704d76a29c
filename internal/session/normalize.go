package session

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/mitchellh/mapstructure"

	"adminpro/console/internal/models"
)

// wireUser is the union of user fields across known verify-otp response
// shapes.
type wireUser struct {
	ID          any    `mapstructure:"id"`
	Name        string `mapstructure:"name"`
	Email       string `mapstructure:"email"`
	Role        string `mapstructure:"role"`
	RoleID      int    `mapstructure:"roleId"`
	Phone       string `mapstructure:"phone"`
	AccessToken string `mapstructure:"accessToken"`
}

// normalizeLogin reduces the verify-otp response to a canonical user+token.
// Known shapes, newest first:
//
//	{data: {user: {...}, accessToken}}
//	{data: {<flat user fields>, accessToken}}
//	{user: {...}, token|accessToken}
//
// Flat minimal shapes may omit contact fields entirely; the submitted contact
// fills in email/phone/id so downstream screens always have something to show.
func normalizeLogin(payload map[string]any, contact string) (models.User, string, error) {
	if len(payload) == 0 {
		return models.User{}, "", errors.New("empty login response")
	}

	source := payload
	token := stringField(payload, "accessToken", "token")
	if data, ok := payload["data"].(map[string]any); ok {
		source = data
		if t := stringField(data, "accessToken", "token"); t != "" {
			token = t
		}
	}
	if userMap, ok := source["user"].(map[string]any); ok {
		source = userMap
	}

	var wu wireUser
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &wu,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return models.User{}, "", fmt.Errorf("build decoder: %w", err)
	}
	if err := dec.Decode(source); err != nil {
		return models.User{}, "", fmt.Errorf("malformed login response: %w", err)
	}

	if token == "" {
		token = wu.AccessToken
	}

	user := models.User{
		ID:     weakString(wu.ID),
		Name:   wu.Name,
		Email:  wu.Email,
		Role:   wu.Role,
		RoleID: wu.RoleID,
		Phone:  wu.Phone,
	}
	if user.ID == "" {
		user.ID = contact
	}
	if user.Email == "" {
		user.Email = contact
	}
	if user.Phone == "" {
		user.Phone = contact
	}
	return user, token, nil
}

func stringField(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func weakString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}
