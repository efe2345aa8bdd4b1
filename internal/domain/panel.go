package domain

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type PanelRole string

const (
	RoleAdmin PanelRole = "admin"
	RoleJudge PanelRole = "judge"
)

type LoginInput struct {
	Role     PanelRole `json:"role"`
	Name     string    `json:"name"`
	Password string    `json:"password"`
}

func (i LoginInput) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Role, validation.Required, validation.In(RoleAdmin, RoleJudge)),
		validation.Field(&i.Name, validation.Required, validation.Length(1, 80)),
		validation.Field(&i.Password, validation.Required),
	)
}

type PanelToken struct {
	AccessToken string    `json:"access_token"`
	Role        PanelRole `json:"role"`
	Name        string    `json:"name"`
	ExpiresIn   int64     `json:"expires_in"`
}
