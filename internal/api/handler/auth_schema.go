package handler

import "github.com/vitrine/storefront/internal/core/domain"

type registerRequest struct {
	Username        string `json:"username" form:"username" validate:"required,max=150,username"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" form:"password_confirm" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

type registerResponse struct {
	Detail string               `json:"detail"`
	User   domain.PublicAccount `json:"user"`
}

type loginResponse struct {
	Detail      string               `json:"detail"`
	User        domain.PublicAccount `json:"user"`
	RedirectURL string               `json:"redirect_url"`
}
