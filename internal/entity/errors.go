package entity

import "errors"

var (
	ErrLeadNotFound        = errors.New("lead não encontrado")
	ErrVendorNotFound      = errors.New("vendedor não encontrado")
	ErrLeadNameRequired    = errors.New("name is required")
	ErrLeadContactRequired = errors.New("contact_handle is required")
	ErrInvalidStatus       = errors.New("status inválido")
	ErrInvalidStage        = errors.New("coluna inválida")
	ErrInvalidAppearance   = errors.New("aparência inválida")
)
