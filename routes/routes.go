package routes

import (
	"buildestate-server/config"
	"buildestate-server/services"
)

// Package-level collaborators, set once from main before the server starts.
var (
	cfg      *config.Config
	payments *services.PaymentService
)

func Init(c *config.Config, p *services.PaymentService) {
	cfg = c
	payments = p
}
