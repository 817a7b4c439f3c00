package main

// @title Fee Ledger API
// @version 1.0
// @description Student fee invoices, payments, billing cycles and overdue tracking.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	Execute()
}
