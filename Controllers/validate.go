package Controllers

import "github.com/go-playground/validator/v10"

// validate checks request payloads before anything reaches the ledger.
var validate = validator.New()
