package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance used for request body validation.
var Validate = validator.New()

// DecodeJSON decodes the request body into the given struct.
// Unknown fields are tolerated; malformed JSON is an error.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}
