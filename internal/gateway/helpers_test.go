package gateway

import (
	"encoding/json"
	"net/http"
)

func jsonDecode(r *http.Request, out any) error {
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(out)
}
