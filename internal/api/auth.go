package api

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/aquarion/docket-sub000/internal/config"
)

// createTokenHandler exchanges the operator secret for a bearer token
// used by the dashboard.
func (a *Api) createTokenHandler(w http.ResponseWriter, r *http.Request) {
	req := &struct {
		Secret string `json:"secret"`
	}{}

	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(config.AdminSecret())) != 1 {
		a.unauthorizedResponse(w, r, errors.New("invalid secret"))
		return
	}

	token, err := a.jwts.CreateToken("dashboard")
	if err != nil {
		a.serverErrorResponse(w, r, err)
		return
	}

	resp := &struct {
		AccessToken string `json:"access_token"`
	}{AccessToken: token}

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}
