package http

import (
	"net/http"

	"github.com/prodib01/BAYLOR-CDC/internal/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, w, &req); err != nil {
		h.writeDecodeError(w, err)
		return
	}

	session, err := h.svc.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newLoginResponse(session))
}

func newLoginResponse(s domain.Session) loginResponse {
	return loginResponse{
		Token:     s.Token,
		UserID:    s.User.ID,
		Username:  s.User.Username,
		FirstName: s.User.FirstName,
		LastName:  s.User.LastName,
	}
}
