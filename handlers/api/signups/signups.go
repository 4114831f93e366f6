package signups

import (
	"errors"
	"fmt"
	"net/http"
	"stashspace/core"
	"stashspace/handlers/api"

	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"
)

type (
	// SignupRequest is the POST /signup body: the superset of both record
	// kinds, discriminated by userType. Bodies arrive as JSON or as a
	// url-encoded form.
	SignupRequest struct {
		UserType     string   `json:"userType" form:"userType"`
		BusinessName string   `json:"businessName" form:"businessName"`
		Name         string   `json:"name" form:"name"`
		Email        string   `json:"email" form:"email"`
		Phone        string   `json:"phone" form:"phone"`
		Website      string   `json:"website" form:"website"`
		OrderVolume  string   `json:"orderVolume" form:"orderVolume"`
		Notes        string   `json:"notes" form:"notes"`
		Address      string   `json:"address" form:"address"`
		SpaceSize    *float64 `json:"spaceSize" form:"spaceSize"`
		SpaceType    string   `json:"spaceType" form:"spaceType"`
		Availability string   `json:"availability" form:"availability"`
	}
)

func (req *SignupRequest) business() *core.BusinessSignup {
	return &core.BusinessSignup{
		BusinessName: req.BusinessName,
		Email:        req.Email,
		Phone:        req.Phone,
		Website:      req.Website,
		OrderVolume:  req.OrderVolume,
		Notes:        req.Notes,
	}
}

func (req *SignupRequest) provider() *core.ProviderSignup {
	return &core.ProviderSignup{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		SpaceSize:    req.SpaceSize,
		SpaceType:    req.SpaceType,
		Availability: req.Availability,
	}
}

// Handler serves the signup routes against a single store.
type Handler struct {
	store        core.SignupStore
	exposeErrors bool
}

func New(store core.SignupStore, exposeErrors bool) *Handler {
	return &Handler{store: store, exposeErrors: exposeErrors}
}

// Create handles POST /signup for both record kinds.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req := &SignupRequest{}
	if err := render.Decode(r, req); err != nil {
		api.Error(w, r, http.StatusBadRequest, "Invalid request body", err, h.exposeErrors)
		return
	}

	var (
		id  string
		err error
	)
	switch core.UserType(req.UserType) {
	case core.UserTypeBusiness:
		id, err = h.store.CreateBusiness(r.Context(), req.business())
	case core.UserTypeProvider:
		id, err = h.store.CreateProvider(r.Context(), req.provider())
	default:
		api.Error(w, r, http.StatusBadRequest, "Invalid user type specified", nil, h.exposeErrors)
		return
	}

	var invalid *core.ValidationError
	switch {
	case errors.As(err, &invalid):
		api.Error(w, r, http.StatusBadRequest, "Signup validation failed", err, h.exposeErrors)
	case err != nil:
		logrus.WithFields(logrus.Fields{
			"user_type": req.UserType,
			"error":     err,
		}).Error("Failed to persist signup")
		api.Error(w, r, http.StatusInternalServerError,
			fmt.Sprintf("Error processing %s signup", req.UserType), err, h.exposeErrors)
	default:
		api.Created(w, r, fmt.Sprintf("%s signup successful", req.UserType), id)
	}
}

// ListBusinesses handles GET /businesses.
func (h *Handler) ListBusinesses(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListBusinesses(r.Context())
	if err != nil {
		logrus.WithField("error", err).Error("Failed to list business signups")
		api.Error(w, r, http.StatusInternalServerError, "Error fetching business signups", err, h.exposeErrors)
		return
	}
	api.List(w, r, len(records), records)
}

// ListProviders handles GET /providers.
func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListProviders(r.Context())
	if err != nil {
		logrus.WithField("error", err).Error("Failed to list provider signups")
		api.Error(w, r, http.StatusInternalServerError, "Error fetching provider signups", err, h.exposeErrors)
		return
	}
	api.List(w, r, len(records), records)
}
