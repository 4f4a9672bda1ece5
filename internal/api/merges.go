package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/aquarion/docket-sub000/internal/model"
	"github.com/aquarion/docket-sub000/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type mergeOverrideRequest struct {
	Key   string `json:"key"`
	Color string `json:"color"`
}

func validateMergeOverride(v *validator.Validator, req *mergeOverrideRequest) {
	v.Check(req.Key != "", "key", "key must be provided")
	v.Check(model.ColorPattern.MatchString(req.Color), "color", "color must be a hex value like #RRGGBB")
}

func (a *Api) listMergeOverridesHandler(w http.ResponseWriter, r *http.Request) {
	overrides, err := a.calendars.GetMergeOverrides(r.Context(), a.db)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("get merge overrides: %w", err))
		return
	}

	resp, _ := mapSlice(overrides, mapToMergeOverrideResp)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func (a *Api) createMergeOverrideHandler(w http.ResponseWriter, r *http.Request) {
	req := &mergeOverrideRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	v := validator.New()
	validateMergeOverride(v, req)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	override := &model.MergeOverride{
		Key:   req.Key,
		Color: req.Color,
	}

	if err := a.calendars.CreateMergeOverride(r.Context(), a.db, override); err != nil {
		switch {
		case errors.Is(err, model.ErrAlreadyExists):
			a.conflictResponse(w, r, fmt.Sprintf("merge override %q already exists", req.Key))
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("create merge override: %w", err))
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
}

func (a *Api) updateMergeOverrideHandler(w http.ResponseWriter, r *http.Request) {
	req := &mergeOverrideRequest{}
	if err := a.readJSON(w, r, req); err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	req.Key = chi.URLParam(r, "mergeKey")

	v := validator.New()
	validateMergeOverride(v, req)
	if !v.Valid() {
		a.failedValidationResponse(w, r, v.Errors)
		return
	}

	override := &model.MergeOverride{
		Key:   req.Key,
		Color: req.Color,
	}

	if err := a.calendars.UpdateMergeOverride(r.Context(), a.db, override); err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("update merge override: %w", err))
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *Api) deleteMergeOverrideHandler(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "mergeKey")

	if err := a.calendars.DeleteMergeOverride(r.Context(), a.db, key); err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.notFoundResponse(w, r)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("delete merge override: %w", err))
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
