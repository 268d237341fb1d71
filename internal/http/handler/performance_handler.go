package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/straye-as/sales-target-api/internal/auth"
	"github.com/straye-as/sales-target-api/internal/domain"
	"github.com/straye-as/sales-target-api/internal/mapper"
	"go.uber.org/zap"
)

// PerformanceService is the roll-up engine behind the performance endpoints
type PerformanceService interface {
	ListZonePerformance(ctx context.Context, q domain.PerformanceQuery) (*domain.ScopePerformanceReport, error)
	ListUserPerformance(ctx context.Context, q domain.PerformanceQuery) (*domain.ScopePerformanceReport, error)
	ListZoneSummaries(ctx context.Context, q domain.PerformanceQuery) (*domain.ScopeSummaryReport, error)
	ListUserSummaries(ctx context.Context, q domain.PerformanceQuery) (*domain.ScopeSummaryReport, error)
}

type PerformanceHandler struct {
	performanceService PerformanceService
	logger             *zap.Logger
}

func NewPerformanceHandler(performanceService PerformanceService, logger *zap.Logger) *PerformanceHandler {
	return &PerformanceHandler{
		performanceService: performanceService,
		logger:             logger,
	}
}

// performanceRequest is a parsed and validated performance query
type performanceRequest struct {
	query   domain.PerformanceQuery
	grouped bool
}

func parseUintParam(raw, name string) (*uint, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || v == 0 {
		return nil, errors.New(name + " must be a positive integer")
	}
	id := uint(v)
	return &id, nil
}

// parsePerformanceRequest reads the query string. It writes the error
// response itself and returns false when the request is invalid.
func (h *PerformanceHandler) parsePerformanceRequest(w http.ResponseWriter, r *http.Request) (performanceRequest, bool) {
	values := r.URL.Query()
	params := domain.PerformanceQueryParams{
		TargetPeriod:      strings.TrimSpace(values.Get("targetPeriod")),
		PeriodType:        strings.ToUpper(strings.TrimSpace(values.Get("periodType"))),
		ProductType:       strings.TrimSpace(values.Get("productType")),
		ActualValuePeriod: strings.TrimSpace(values.Get("actualValuePeriod")),
	}
	if err := validate.Struct(params); err != nil {
		respondValidationError(w, err)
		return performanceRequest{}, false
	}

	req := performanceRequest{
		query: domain.PerformanceQuery{
			TargetPeriod: params.TargetPeriod,
			PeriodType:   domain.PeriodType(params.PeriodType),
		},
	}
	if params.ProductType != "" {
		req.query.ProductType = &params.ProductType
	}
	if params.ActualValuePeriod != "" {
		req.query.ActualValuePeriod = &params.ActualValuePeriod
	}

	var err error
	if req.query.ScopeID, err = parseUintParam(values.Get("scopeId"), "scopeId"); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return performanceRequest{}, false
	}
	if req.query.ZoneID, err = parseUintParam(values.Get("zoneId"), "zoneId"); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return performanceRequest{}, false
	}
	if raw := values.Get("grouped"); raw != "" {
		if req.grouped, err = strconv.ParseBool(raw); err != nil {
			respondWithError(w, http.StatusBadRequest, "grouped must be true or false")
			return performanceRequest{}, false
		}
	}

	if raw := chi.URLParam(r, "id"); raw != "" {
		id, err := parseUintParam(raw, "id")
		if err != nil {
			respondWithError(w, http.StatusBadRequest, err.Error())
			return performanceRequest{}, false
		}
		req.query.ScopeID = id
	}

	return req, true
}

func (h *PerformanceHandler) userContext(w http.ResponseWriter, r *http.Request) (*auth.UserContext, bool) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required")
		return nil, false
	}
	return userCtx, true
}

// @Summary List zone performance
// @Description Target versus actual roll-up for every active zone. Zone roles only see their own zone.
// @Description
// @Description Actuals are closed offers placed in the period by their closing date:
// @Description poDate for PO_RECEIVED/ORDER_BOOKED, bookingDateInSap for ORDER_BOOKED, offerClosedInCrm for WON,
// @Description and createdAt when none of these dates is set. Yearly targets shown in a monthly view are divided by 12.
// @Description
// @Description With `grouped=true` each zone yields one summary row with the metrics bundle, otherwise one row per target.
// @Tags Performance
// @Produce json
// @Param targetPeriod query string true "Target period, YYYY-MM or YYYY"
// @Param periodType query string true "MONTHLY or YEARLY"
// @Param productType query string false "Restrict to one product type"
// @Param actualValuePeriod query string false "Actuals window inside the target period, YYYY-MM or YYYY"
// @Param scopeId query int false "Restrict to one zone"
// @Param grouped query bool false "One summary row per zone"
// @Success 200 {object} domain.PerformanceReportDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /performance/zones [get]
func (h *PerformanceHandler) ListZones(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := h.userContext(w, r)
	if !ok {
		return
	}
	req, ok := h.parsePerformanceRequest(w, r)
	if !ok {
		return
	}
	if err := userCtx.ApplyZoneRestriction(&req.query); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if req.grouped {
		report, err := h.performanceService.ListZoneSummaries(r.Context(), req.query)
		if err != nil {
			handleError(w, r, h.logger, err)
			return
		}
		respondJSON(w, http.StatusOK, mapper.ToSummaryReportDTO(report))
		return
	}

	report, err := h.performanceService.ListZonePerformance(r.Context(), req.query)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToPerformanceReportDTO(report))
}

// @Summary Get zone performance
// @Description Roll-up for a single zone. Accepts the same query parameters as the zone list.
// @Tags Performance
// @Produce json
// @Param id path int true "Zone ID"
// @Param targetPeriod query string true "Target period, YYYY-MM or YYYY"
// @Param periodType query string true "MONTHLY or YEARLY"
// @Param productType query string false "Restrict to one product type"
// @Param actualValuePeriod query string false "Actuals window inside the target period"
// @Param grouped query bool false "One summary row"
// @Success 200 {object} domain.PerformanceReportDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /performance/zones/{id} [get]
func (h *PerformanceHandler) GetZone(w http.ResponseWriter, r *http.Request) {
	h.ListZones(w, r)
}

// @Summary List user performance
// @Description Target versus actual roll-up for every active zone user and zone manager.
// @Description Zone managers see the users of their zone, zone users only themselves.
// @Tags Performance
// @Produce json
// @Param targetPeriod query string true "Target period, YYYY-MM or YYYY"
// @Param periodType query string true "MONTHLY or YEARLY"
// @Param productType query string false "Restrict to one product type"
// @Param actualValuePeriod query string false "Actuals window inside the target period, YYYY-MM or YYYY"
// @Param scopeId query int false "Restrict to one user"
// @Param zoneId query int false "Restrict to the users of one zone"
// @Param grouped query bool false "One summary row per user"
// @Success 200 {object} domain.PerformanceReportDTO
// @Failure 400 {object} domain.APIError
// @Failure 403 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /performance/users [get]
func (h *PerformanceHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := h.userContext(w, r)
	if !ok {
		return
	}
	req, ok := h.parsePerformanceRequest(w, r)
	if !ok {
		return
	}
	if err := userCtx.ApplyUserRestriction(&req.query); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if req.grouped {
		report, err := h.performanceService.ListUserSummaries(r.Context(), req.query)
		if err != nil {
			handleError(w, r, h.logger, err)
			return
		}
		respondJSON(w, http.StatusOK, mapper.ToSummaryReportDTO(report))
		return
	}

	report, err := h.performanceService.ListUserPerformance(r.Context(), req.query)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, mapper.ToPerformanceReportDTO(report))
}

// @Summary Get user performance
// @Description Roll-up for a single user. Accepts the same query parameters as the user list.
// @Tags Performance
// @Produce json
// @Param id path int true "User ID"
// @Param targetPeriod query string true "Target period, YYYY-MM or YYYY"
// @Param periodType query string true "MONTHLY or YEARLY"
// @Param productType query string false "Restrict to one product type"
// @Param actualValuePeriod query string false "Actuals window inside the target period"
// @Param grouped query bool false "One summary row"
// @Success 200 {object} domain.PerformanceReportDTO
// @Failure 400 {object} domain.APIError
// @Failure 404 {object} domain.APIError
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /performance/users/{id} [get]
func (h *PerformanceHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	h.ListUsers(w, r)
}
