package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opentransit/editor-backend/dto"
	"github.com/opentransit/editor-backend/models"
	"github.com/opentransit/editor-backend/pure_utils"
	"github.com/opentransit/editor-backend/usecases"
)

func adaptAuditEntryFilters(filters dto.AuditEntryFilters) models.AuditEntryFilters {
	modelFilters := models.AuditEntryFilters{
		AgencyId:   filters.AgencyId,
		ActorId:    filters.ActorId,
		EntityType: filters.EntityType,
		Action:     models.AuditAction(filters.Action),
	}
	if filters.From != nil {
		modelFilters.From = *filters.From
	}
	if filters.To != nil {
		modelFilters.To = *filters.To
	}
	return modelFilters
}

func handleListAuditEntries(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var filters dto.AuditEntryFilters
		if err := c.ShouldBindQuery(&filters); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		auditUseCase := usecasesWithCreds(ctx, uc).NewAuditUseCase()
		entries, err := auditUseCase.ListAuditEntries(ctx, adaptAuditEntryFilters(filters),
			models.PaginationAndSorting{
				OffsetId: filters.After,
				Limit:    filters.Limit,
			})
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, pure_utils.Map(entries, dto.AdaptAuditEntry))
	}
}

func handleAggregateAuditEntries(uc usecases.Usecases) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var filters dto.AuditEntryFilters
		if err := c.ShouldBindQuery(&filters); err != nil {
			c.Status(http.StatusBadRequest)
			return
		}

		auditUseCase := usecasesWithCreds(ctx, uc).NewAuditUseCase()
		aggregate, err := auditUseCase.AggregateAuditEntries(ctx, adaptAuditEntryFilters(filters))
		if presentError(ctx, c, err) {
			return
		}

		c.JSON(http.StatusOK, dto.AdaptAuditAggregate(aggregate))
	}
}
