package handlers

import (
	"net/http"

	"serendibgo/middleware"
	"serendibgo/services/trip"

	"github.com/gin-gonic/gin"
)

// SubmitTripHandler handles customer trip request submission.
func SubmitTripHandler(svc trip.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)

		var input trip.SubmitTripInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		created, err := svc.Submit(c.Request.Context(), actor, input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// GetTripHandler returns a single trip request.
func GetTripHandler(svc trip.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)

		tr, err := svc.GetByID(c.Request.Context(), actor, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tr)
	}
}

// ListMyTripsHandler lists the caller's own trip requests.
func ListMyTripsHandler(svc trip.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)

		trips, err := svc.ListForCustomer(c.Request.Context(), actor, c.Query("status"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"trips": trips, "count": len(trips)})
	}
}

// ListAllTripsHandler lists every trip request for the staff dashboard.
func ListAllTripsHandler(svc trip.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)

		trips, err := svc.ListAll(c.Request.Context(), actor, c.Query("status"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"trips": trips, "count": len(trips)})
	}
}

// TripStatisticsHandler returns per-status counts for the staff dashboard.
func TripStatisticsHandler(svc trip.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)

		stats, err := svc.Statistics(c.Request.Context(), actor)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// UpdateAssignmentHandler applies a staff assignment to a trip request.
func UpdateAssignmentHandler(svc trip.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)

		var input trip.AssignmentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		updated, err := svc.UpdateAssignment(c.Request.Context(), actor, c.Param("id"), input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// ApproveTripHandler approves a trip request.
func ApproveTripHandler(svc trip.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)

		var input struct {
			StaffComments string `json:"staffComments"`
		}
		if err := c.ShouldBindJSON(&input); err != nil && err.Error() != "EOF" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		tr, err := svc.Approve(c.Request.Context(), actor, c.Param("id"), input.StaffComments)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tr)
	}
}

// RejectTripHandler rejects a trip request with a reason.
func RejectTripHandler(svc trip.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)

		var input struct {
			Reason string `json:"reason"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		tr, err := svc.Reject(c.Request.Context(), actor, c.Param("id"), input.Reason)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tr)
	}
}

// BulkTripActionHandler applies an approve, reject or delete action to a
// batch of trip requests. Staff only.
func BulkTripActionHandler(svc trip.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)

		var input trip.BulkActionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}

		result, err := svc.BulkAction(c.Request.Context(), actor, input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// CompleteTripHandler marks a confirmed trip as completed.
func CompleteTripHandler(svc trip.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)

		tr, err := svc.Complete(c.Request.Context(), actor, c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, tr)
	}
}

// DeleteTripHandler removes a trip request.
func DeleteTripHandler(svc trip.TripService) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, _ := middleware.GetActor(c)

		if err := svc.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "trip request deleted"})
	}
}
