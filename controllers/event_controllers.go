package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/famly-app/family-reminder/config"
	"github.com/famly-app/family-reminder/models"
	"github.com/famly-app/family-reminder/services"
	"github.com/famly-app/family-reminder/utils"
)

type EventController struct {
	DB        *gorm.DB
	Reminders *services.ReminderService
	// EditPolicy decides whether mutations are creator-only or open to the
	// whole family (config.EditPolicyCreator / config.EditPolicyFamily).
	EditPolicy string
}

func NewEventController(db *gorm.DB, reminders *services.ReminderService, editPolicy string) *EventController {
	return &EventController{DB: db, Reminders: reminders, EditPolicy: editPolicy}
}

type eventRequest struct {
	Title        string `json:"title" binding:"required,max=255"`
	Description  string `json:"description" binding:"max=1000"`
	EventDate    string `json:"event_date" binding:"required"`
	EventType    string `json:"event_type"`
	ReminderDays *int   `json:"reminder_days"`
	IsRecurring  bool   `json:"is_recurring"`
}

func (req *eventRequest) validate() (models.Event, error) {
	date, err := utils.ParseDay(req.EventDate)
	if err != nil {
		return models.Event{}, errors.New("valid event_date required (YYYY-MM-DD format)")
	}

	eventType := req.EventType
	if eventType == "" {
		eventType = "general"
	}
	if !models.ValidEventType(eventType) {
		return models.Event{}, errors.New("invalid event type")
	}

	reminderDays := 7
	if req.ReminderDays != nil {
		reminderDays = *req.ReminderDays
	}
	if reminderDays < 0 || reminderDays > 365 {
		return models.Event{}, errors.New("reminder days must be 0-365")
	}

	return models.Event{
		Title:        req.Title,
		Description:  req.Description,
		EventDate:    date,
		EventType:    eventType,
		ReminderDays: reminderDays,
		IsRecurring:  req.IsRecurring,
	}, nil
}

// GetAllEvents lists every family event, soonest first. All members see all
// events; this is a single shared family calendar.
func (ec *EventController) GetAllEvents(c *gin.Context) {
	var events []models.Event
	if err := ec.DB.Preload("Creator").Order("event_date ASC").Find(&events).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for i := range events {
		events[i].CreatorName = events[i].Creator.Username
	}
	utils.RespondJSON(c, http.StatusOK, "All events", events)
}

// GetUpcomingEvents lists events happening within the next 7 days.
func (ec *EventController) GetUpcomingEvents(c *gin.Context) {
	today := utils.Today()
	nextWeek := today.AddDate(0, 0, 7)

	var events []models.Event
	if err := ec.DB.Preload("Creator").
		Where("event_date BETWEEN ? AND ?", today, nextWeek).
		Order("event_date ASC").
		Find(&events).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	for i := range events {
		events[i].CreatorName = events[i].Creator.Username
	}
	utils.RespondJSON(c, http.StatusOK, "Upcoming events", events)
}

// CreateEvent stores the event and fans out event_created notifications to
// every other family member. A notification failure is logged but does not
// fail the create.
func (ec *EventController) CreateEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	event, err := req.validate()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	event.CreatorID = userID

	if err := ec.DB.Create(&event).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := ec.Reminders.NotifyEventCreated(event); err != nil {
		utils.ErrorLogger.Printf("Error creating notifications for event %d: %v", event.ID, err)
	}

	if err := ec.DB.Preload("Creator").First(&event, event.ID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, errors.New("event created but failed to retrieve"))
		return
	}
	event.CreatorName = event.Creator.Username

	utils.RespondJSON(c, http.StatusCreated, "Event created successfully", event)
}

// UpdateEvent replaces the mutable fields of an event. Scoped to the creator
// unless the family edit policy is enabled.
func (ec *EventController) UpdateEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid event id"))
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	event, err := req.validate()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	res := ec.scopeMutation(eventID, userID).Updates(map[string]interface{}{
		"title":         event.Title,
		"description":   event.Description,
		"event_date":    event.EventDate,
		"event_type":    event.EventType,
		"reminder_days": event.ReminderDays,
		"is_recurring":  event.IsRecurring,
	})
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("event not found or you are not the creator"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Event updated successfully", gin.H{"event_id": eventID})
}

// DeleteEvent removes an event, scoped like UpdateEvent. Notifications about
// the event are kept; they reference the creator captured at creation time.
func (ec *EventController) DeleteEvent(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user id not found in context"))
		return
	}

	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid event id"))
		return
	}

	res := ec.scopeMutation(eventID, userID).Delete(&models.Event{})
	if res.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("event not found or you are not the creator"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Event deleted successfully", gin.H{"event_id": eventID})
}

// AdminDeleteEvent lets an administrator delete any event, together with its
// notifications.
func (ec *EventController) AdminDeleteEvent(c *gin.Context) {
	eventID, err := strconv.Atoi(c.Param("event_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid event id"))
		return
	}

	var event models.Event
	if err := ec.DB.First(&event, eventID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("event not found"))
		return
	}

	if err := ec.DB.Delete(&models.Event{}, eventID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if err := ec.DB.Where("event_id = ?", eventID).Delete(&models.Notification{}).Error; err != nil {
		utils.ErrorLogger.Printf("Error deleting notifications for event %d: %v", eventID, err)
	}

	username, _ := c.Get("username")
	utils.InfoLogger.Printf("Admin %v deleted event %q (ID: %d)", username, event.Title, eventID)

	utils.RespondJSON(c, http.StatusOK, "Event deleted successfully by admin", gin.H{"event_id": eventID})
}

func (ec *EventController) scopeMutation(eventID int, userID uint) *gorm.DB {
	q := ec.DB.Model(&models.Event{}).Where("id = ?", eventID)
	if ec.EditPolicy != config.EditPolicyFamily {
		q = q.Where("creator_id = ?", userID)
	}
	return q
}
