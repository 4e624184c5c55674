package apierrors

const (
	MsgFailListTask          = "errorListTask"
	MsgInvalidTaskID         = "invalidTaskID"
	MsgInvalidUserID         = "invalidUserID"
	MsgInvalidNotificationID = "invalidNotificationID"
	MsgInvalidTaskPayload    = "invalidTaskPayload"
	MsgTaskNotFound          = "taskNotFound"
	MsgNotificationNotFound  = "notificationNotFound"
	MsgFailCreateTask        = "failCreateTask"
	MsgFailUpdateTask        = "failUpdateTask"
	MsgFailListNotifications = "failListNotifications"
	MsgFailStats             = "failStats"
	MsgUnauthorized          = "unauthorized"
	MsgForbidden             = "forbidden"
	MsgInvalidAssignee       = "invalidAssignee"
	MsgInvalidTransition     = "invalidTransition"
	MsgInvalidTaskState      = "invalidTaskState"
	MsgVersionConflict       = "versionConflict"
)
