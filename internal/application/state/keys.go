package state

// Storage keys. These names are shared with stored data and must not change.
const (
	KeyPreferences         = "bible-reader-prefs"
	KeyBiblePosition       = "bible-last-position"
	KeyCommentaryPosition  = "commentary-last-position"
	KeyInterlinearPosition = "interlinear-last-position"
	KeyHighlights          = "bible-reader-highlights"
	KeyPlanProgress        = "reader-plan-progress"
	KeyTrackerProgress     = "bible-tracker-progress"
	KeyFavoritePlans       = "reader-favorite-plans"
	KeySavedPlans          = "reader-saved-plans"
	KeySidebarCollapsed    = "reader-sidebar-collapsed"
)
