package entity

// LearningContent is a lesson reshaped for one learning mode.
type LearningContent struct {
	LessonID     string            `json:"lessonId"`
	Mode         Mode              `json:"mode"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	ContentItems []ModeContentItem `json:"contentItems"`
}

// ModeContentMetadata summarises a mode content response.
type ModeContentMetadata struct {
	TotalItems           int      `json:"totalItems"`
	Difficulty           Level    `json:"difficulty,omitempty"`
	EstimatedTimeMinutes int      `json:"estimatedTimeMinutes"`
	Tags                 []string `json:"tags"`
}

// ModeContentResponse is LearningContent plus request-derived metadata.
type ModeContentResponse struct {
	LearningContent
	Metadata ModeContentMetadata `json:"metadata"`
}
